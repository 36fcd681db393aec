package model

// TestAssignment 表示管理员创建的测试分配：一组按分类划分的抽题配额
// swagger:model TestAssignment
type TestAssignment struct {
	BaseModel
	AdminID uint   `gorm:"index;type:bigint unsigned" json:"adminId"`
	Name    string `gorm:"size:255;not null" json:"name"`
}

func (TestAssignment) TableName() string {
	return "test_assignments"
}

// AssignmentCategory 表示某测试分配在某分类下的抽题配额
// 每个 (assignment, category) 组合唯一；
// QuestionCount 不得超过该分类的题目总数（创建时校验）。
// swagger:model AssignmentCategory
type AssignmentCategory struct {
	BaseModel
	AssignmentID  uint `gorm:"uniqueIndex:idx_assignment_category;type:bigint unsigned" json:"assignmentId"`
	CategoryID    uint `gorm:"uniqueIndex:idx_assignment_category;type:bigint unsigned" json:"categoryId"`
	QuestionCount int  `gorm:"not null" json:"questionCount"`
}

func (AssignmentCategory) TableName() string {
	return "assignment_categories"
}
