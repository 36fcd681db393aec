package model

// ResponseStatus 表示一条答题记录的置信/正误分类
type ResponseStatus string

const (
	SureCorrect      ResponseStatus = "sure_correct"
	SureIncorrect    ResponseStatus = "sure_incorrect"
	NotSureCorrect   ResponseStatus = "not_sure_correct"
	NotSureIncorrect ResponseStatus = "not_sure_incorrect"
)

// ClassifyResponse 由 (是否答对, 是否确定) 唯一决定状态
func ClassifyResponse(isCorrect, isSure bool) ResponseStatus {
	if isSure {
		if isCorrect {
			return SureCorrect
		}
		return SureIncorrect
	}
	if isCorrect {
		return NotSureCorrect
	}
	return NotSureIncorrect
}

// UserResponse 存储用户的答题记录，只增不改
// 掌握（mastery）的定义：该 (user, question) 存在至少一条 sure_correct 记录。
// swagger:model UserResponse
type UserResponse struct {
	BaseModel
	UserID       uint           `gorm:"index;type:bigint unsigned" json:"userId"`
	QuestionID   uint           `gorm:"index;type:bigint unsigned" json:"questionId"`
	AssignmentID uint           `gorm:"index;type:bigint unsigned" json:"assignmentId"`
	Answer       string         `gorm:"type:text" json:"answer"`
	IsSure       bool           `gorm:"default:false" json:"isSure"`
	Status       ResponseStatus `gorm:"size:50;not null" json:"status"`
}

func (UserResponse) TableName() string {
	return "user_responses"
}
