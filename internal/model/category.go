package model

// Category 表示题目分类，每个题目只属于一个分类
// swagger:model Category
type Category struct {
	BaseModel
	Name string `gorm:"size:255;not null" json:"name"`
}

func (Category) TableName() string {
	return "categories"
}
