package model

import "encoding/json"

// Question 表示题库中的一道选择题
// ShortContent 在“侥幸答对”（不确定但答对）时展示；
// LongContent（文本+附件）在任何答错情况下展示。
// swagger:model Question
type Question struct {
	BaseModel
	CategoryID          uint            `gorm:"index;type:bigint unsigned" json:"categoryId"`
	Prompt              string          `gorm:"type:text;not null" json:"question"`
	MediaPath           string          `gorm:"size:255" json:"questionMediaPath"`
	Options             json.RawMessage `gorm:"type:json" json:"options"` // 有序的选项列表
	CorrectAnswer       string          `gorm:"type:text" json:"correctAnswer"`
	ShortContent        string          `gorm:"type:text" json:"shortContent"`
	LongContentText     string          `gorm:"type:text" json:"longContentText"`
	LongContentFilePath string          `gorm:"size:255" json:"longContentFilePath"`
}

func (Question) TableName() string {
	return "questions"
}

// OptionList 解析 JSON 选项为字符串列表
func (q *Question) OptionList() []string {
	var opts []string
	if len(q.Options) > 0 {
		_ = json.Unmarshal(q.Options, &opts)
	}
	return opts
}
