package model

import "time"

// swagger:model User
type User struct {
	BaseModel
	Email    string    `gorm:"size:100;unique;not null" json:"email"`
	Password string    `gorm:"size:100;not null" json:"-"`
	IsAdmin  bool      `gorm:"default:false" json:"isAdmin"`
	LastSeen time.Time `gorm:"autoCreateTime" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
