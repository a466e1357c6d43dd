package models

import "time"

// UserModel is a creator account. The resolver core never touches users;
// they exist only for the authoring and admin surfaces.
type UserModel struct {
	Base
	Email         string     `json:"email"      gorm:"uniqueIndex;not null"`
	FullName      string     `json:"full_name"`
	AvatarURL     string     `json:"avatar_url"`
	Password      string     `json:"-"          gorm:"not null"`
	IsAdmin       bool       `json:"is_admin"   gorm:"default:false"`
	LastLoginTime *time.Time `json:"last_login_time"`
	LastLoginIP   string     `json:"last_login_ip"`
}

func (UserModel) TableName() string { return "users" }
