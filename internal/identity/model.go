package identity

import (
	"time"

	"gorm.io/gorm"
)

// AccountModel 登录凭据。展示信息和角色在 profiles 表，不在这里。
type AccountModel struct {
	ID           string     `gorm:"primaryKey;type:varchar(32)"`
	Email        string     `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `gorm:"size:100;not null"`
	ConfirmedAt  *time.Time // 为空表示邮箱未确认，密码登录会被拒绝

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (AccountModel) TableName() string { return "accounts" }

// AuthCodeModel 一次性确认码（邮箱确认 / callback 换会话）
type AuthCodeModel struct {
	Code      string `gorm:"primaryKey;type:varchar(64)"`
	AccountID string `gorm:"size:32;index;not null"`
	ExpiresAt time.Time
	UsedAt    *time.Time

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (AuthCodeModel) TableName() string { return "auth_codes" }
