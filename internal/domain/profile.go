package domain

import (
	"context"
	"time"
)

// 角色只有两种：manager 走 /dashboard，owner 走 /portal
const (
	RoleManager = "manager"
	RoleOwner   = "owner"
)

// Profile 在账号之上补充展示信息与角色。
// 每个账号恰好对应一条 profile；role 在本应用内只读。
type Profile struct {
	ID        string    `gorm:"primaryKey;type:varchar(32)" json:"id"`
	FullName  string    `gorm:"size:255" json:"fullName"`
	AvatarURL string    `gorm:"size:512" json:"avatarUrl"`
	Role      string    `gorm:"size:16;not null;default:manager" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Profile) TableName() string { return "profiles" }

type ProfileRepository interface {
	Create(ctx context.Context, p *Profile) error
	FindByID(ctx context.Context, id string) (*Profile, error)
}
