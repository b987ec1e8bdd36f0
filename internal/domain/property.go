package domain

import (
	"context"
	"time"
)

// Property 业主登记的房源。只增不改：生命周期为 create + list。
type Property struct {
	ID           string    `gorm:"primaryKey;type:varchar(32)" json:"id"`
	ProfileID    string    `gorm:"size:32;index;not null" json:"profileId"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	CEP          string    `gorm:"column:cep;size:9;not null" json:"cep"`
	Street       string    `gorm:"size:255;not null" json:"street"`
	Number       string    `gorm:"size:32;not null" json:"number"`
	Complement   string    `gorm:"size:255" json:"complement"`
	Neighborhood string    `gorm:"size:255;not null" json:"neighborhood"`
	City         string    `gorm:"size:255;not null" json:"city"`
	State        string    `gorm:"size:64;not null" json:"state"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Property) TableName() string { return "properties" }

// PropertyRepository 所有查询都必须按 profile_id 过滤，不存在跨业主可见性。
type PropertyRepository interface {
	Create(ctx context.Context, p *Property) error
	ListByProfile(ctx context.Context, profileID string) ([]Property, error)
}
