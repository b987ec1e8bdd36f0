package repo

import (
	"context"

	"gorm.io/gorm"

	"holistay/internal/domain"
)

type PropertyRepo struct{ db *gorm.DB }

func NewPropertyRepo(db *gorm.DB) *PropertyRepo { return &PropertyRepo{db: db} }

func (r *PropertyRepo) Create(ctx context.Context, p *domain.Property) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PropertyRepo) ListByProfile(ctx context.Context, profileID string) ([]domain.Property, error) {
	var ps []domain.Property
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Find(&ps).Error
	return ps, err
}
