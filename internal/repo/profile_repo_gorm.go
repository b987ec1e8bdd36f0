package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"holistay/internal/domain"
)

type ProfileRepo struct{ db *gorm.DB }

func NewProfileRepo(db *gorm.DB) *ProfileRepo { return &ProfileRepo{db: db} }

func (r *ProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProfileRepo) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	var p domain.Profile
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}
