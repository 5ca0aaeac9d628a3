package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-job-tracker/internal/domain"
)

type InterviewRepo struct{ db *gorm.DB }

func (r *InterviewRepo) Create(ctx context.Context, iv *domain.Interview) error {
	iv.ID = 0
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(iv).Error
}

func (r *InterviewRepo) FindByID(ctx context.Context, id uint) (*domain.Interview, error) {
	var iv domain.Interview
	err := r.db.WithContext(ctx).First(&iv, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

func (r *InterviewRepo) ListByOwner(ctx context.Context, userID uint) ([]domain.Interview, error) {
	var out []domain.Interview
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *InterviewRepo) Update(ctx context.Context, id uint, p domain.InterviewPatch) (*domain.Interview, error) {
	var iv domain.Interview
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&iv, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		iv.Apply(p)
		return tx.Omit(clause.Associations).Save(&iv).Error
	})
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

func (r *InterviewRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Interview{}).Error
}
