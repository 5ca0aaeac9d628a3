package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-job-tracker/internal/domain"
)

type DocumentRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func (r *DocumentRepo) Create(ctx context.Context, d *domain.Document) error {
	now := r.now()
	d.ID = 0
	d.UsageCount = 0
	d.CreatedAt = now
	d.UpdatedAt = now
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(d).Error
}

func (r *DocumentRepo) FindByID(ctx context.Context, id uint) (*domain.Document, error) {
	var d domain.Document
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DocumentRepo) ListByOwner(ctx context.Context, userID uint) ([]domain.Document, error) {
	var out []domain.Document
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *DocumentRepo) Update(ctx context.Context, id uint, p domain.DocumentPatch) (*domain.Document, error) {
	var d domain.Document
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&d, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		d.Apply(p)
		d.UpdatedAt = stamp(r.now, d.UpdatedAt)
		return tx.Omit(clause.Associations).Save(&d).Error
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DocumentRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Document{}).Error
}
