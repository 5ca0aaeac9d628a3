package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-job-tracker/internal/domain"
)

type ApplicationRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func (r *ApplicationRepo) Create(ctx context.Context, a *domain.JobApplication) error {
	now := r.now()
	a.ID = 0
	if a.Status == "" {
		a.Status = domain.StatusApplied
	}
	if a.AppliedDate.IsZero() {
		a.AppliedDate = now
	}
	a.UpdatedAt = now
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error
}

func (r *ApplicationRepo) FindByID(ctx context.Context, id uint) (*domain.JobApplication, error) {
	var a domain.JobApplication
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepo) ListByOwner(ctx context.Context, userID uint) ([]domain.JobApplication, error) {
	var out []domain.JobApplication
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *ApplicationRepo) Update(ctx context.Context, id uint, p domain.ApplicationPatch) (*domain.JobApplication, error) {
	var a domain.JobApplication
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&a, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		a.Apply(p)
		a.UpdatedAt = stamp(r.now, a.UpdatedAt)
		return tx.Omit(clause.Associations).Save(&a).Error
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepo) Delete(ctx context.Context, id uint) error {
	// interviews are removed here too so drivers without enforced foreign keys still cascade
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("application_id = ?", id).Delete(&domain.Interview{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.JobApplication{}).Error
	})
}
