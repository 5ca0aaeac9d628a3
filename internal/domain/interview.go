package domain

import (
	"context"
	"time"
)

// Interview is scheduled against exactly one application and is removed with it.
type Interview struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"index;not null" json:"userId"`
	User          *User           `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ApplicationID uint            `gorm:"index;not null" json:"applicationId"`
	Application   *JobApplication `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"-"`
	Title         string          `gorm:"size:255;not null" json:"title"`
	Date          time.Time       `gorm:"not null" json:"date"`
	Notes         *string         `gorm:"type:text" json:"notes"`
	Completed     bool            `gorm:"not null" json:"completed"`
	Feedback      *string         `gorm:"type:text" json:"feedback"`
}

func (Interview) TableName() string { return "interviews" }

type InterviewPatch struct {
	ApplicationID Optional[uint]      `json:"applicationId"`
	Title         Optional[string]    `json:"title"`
	Date          Optional[time.Time] `json:"date"`
	Notes         Optional[string]    `json:"notes"`
	Completed     Optional[bool]      `json:"completed"`
	Feedback      Optional[string]    `json:"feedback"`
}

func (iv *Interview) Apply(p InterviewPatch) {
	p.ApplicationID.ApplyValue(&iv.ApplicationID)
	p.Title.ApplyValue(&iv.Title)
	p.Date.ApplyValue(&iv.Date)
	p.Notes.Apply(&iv.Notes)
	p.Completed.ApplyValue(&iv.Completed)
	p.Feedback.Apply(&iv.Feedback)
}

type InterviewRepository interface {
	Create(ctx context.Context, iv *Interview) error
	FindByID(ctx context.Context, id uint) (*Interview, error)
	ListByOwner(ctx context.Context, userID uint) ([]Interview, error)
	Update(ctx context.Context, id uint, p InterviewPatch) (*Interview, error)
	Delete(ctx context.Context, id uint) error
}
