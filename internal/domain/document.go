package domain

import (
	"context"
	"time"
)

// Conventional document types; any other string is stored as given.
const (
	DocumentResume      = "resume"
	DocumentCoverLetter = "cover_letter"
	DocumentOther       = "other"
)

type Document struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"userId"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Type        string    `gorm:"size:32;not null" json:"type"`
	Description *string   `gorm:"type:text" json:"description"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	UsageCount  int       `gorm:"not null;default:0" json:"usageCount"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false;not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false;not null" json:"updatedAt"`
}

func (Document) TableName() string { return "documents" }

// DocumentPatch has no UsageCount: nothing in the API moves it.
type DocumentPatch struct {
	Name        Optional[string] `json:"name"`
	Type        Optional[string] `json:"type"`
	Description Optional[string] `json:"description"`
	Content     Optional[string] `json:"content"`
}

func (d *Document) Apply(p DocumentPatch) {
	p.Name.ApplyValue(&d.Name)
	p.Type.ApplyValue(&d.Type)
	p.Description.Apply(&d.Description)
	p.Content.ApplyValue(&d.Content)
}

type DocumentRepository interface {
	Create(ctx context.Context, d *Document) error
	FindByID(ctx context.Context, id uint) (*Document, error)
	ListByOwner(ctx context.Context, userID uint) ([]Document, error)
	Update(ctx context.Context, id uint, p DocumentPatch) (*Document, error)
	Delete(ctx context.Context, id uint) error
}
