package domain

import (
	"context"
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	FullName     *string   `gorm:"size:128" json:"fullName"`
	Email        *string   `gorm:"size:191" json:"email"`
	Skills       []string  `gorm:"serializer:json;type:text" json:"skills"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (User) TableName() string { return "users" }

// UserRepository creates and looks up accounts. Users are never updated or deleted.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
}
