package service

import (
	"context"

	"go-job-tracker/internal/domain"
)

// Authorize allows a principal to touch only what it owns. There are no
// roles and no override.
func Authorize(userID, ownerID uint) error {
	if userID == 0 || userID != ownerID {
		return domain.ErrForbidden
	}
	return nil
}

// loadOwned fetches id and then checks ownership, so a missing id is
// reported as ErrNotFound to owners and strangers alike.
func loadOwned[T any](ctx context.Context, find func(context.Context, uint) (*T, error), owner func(*T) uint, userID, id uint) (*T, error) {
	v, err := find(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	if err := Authorize(userID, owner(v)); err != nil {
		return nil, err
	}
	return v, nil
}
