// Package memory is the in-process Entity Store used by tests and by
// db.driver=memory. It mirrors the relational store: per-kind sequences
// that never rewind, server-assigned timestamps and interview cascade.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go-job-tracker/internal/domain"
)

type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	userSeq, appSeq, docSeq, ivSeq uint

	users map[uint]domain.User
	apps  map[uint]domain.JobApplication
	docs  map[uint]domain.Document
	ivs   map[uint]domain.Interview
}

var _ domain.Store = (*Store)(nil)

// New returns an empty store. A nil clock means time.Now.
func New(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		now:   now,
		users: map[uint]domain.User{},
		apps:  map[uint]domain.JobApplication{},
		docs:  map[uint]domain.Document{},
		ivs:   map[uint]domain.Interview{},
	}
}

func (s *Store) Users() domain.UserRepository               { return userRepo{s} }
func (s *Store) Applications() domain.ApplicationRepository { return appRepo{s} }
func (s *Store) Documents() domain.DocumentRepository       { return docRepo{s} }
func (s *Store) Interviews() domain.InterviewRepository     { return ivRepo{s} }
func (s *Store) Close() error                               { return nil }

// stamp never goes behind prev so updatedAt stays monotonic per entity.
func (s *Store) stamp(prev time.Time) time.Time {
	now := s.now()
	if now.Before(prev) {
		return prev
	}
	return now
}

func sortedByID[T any](m map[uint]T, keep func(T) bool) []T {
	ids := make([]uint, 0, len(m))
	for id, v := range m {
		if keep(v) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

// users

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Username == u.Username {
			return domain.ErrDuplicate
		}
	}
	r.s.userSeq++
	u.ID = r.s.userSeq
	u.CreatedAt = r.s.now()
	u.Skills = slices.Clone(u.Skills)
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	u.Skills = slices.Clone(u.Skills)
	return &u, nil
}

func (r userRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username {
			u.Skills = slices.Clone(u.Skills)
			return &u, nil
		}
	}
	return nil, nil
}

// applications

type appRepo struct{ s *Store }

func (r appRepo) Create(_ context.Context, a *domain.JobApplication) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[a.UserID]; !ok {
		return fmt.Errorf("memory: application owner %d does not exist", a.UserID)
	}
	now := r.s.now()
	r.s.appSeq++
	a.ID = r.s.appSeq
	if a.Status == "" {
		a.Status = domain.StatusApplied
	}
	if a.AppliedDate.IsZero() {
		a.AppliedDate = now
	}
	a.UpdatedAt = now
	r.s.apps[a.ID] = *a
	return nil
}

func (r appRepo) FindByID(_ context.Context, id uint) (*domain.JobApplication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.apps[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r appRepo) ListByOwner(_ context.Context, userID uint) ([]domain.JobApplication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedByID(r.s.apps, func(a domain.JobApplication) bool { return a.UserID == userID }), nil
}

func (r appRepo) Update(_ context.Context, id uint, p domain.ApplicationPatch) (*domain.JobApplication, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.apps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	a.Apply(p)
	a.UpdatedAt = r.s.stamp(a.UpdatedAt)
	r.s.apps[id] = a
	return &a, nil
}

func (r appRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.apps, id)
	for ivID, iv := range r.s.ivs {
		if iv.ApplicationID == id {
			delete(r.s.ivs, ivID)
		}
	}
	return nil
}

// documents

type docRepo struct{ s *Store }

func (r docRepo) Create(_ context.Context, d *domain.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[d.UserID]; !ok {
		return fmt.Errorf("memory: document owner %d does not exist", d.UserID)
	}
	now := r.s.now()
	r.s.docSeq++
	d.ID = r.s.docSeq
	d.UsageCount = 0
	d.CreatedAt = now
	d.UpdatedAt = now
	r.s.docs[d.ID] = *d
	return nil
}

func (r docRepo) FindByID(_ context.Context, id uint) (*domain.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.docs[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r docRepo) ListByOwner(_ context.Context, userID uint) ([]domain.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedByID(r.s.docs, func(d domain.Document) bool { return d.UserID == userID }), nil
}

func (r docRepo) Update(_ context.Context, id uint, p domain.DocumentPatch) (*domain.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	d.Apply(p)
	d.UpdatedAt = r.s.stamp(d.UpdatedAt)
	r.s.docs[id] = d
	return &d, nil
}

func (r docRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.docs, id)
	return nil
}

// interviews

type ivRepo struct{ s *Store }

func (r ivRepo) Create(_ context.Context, iv *domain.Interview) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[iv.UserID]; !ok {
		return fmt.Errorf("memory: interview owner %d does not exist", iv.UserID)
	}
	if _, ok := r.s.apps[iv.ApplicationID]; !ok {
		return fmt.Errorf("memory: interview application %d does not exist", iv.ApplicationID)
	}
	r.s.ivSeq++
	iv.ID = r.s.ivSeq
	r.s.ivs[iv.ID] = *iv
	return nil
}

func (r ivRepo) FindByID(_ context.Context, id uint) (*domain.Interview, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	iv, ok := r.s.ivs[id]
	if !ok {
		return nil, nil
	}
	return &iv, nil
}

func (r ivRepo) ListByOwner(_ context.Context, userID uint) ([]domain.Interview, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedByID(r.s.ivs, func(iv domain.Interview) bool { return iv.UserID == userID }), nil
}

func (r ivRepo) Update(_ context.Context, id uint, p domain.InterviewPatch) (*domain.Interview, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	iv, ok := r.s.ivs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	iv.Apply(p)
	if _, ok := r.s.apps[iv.ApplicationID]; !ok {
		return nil, fmt.Errorf("memory: interview application %d does not exist", iv.ApplicationID)
	}
	r.s.ivs[id] = iv
	return &iv, nil
}

func (r ivRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.ivs, id)
	return nil
}
