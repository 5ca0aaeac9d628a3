package repo

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"go-job-tracker/internal/domain"
)

// Store is the relational Entity Store on top of *gorm.DB.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

var _ domain.Store = (*Store)(nil)

func NewStore(db *gorm.DB, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{db: db, now: now}
}

func (s *Store) Users() domain.UserRepository { return &UserRepo{db: s.db, now: s.now} }
func (s *Store) Applications() domain.ApplicationRepository {
	return &ApplicationRepo{db: s.db, now: s.now}
}
func (s *Store) Documents() domain.DocumentRepository   { return &DocumentRepo{db: s.db, now: s.now} }
func (s *Store) Interviews() domain.InterviewRepository { return &InterviewRepo{db: s.db} }

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate creates the four tables with their foreign keys, including
// ON DELETE CASCADE from interviews to job_applications.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.User{}, &domain.JobApplication{}, &domain.Document{}, &domain.Interview{})
}

func stamp(now func() time.Time, prev time.Time) time.Time {
	t := now()
	if t.Before(prev) {
		return prev
	}
	return t
}

func isDupKey(err error) bool {
	// gorm.ErrDuplicatedKey needs TranslateError on every dialector; match the text instead
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
