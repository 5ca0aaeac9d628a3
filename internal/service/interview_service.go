package service

import (
	"context"
	"strings"
	"time"

	"go-job-tracker/internal/domain"
)

type NewInterview struct {
	ApplicationID uint      `json:"applicationId" binding:"required"`
	Title         string    `json:"title" binding:"required"`
	Date          time.Time `json:"date" binding:"required"`
	Notes         *string   `json:"notes"`
	Completed     bool      `json:"completed"`
	Feedback      *string   `json:"feedback"`
}

// InterviewService never looks at application status: scheduling an
// interview does not move the application and vice versa.
type InterviewService struct {
	repo domain.InterviewRepository
	apps domain.ApplicationRepository
}

func NewInterviewService(st domain.Store) *InterviewService {
	return &InterviewService{repo: st.Interviews(), apps: st.Applications()}
}

func ivOwner(iv *domain.Interview) uint { return iv.UserID }

// List returns the caller's interviews, optionally for one application only.
func (s *InterviewService) List(ctx context.Context, userID uint, applicationID *uint) ([]domain.Interview, error) {
	all, err := s.repo.ListByOwner(ctx, userID)
	if err != nil || applicationID == nil {
		return all, err
	}
	out := make([]domain.Interview, 0, len(all))
	for _, iv := range all {
		if iv.ApplicationID == *applicationID {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (s *InterviewService) Create(ctx context.Context, userID uint, in NewInterview) (*domain.Interview, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.Invalid("title", "title is required")
	}
	if in.Date.IsZero() {
		return nil, domain.Invalid("date", "date is required")
	}
	if err := s.checkApplication(ctx, userID, in.ApplicationID); err != nil {
		return nil, err
	}
	iv := &domain.Interview{
		UserID:        userID,
		ApplicationID: in.ApplicationID,
		Title:         title,
		Date:          in.Date,
		Notes:         in.Notes,
		Completed:     in.Completed,
		Feedback:      in.Feedback,
	}
	if err := s.repo.Create(ctx, iv); err != nil {
		return nil, err
	}
	entitiesCreated.WithLabelValues("interview").Inc()
	return iv, nil
}

func (s *InterviewService) Get(ctx context.Context, userID, id uint) (*domain.Interview, error) {
	return loadOwned(ctx, s.repo.FindByID, ivOwner, userID, id)
}

func (s *InterviewService) Update(ctx context.Context, userID, id uint, p domain.InterviewPatch) (*domain.Interview, error) {
	if _, err := loadOwned(ctx, s.repo.FindByID, ivOwner, userID, id); err != nil {
		return nil, err
	}
	if domain.Blank(p.Title) {
		return nil, domain.Invalid("title", "title cannot be empty")
	}
	trim(&p.Title)
	if p.Date.Set && (p.Date.Value == nil || p.Date.Value.IsZero()) {
		return nil, domain.Invalid("date", "date cannot be empty")
	}
	if p.Completed.Set && p.Completed.Value == nil {
		return nil, domain.Invalid("completed", "completed must be true or false")
	}
	if p.ApplicationID.Set {
		if p.ApplicationID.Value == nil {
			return nil, domain.Invalid("applicationId", "applicationId cannot be empty")
		}
		if err := s.checkApplication(ctx, userID, *p.ApplicationID.Value); err != nil {
			return nil, err
		}
	}
	return s.repo.Update(ctx, id, p)
}

func (s *InterviewService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := loadOwned(ctx, s.repo.FindByID, ivOwner, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *InterviewService) checkApplication(ctx context.Context, userID, applicationID uint) error {
	a, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.Invalid("applicationId", "applicationId does not reference an existing application")
	}
	return Authorize(userID, a.UserID)
}
