package service

import (
	"context"
	"strings"
	"time"

	"go-job-tracker/internal/domain"
)

// NewApplication is the create payload. Status defaults to applied.
type NewApplication struct {
	Company       string     `json:"company" binding:"required"`
	Position      string     `json:"position" binding:"required"`
	Location      *string    `json:"location"`
	Salary        *string    `json:"salary"`
	JobType       *string    `json:"jobType"`
	WorkMode      *string    `json:"workMode"`
	Description   *string    `json:"description"`
	Notes         *string    `json:"notes"`
	URL           *string    `json:"url"`
	ContactInfo   *string    `json:"contactInfo"`
	Status        *string    `json:"status"`
	ResumeID      *uint      `json:"resumeId"`
	CoverLetterID *uint      `json:"coverLetterId"`
	AppliedDate   *time.Time `json:"appliedDate"`
}

type ApplicationService struct {
	repo domain.ApplicationRepository
}

func NewApplicationService(st domain.Store) *ApplicationService {
	return &ApplicationService{repo: st.Applications()}
}

func appOwner(a *domain.JobApplication) uint { return a.UserID }

func (s *ApplicationService) List(ctx context.Context, userID uint) ([]domain.JobApplication, error) {
	return s.repo.ListByOwner(ctx, userID)
}

func (s *ApplicationService) Create(ctx context.Context, userID uint, in NewApplication) (*domain.JobApplication, error) {
	company := strings.TrimSpace(in.Company)
	position := strings.TrimSpace(in.Position)
	if company == "" {
		return nil, domain.Invalid("company", "company is required")
	}
	if position == "" {
		return nil, domain.Invalid("position", "position is required")
	}
	status := domain.StatusApplied
	if in.Status != nil {
		st, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}

	a := &domain.JobApplication{
		UserID:        userID,
		Company:       company,
		Position:      position,
		Location:      in.Location,
		Salary:        in.Salary,
		JobType:       in.JobType,
		WorkMode:      in.WorkMode,
		Description:   in.Description,
		Notes:         in.Notes,
		URL:           in.URL,
		ContactInfo:   in.ContactInfo,
		Status:        status,
		ResumeID:      in.ResumeID,
		CoverLetterID: in.CoverLetterID,
	}
	if in.AppliedDate != nil {
		a.AppliedDate = *in.AppliedDate
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	entitiesCreated.WithLabelValues("application").Inc()
	return a, nil
}

func (s *ApplicationService) Get(ctx context.Context, userID, id uint) (*domain.JobApplication, error) {
	return loadOwned(ctx, s.repo.FindByID, appOwner, userID, id)
}

// Update merges p after existence and ownership checks. A rejected patch
// leaves the stored record untouched.
func (s *ApplicationService) Update(ctx context.Context, userID, id uint, p domain.ApplicationPatch) (*domain.JobApplication, error) {
	cur, err := loadOwned(ctx, s.repo.FindByID, appOwner, userID, id)
	if err != nil {
		return nil, err
	}
	if err := validateApplicationPatch(&p); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	if updated.Status != cur.Status {
		statusTransitions.WithLabelValues(string(cur.Status), string(updated.Status)).Inc()
	}
	return updated, nil
}

// SetStatus relabels an application. Any status may follow any other.
func (s *ApplicationService) SetStatus(ctx context.Context, userID, id uint, status string) (*domain.JobApplication, error) {
	return s.Update(ctx, userID, id, domain.ApplicationPatch{Status: domain.Some(domain.Status(status))})
}

func (s *ApplicationService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := loadOwned(ctx, s.repo.FindByID, appOwner, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func validateApplicationPatch(p *domain.ApplicationPatch) error {
	if domain.Blank(p.Company) {
		return domain.Invalid("company", "company cannot be empty")
	}
	if domain.Blank(p.Position) {
		return domain.Invalid("position", "position cannot be empty")
	}
	trim(&p.Company)
	trim(&p.Position)
	if p.Status.Set {
		raw := ""
		if p.Status.Value != nil {
			raw = string(*p.Status.Value)
		}
		if _, err := domain.ParseStatus(raw); err != nil {
			return err
		}
	}
	if p.AppliedDate.Set && (p.AppliedDate.Value == nil || p.AppliedDate.Value.IsZero()) {
		return domain.Invalid("appliedDate", "appliedDate cannot be empty")
	}
	return nil
}

func trim(o *domain.Optional[string]) {
	if o.Set && o.Value != nil {
		v := strings.TrimSpace(*o.Value)
		o.Value = &v
	}
}
