package domain

import (
	"context"
	"time"
)

// JobApplication is one position a user applied for.
type JobApplication struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"index;not null" json:"userId"`
	User          *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Company       string    `gorm:"size:255;not null" json:"company"`
	Position      string    `gorm:"size:255;not null" json:"position"`
	Location      *string   `gorm:"size:255" json:"location"`
	Salary        *string   `gorm:"size:64" json:"salary"`
	JobType       *string   `gorm:"size:32" json:"jobType"`
	WorkMode      *string   `gorm:"size:32" json:"workMode"`
	Description   *string   `gorm:"type:text" json:"description"`
	Notes         *string   `gorm:"type:text" json:"notes"`
	URL           *string   `gorm:"size:1024" json:"url"`
	ContactInfo   *string   `gorm:"type:text" json:"contactInfo"`
	Status        Status    `gorm:"size:16;not null;default:applied;index" json:"status"`
	ResumeID      *uint     `json:"resumeId"`
	CoverLetterID *uint     `json:"coverLetterId"`
	AppliedDate   time.Time `gorm:"not null" json:"appliedDate"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime:false;not null" json:"updatedAt"`
}

func (JobApplication) TableName() string { return "job_applications" }

// ApplicationPatch carries the fields of a partial update. There is no
// UpdatedAt: the store assigns it.
type ApplicationPatch struct {
	Company       Optional[string]    `json:"company"`
	Position      Optional[string]    `json:"position"`
	Location      Optional[string]    `json:"location"`
	Salary        Optional[string]    `json:"salary"`
	JobType       Optional[string]    `json:"jobType"`
	WorkMode      Optional[string]    `json:"workMode"`
	Description   Optional[string]    `json:"description"`
	Notes         Optional[string]    `json:"notes"`
	URL           Optional[string]    `json:"url"`
	ContactInfo   Optional[string]    `json:"contactInfo"`
	Status        Optional[Status]    `json:"status"`
	ResumeID      Optional[uint]      `json:"resumeId"`
	CoverLetterID Optional[uint]      `json:"coverLetterId"`
	AppliedDate   Optional[time.Time] `json:"appliedDate"`
}

// Apply merges the sent fields into a.
func (a *JobApplication) Apply(p ApplicationPatch) {
	p.Company.ApplyValue(&a.Company)
	p.Position.ApplyValue(&a.Position)
	p.Location.Apply(&a.Location)
	p.Salary.Apply(&a.Salary)
	p.JobType.Apply(&a.JobType)
	p.WorkMode.Apply(&a.WorkMode)
	p.Description.Apply(&a.Description)
	p.Notes.Apply(&a.Notes)
	p.URL.Apply(&a.URL)
	p.ContactInfo.Apply(&a.ContactInfo)
	p.Status.ApplyValue(&a.Status)
	p.ResumeID.Apply(&a.ResumeID)
	p.CoverLetterID.Apply(&a.CoverLetterID)
	p.AppliedDate.ApplyValue(&a.AppliedDate)
}

type ApplicationRepository interface {
	Create(ctx context.Context, a *JobApplication) error
	FindByID(ctx context.Context, id uint) (*JobApplication, error)
	ListByOwner(ctx context.Context, userID uint) ([]JobApplication, error)
	Update(ctx context.Context, id uint, p ApplicationPatch) (*JobApplication, error)
	// Delete removes the application and its interviews. Absent ids are not an error.
	Delete(ctx context.Context, id uint) error
}
