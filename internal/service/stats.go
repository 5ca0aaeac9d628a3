package service

import (
	"context"
	"math"
	"time"

	"go-job-tracker/internal/domain"
)

type Stats struct {
	TotalApplications    int                   `json:"totalApplications"`
	InterviewsScheduled  int                   `json:"interviewsScheduled"`
	ResponseRate         int                   `json:"responseRate"`
	DaysInSearch         int                   `json:"daysInSearch"`
	ApplicationsByStatus map[domain.Status]int `json:"applicationsByStatus"`
}

// ComputeStats derives the dashboard from the given entity sets as of now.
func ComputeStats(apps []domain.JobApplication, interviews []domain.Interview, now time.Time) Stats {
	st := Stats{
		TotalApplications:    len(apps),
		InterviewsScheduled:  len(interviews),
		ApplicationsByStatus: make(map[domain.Status]int, len(domain.Statuses)),
	}
	for _, s := range domain.Statuses {
		st.ApplicationsByStatus[s] = 0
	}
	if len(apps) == 0 {
		return st
	}

	earliest := apps[0].AppliedDate
	for _, a := range apps {
		st.ApplicationsByStatus[a.Status]++
		if a.AppliedDate.Before(earliest) {
			earliest = a.AppliedDate
		}
	}

	responded := st.ApplicationsByStatus[domain.StatusInterview] + st.ApplicationsByStatus[domain.StatusOffer]
	st.ResponseRate = int(math.Round(float64(responded) / float64(len(apps)) * 100))

	if d := now.Sub(earliest); d > 0 {
		st.DaysInSearch = int(d / (24 * time.Hour))
	}
	return st
}

// StatsService recomputes on every call; nothing is cached.
type StatsService struct {
	apps       domain.ApplicationRepository
	interviews domain.InterviewRepository
	now        func() time.Time
}

func NewStatsService(st domain.Store, now func() time.Time) *StatsService {
	if now == nil {
		now = time.Now
	}
	return &StatsService{apps: st.Applications(), interviews: st.Interviews(), now: now}
}

func (s *StatsService) Compute(ctx context.Context, userID uint) (Stats, error) {
	apps, err := s.apps.ListByOwner(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	ivs, err := s.interviews.ListByOwner(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(apps, ivs, s.now()), nil
}
