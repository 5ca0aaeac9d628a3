package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-job-tracker/internal/domain"
)

func TestComputeStatsEmpty(t *testing.T) {
	st := ComputeStats(nil, nil, time.Now())

	assert.Zero(t, st.TotalApplications)
	assert.Zero(t, st.InterviewsScheduled)
	assert.Zero(t, st.ResponseRate)
	assert.Zero(t, st.DaysInSearch)
	assert.Len(t, st.ApplicationsByStatus, 4)
	for _, s := range domain.Statuses {
		assert.Zero(t, st.ApplicationsByStatus[s], s)
	}
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	app := func(s domain.Status, applied time.Time) domain.JobApplication {
		return domain.JobApplication{Status: s, AppliedDate: applied}
	}

	tests := []struct {
		name     string
		apps     []domain.JobApplication
		ivs      int
		wantRate int
		wantDays int
	}{
		{
			name:     "one of three responded",
			apps:     []domain.JobApplication{app(domain.StatusApplied, now.Add(-48*time.Hour)), app(domain.StatusInterview, now), app(domain.StatusApplied, now)},
			wantRate: 33,
			wantDays: 2,
		},
		{
			name:     "two of three rounds up",
			apps:     []domain.JobApplication{app(domain.StatusOffer, now), app(domain.StatusInterview, now), app(domain.StatusRejected, now)},
			ivs:      5,
			wantRate: 67,
		},
		{
			name:     "partial days are floored",
			apps:     []domain.JobApplication{app(domain.StatusRejected, now.Add(-71*time.Hour))},
			wantDays: 2,
		},
		{
			name: "future applied date clamps to zero",
			apps: []domain.JobApplication{app(domain.StatusApplied, now.Add(24*time.Hour))},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := ComputeStats(tt.apps, make([]domain.Interview, tt.ivs), now)
			assert.Equal(t, len(tt.apps), st.TotalApplications)
			assert.Equal(t, tt.ivs, st.InterviewsScheduled)
			assert.Equal(t, tt.wantRate, st.ResponseRate)
			assert.Equal(t, tt.wantDays, st.DaysInSearch)
		})
	}
}

func TestStatsFollowStatusChanges(t *testing.T) {
	f := newFixture(t)
	a := f.acme(t)
	f.acme(t)

	before, err := f.stats.Compute(f.ctx, f.alice)
	require.NoError(t, err)

	_, err = f.apps.SetStatus(f.ctx, f.alice, a.ID, "offer")
	require.NoError(t, err)
	_, err = f.ivs.Create(f.ctx, f.alice, NewInterview{ApplicationID: a.ID, Title: "Final", Date: f.clock.Now(), Completed: true})
	require.NoError(t, err)

	after, err := f.stats.Compute(f.ctx, f.alice)
	require.NoError(t, err)
	assert.Equal(t, before.ApplicationsByStatus[domain.StatusOffer]+1, after.ApplicationsByStatus[domain.StatusOffer])
	assert.Equal(t, before.ApplicationsByStatus[domain.StatusApplied]-1, after.ApplicationsByStatus[domain.StatusApplied])
	assert.Equal(t, 1, after.InterviewsScheduled, "completed interviews still count")
	assert.Equal(t, 50, after.ResponseRate)

	bob, err := f.stats.Compute(f.ctx, f.bob)
	require.NoError(t, err)
	assert.Zero(t, bob.TotalApplications)
}

func TestStatsDaysInSearch(t *testing.T) {
	f := newFixture(t)
	base := f.clock.Now()
	_, err := f.apps.Create(f.ctx, f.alice, NewApplication{Company: "A", Position: "P", AppliedDate: ptr(base.Add(-48 * time.Hour))})
	require.NoError(t, err)
	b := f.acme(t)
	f.acme(t)
	_, err = f.apps.SetStatus(f.ctx, f.alice, b.ID, "interview")
	require.NoError(t, err)

	st, err := f.stats.Compute(f.ctx, f.alice)
	require.NoError(t, err)
	assert.Equal(t, 3, st.TotalApplications)
	assert.Equal(t, 33, st.ResponseRate)
	assert.Equal(t, 2, st.DaysInSearch)
}
