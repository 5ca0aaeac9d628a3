package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-job-tracker/internal/domain"
	"go-job-tracker/internal/repo/memory"
)

type clock struct{ t time.Time }

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	ctx   context.Context
	clock *clock
	store *memory.Store
	alice uint
	bob   uint

	apps  *ApplicationService
	docs  *DocumentService
	ivs   *InterviewService
	stats *StatsService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clk := &clock{t: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	st := memory.New(clk.Now)
	ctx := context.Background()

	alice := &domain.User{Username: "alice", PasswordHash: "x"}
	bob := &domain.User{Username: "bob", PasswordHash: "x"}
	require.NoError(t, st.Users().Create(ctx, alice))
	require.NoError(t, st.Users().Create(ctx, bob))

	return &fixture{
		ctx:   ctx,
		clock: clk,
		store: st,
		alice: alice.ID,
		bob:   bob.ID,
		apps:  NewApplicationService(st),
		docs:  NewDocumentService(st),
		ivs:   NewInterviewService(st),
		stats: NewStatsService(st, clk.Now),
	}
}

func (f *fixture) acme(t *testing.T) *domain.JobApplication {
	t.Helper()
	a, err := f.apps.Create(f.ctx, f.alice, NewApplication{Company: "Acme", Position: "Engineer"})
	require.NoError(t, err)
	return a
}

func ptr[T any](v T) *T { return &v }
