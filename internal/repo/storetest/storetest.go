// Package storetest holds the behaviour every domain.Store must share. Each
// backend runs it from its own tests.
package storetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-job-tracker/internal/domain"
)

// Clock is a settable time source for stores under test.
type Clock struct {
	mu sync.Mutex
	t  time.Time
}

func NewClock() *Clock {
	return &Clock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func (c *Clock) Advance(d time.Duration) { c.Set(c.Now().Add(d)) }

// Factory opens an empty store that reads time from now.
type Factory func(t *testing.T, now func() time.Time) domain.Store

func Run(t *testing.T, open Factory) {
	t.Run("users", func(t *testing.T) { testUsers(t, open) })
	t.Run("applications", func(t *testing.T) { testApplications(t, open) })
	t.Run("updated at never goes back", func(t *testing.T) { testMonotonic(t, open) })
	t.Run("documents", func(t *testing.T) { testDocuments(t, open) })
	t.Run("interviews", func(t *testing.T) { testInterviews(t, open) })
	t.Run("delete cascades to interviews", func(t *testing.T) { testCascade(t, open) })
}

func sameTime(t *testing.T, want, got time.Time) {
	t.Helper()
	assert.True(t, want.Equal(got), "want %s, got %s", want, got)
}

func user(t *testing.T, s domain.Store, name string) *domain.User {
	t.Helper()
	u := &domain.User{Username: name, PasswordHash: "x"}
	require.NoError(t, s.Users().Create(context.Background(), u))
	return u
}

func testUsers(t *testing.T, open Factory) {
	ctx := context.Background()
	clk := NewClock()
	s := open(t, clk.Now)

	email := "alice@example.com"
	u := &domain.User{Username: "alice", PasswordHash: "hash", Email: &email, Skills: []string{"go", "sql"}}
	require.NoError(t, s.Users().Create(ctx, u))
	assert.NotZero(t, u.ID)

	got, err := s.Users().FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.Equal(t, []string{"go", "sql"}, got.Skills)
	require.NotNil(t, got.Email)
	assert.Equal(t, email, *got.Email)
	assert.Nil(t, got.FullName)

	byID, err := s.Users().FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "alice", byID.Username)

	err = s.Users().Create(ctx, &domain.User{Username: "alice", PasswordHash: "other"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	missing, err := s.Users().FindByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
	missing, err = s.Users().FindByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func testApplications(t *testing.T, open Factory) {
	ctx := context.Background()
	clk := NewClock()
	s := open(t, clk.Now)
	alice, bob := user(t, s, "alice"), user(t, s, "bob")
	apps := s.Applications()

	a := &domain.JobApplication{UserID: alice.ID, Company: "Acme", Position: "Engineer"}
	require.NoError(t, apps.Create(ctx, a))
	assert.Equal(t, domain.StatusApplied, a.Status)
	sameTime(t, clk.Now(), a.AppliedDate)
	sameTime(t, clk.Now(), a.UpdatedAt)

	applied := clk.Now().Add(-72 * time.Hour)
	b := &domain.JobApplication{UserID: alice.ID, Company: "Globex", Position: "SRE", Status: domain.StatusInterview, AppliedDate: applied}
	require.NoError(t, apps.Create(ctx, b))
	assert.Greater(t, b.ID, a.ID)
	c := &domain.JobApplication{UserID: bob.ID, Company: "Initech", Position: "QA"}
	require.NoError(t, apps.Create(ctx, c))

	list, err := apps.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, b.ID, list[1].ID)
	assert.Equal(t, domain.StatusInterview, list[1].Status)
	sameTime(t, applied, list[1].AppliedDate)

	clk.Advance(time.Hour)
	updated, err := apps.Update(ctx, a.ID, domain.ApplicationPatch{
		Notes:  domain.Some("call back"),
		Status: domain.Some(domain.StatusOffer),
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme", updated.Company)
	assert.Equal(t, domain.StatusOffer, updated.Status)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "call back", *updated.Notes)
	sameTime(t, clk.Now(), updated.UpdatedAt)

	cleared, err := apps.Update(ctx, a.ID, domain.ApplicationPatch{Notes: domain.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, cleared.Notes)
	assert.Equal(t, domain.StatusOffer, cleared.Status)

	_, err = apps.Update(ctx, 999, domain.ApplicationPatch{Notes: domain.Some("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// ids are never reused, even for the latest one
	require.NoError(t, apps.Delete(ctx, c.ID))
	require.NoError(t, apps.Delete(ctx, c.ID))
	gone, err := apps.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	d := &domain.JobApplication{UserID: bob.ID, Company: "Hooli", Position: "PM"}
	require.NoError(t, apps.Create(ctx, d))
	assert.Greater(t, d.ID, c.ID)

	empty, err := apps.ListByOwner(ctx, 12345)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func testMonotonic(t *testing.T, open Factory) {
	ctx := context.Background()
	clk := NewClock()
	s := open(t, clk.Now)
	alice := user(t, s, "alice")

	a := &domain.JobApplication{UserID: alice.ID, Company: "Acme", Position: "Engineer"}
	require.NoError(t, s.Applications().Create(ctx, a))
	created := a.UpdatedAt

	clk.Advance(-time.Hour)
	got, err := s.Applications().Update(ctx, a.ID, domain.ApplicationPatch{Salary: domain.Some("100k")})
	require.NoError(t, err)
	assert.False(t, got.UpdatedAt.Before(created))

	doc := &domain.Document{UserID: alice.ID, Name: "CV", Type: domain.DocumentResume, Content: "..."}
	require.NoError(t, s.Documents().Create(ctx, doc))
	clk.Advance(-time.Hour)
	gotDoc, err := s.Documents().Update(ctx, doc.ID, domain.DocumentPatch{Name: domain.Some("CV v2")})
	require.NoError(t, err)
	assert.False(t, gotDoc.UpdatedAt.Before(doc.UpdatedAt))
}

func testDocuments(t *testing.T, open Factory) {
	ctx := context.Background()
	clk := NewClock()
	s := open(t, clk.Now)
	alice := user(t, s, "alice")
	docs := s.Documents()

	d := &domain.Document{UserID: alice.ID, Name: "CV", Type: domain.DocumentResume, Content: "# me", UsageCount: 7}
	require.NoError(t, docs.Create(ctx, d))
	assert.Zero(t, d.UsageCount)
	sameTime(t, clk.Now(), d.CreatedAt)
	sameTime(t, clk.Now(), d.UpdatedAt)

	clk.Advance(time.Minute)
	got, err := docs.Update(ctx, d.ID, domain.DocumentPatch{
		Type:        domain.Some("portfolio"),
		Description: domain.Some("public"),
	})
	require.NoError(t, err)
	assert.Equal(t, "CV", got.Name)
	assert.Equal(t, "portfolio", got.Type)
	assert.Equal(t, "# me", got.Content)
	sameTime(t, d.CreatedAt, got.CreatedAt)
	sameTime(t, clk.Now(), got.UpdatedAt)

	list, err := docs.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Zero(t, list[0].UsageCount)

	_, err = docs.Update(ctx, 999, domain.DocumentPatch{Name: domain.Some("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, docs.Delete(ctx, d.ID))
	require.NoError(t, docs.Delete(ctx, d.ID))
	gone, err := docs.FindByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func testInterviews(t *testing.T, open Factory) {
	ctx := context.Background()
	clk := NewClock()
	s := open(t, clk.Now)
	alice := user(t, s, "alice")
	a1 := &domain.JobApplication{UserID: alice.ID, Company: "Acme", Position: "Engineer"}
	a2 := &domain.JobApplication{UserID: alice.ID, Company: "Globex", Position: "SRE"}
	require.NoError(t, s.Applications().Create(ctx, a1))
	require.NoError(t, s.Applications().Create(ctx, a2))
	ivs := s.Interviews()

	when := clk.Now().Add(48 * time.Hour)
	iv := &domain.Interview{UserID: alice.ID, ApplicationID: a1.ID, Title: "Phone screen", Date: when}
	require.NoError(t, ivs.Create(ctx, iv))
	assert.NotZero(t, iv.ID)

	got, err := ivs.FindByID(ctx, iv.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.Completed)
	sameTime(t, when, got.Date)

	updated, err := ivs.Update(ctx, iv.ID, domain.InterviewPatch{
		ApplicationID: domain.Some(a2.ID),
		Completed:     domain.Some(true),
		Feedback:      domain.Some("went well"),
	})
	require.NoError(t, err)
	assert.Equal(t, a2.ID, updated.ApplicationID)
	assert.True(t, updated.Completed)
	assert.Equal(t, "Phone screen", updated.Title)

	_, err = ivs.Update(ctx, 999, domain.InterviewPatch{Title: domain.Some("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := ivs.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, ivs.Delete(ctx, iv.ID))
	require.NoError(t, ivs.Delete(ctx, iv.ID))
	list, err = ivs.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func testCascade(t *testing.T, open Factory) {
	ctx := context.Background()
	clk := NewClock()
	s := open(t, clk.Now)
	alice := user(t, s, "alice")
	keep := &domain.JobApplication{UserID: alice.ID, Company: "Acme", Position: "Engineer"}
	drop := &domain.JobApplication{UserID: alice.ID, Company: "Globex", Position: "SRE"}
	require.NoError(t, s.Applications().Create(ctx, keep))
	require.NoError(t, s.Applications().Create(ctx, drop))

	for _, appID := range []uint{keep.ID, drop.ID, drop.ID} {
		iv := &domain.Interview{UserID: alice.ID, ApplicationID: appID, Title: "Round", Date: clk.Now()}
		require.NoError(t, s.Interviews().Create(ctx, iv))
	}

	require.NoError(t, s.Applications().Delete(ctx, drop.ID))

	left, err := s.Interviews().ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, keep.ID, left[0].ApplicationID)
}
