package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-job-tracker/internal/domain"
	"go-job-tracker/internal/repo/storetest"
)

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T, now func() time.Time) domain.Store {
		return New(now)
	})
}

func TestCreateNeedsExistingParents(t *testing.T) {
	ctx := context.Background()
	s := New(storetest.NewClock().Now)

	err := s.Applications().Create(ctx, &domain.JobApplication{UserID: 1, Company: "Acme", Position: "Dev"})
	require.Error(t, err)

	u := &domain.User{Username: "alice", PasswordHash: "x"}
	require.NoError(t, s.Users().Create(ctx, u))
	err = s.Interviews().Create(ctx, &domain.Interview{UserID: u.ID, ApplicationID: 42, Title: "Screen"})
	require.Error(t, err)

	list, err := s.Interviews().ListByOwner(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := New(storetest.NewClock().Now)
	u := &domain.User{Username: "alice", PasswordHash: "x"}
	require.NoError(t, s.Users().Create(ctx, u))
	a := &domain.JobApplication{UserID: u.ID, Company: "Acme", Position: "Dev"}
	require.NoError(t, s.Applications().Create(ctx, a))

	a.Company = "changed by caller"
	got, err := s.Applications().FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Company)
}
