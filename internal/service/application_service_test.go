package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-job-tracker/internal/domain"
)

func TestCreateApplicationDefaults(t *testing.T) {
	f := newFixture(t)
	a := f.acme(t)

	assert.NotZero(t, a.ID)
	assert.Equal(t, f.alice, a.UserID)
	assert.Equal(t, domain.StatusApplied, a.Status)
	assert.Equal(t, f.clock.Now(), a.AppliedDate)
	assert.Equal(t, f.clock.Now(), a.UpdatedAt)

	got, err := f.apps.Get(f.ctx, f.alice, a.ID)
	require.NoError(t, err)
	assert.Equal(t, *a, *got)
}

func TestCreateApplicationValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		in   NewApplication
	}{
		{name: "blank company", in: NewApplication{Company: "  ", Position: "Engineer"}},
		{name: "missing position", in: NewApplication{Company: "Acme"}},
		{name: "unknown status", in: NewApplication{Company: "Acme", Position: "Engineer", Status: ptr("ghosted")}},
		{name: "empty status", in: NewApplication{Company: "Acme", Position: "Engineer", Status: ptr("")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.apps.Create(f.ctx, f.alice, tt.in)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}

	list, err := f.apps.List(f.ctx, f.alice)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateApplicationExplicitStatusAndDate(t *testing.T) {
	f := newFixture(t)
	applied := f.clock.Now().Add(-72 * time.Hour)

	a, err := f.apps.Create(f.ctx, f.alice, NewApplication{
		Company:     "Acme",
		Position:    "Engineer",
		Status:      ptr("interview"),
		AppliedDate: &applied,
		ResumeID:    ptr(uint(999)),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInterview, a.Status)
	assert.Equal(t, applied, a.AppliedDate)
	assert.Equal(t, f.clock.Now(), a.UpdatedAt)
	require.NotNil(t, a.ResumeID, "document references are not checked for existence")
	assert.Equal(t, uint(999), *a.ResumeID)
}

func TestSetStatusFreeTransitions(t *testing.T) {
	f := newFixture(t)
	a := f.acme(t)

	for _, next := range []domain.Status{domain.StatusRejected, domain.StatusApplied, domain.StatusOffer, domain.StatusInterview, domain.StatusInterview} {
		f.clock.Advance(time.Minute)
		got, err := f.apps.SetStatus(f.ctx, f.alice, a.ID, string(next))
		require.NoError(t, err)
		assert.Equal(t, next, got.Status)
		assert.Equal(t, f.clock.Now(), got.UpdatedAt)
	}

	ivs, err := f.ivs.List(f.ctx, f.alice, nil)
	require.NoError(t, err)
	assert.Empty(t, ivs, "moving to interview does not schedule anything")
}

func TestSetStatusRejectsUnknownValues(t *testing.T) {
	f := newFixture(t)
	a := f.acme(t)
	f.clock.Advance(time.Hour)

	for _, raw := range []string{"", "Offer", "hired", "applied "} {
		t.Run(raw, func(t *testing.T) {
			_, err := f.apps.SetStatus(f.ctx, f.alice, a.ID, raw)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))

			stored, err := f.apps.Get(f.ctx, f.alice, a.ID)
			require.NoError(t, err)
			assert.Equal(t, *a, *stored)
		})
	}

	_, err := f.apps.Update(f.ctx, f.alice, a.ID, domain.ApplicationPatch{Status: domain.Null[domain.Status]()})
	assert.True(t, domain.IsValidation(err), "status cannot be cleared")
}

func TestUpdateMergesSentFieldsOnly(t *testing.T) {
	f := newFixture(t)
	a, err := f.apps.Create(f.ctx, f.alice, NewApplication{
		Company:  "Acme",
		Position: "Engineer",
		Location: ptr("Berlin"),
		Notes:    ptr("referral"),
	})
	require.NoError(t, err)
	f.clock.Advance(time.Hour)

	got, err := f.apps.Update(f.ctx, f.alice, a.ID, domain.ApplicationPatch{
		Position: domain.Some("  Senior Engineer "),
		Notes:    domain.Null[string](),
		Salary:   domain.Some("100k"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme", got.Company)
	assert.Equal(t, "Senior Engineer", got.Position)
	assert.Equal(t, "Berlin", *got.Location)
	assert.Nil(t, got.Notes)
	assert.Equal(t, "100k", *got.Salary)
	assert.Equal(t, a.AppliedDate, got.AppliedDate)
	assert.Equal(t, f.clock.Now(), got.UpdatedAt)
}

func TestUpdateRejectsClearingRequiredFields(t *testing.T) {
	f := newFixture(t)
	a := f.acme(t)

	for name, p := range map[string]domain.ApplicationPatch{
		"null company":   {Company: domain.Null[string]()},
		"blank position": {Position: domain.Some(strings.Repeat(" ", 3))},
		"null date":      {AppliedDate: domain.Null[time.Time]()},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.apps.Update(f.ctx, f.alice, a.ID, p)
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestUpdatedAtIsMonotonic(t *testing.T) {
	f := newFixture(t)
	a := f.acme(t)
	first := a.UpdatedAt

	f.clock.Advance(-time.Hour) // wall clock stepped back
	got, err := f.apps.Update(f.ctx, f.alice, a.ID, domain.ApplicationPatch{Notes: domain.Some("x")})
	require.NoError(t, err)
	assert.False(t, got.UpdatedAt.Before(first))
}

func TestOwnershipChecks(t *testing.T) {
	f := newFixture(t)
	a := f.acme(t)

	_, err := f.apps.Get(f.ctx, f.bob, a.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.apps.Update(f.ctx, f.bob, a.ID, domain.ApplicationPatch{Company: domain.Some("Evil")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.apps.SetStatus(f.ctx, f.bob, a.ID, "nonsense")
	assert.ErrorIs(t, err, domain.ErrForbidden, "ownership is checked before the payload")

	assert.ErrorIs(t, f.apps.Delete(f.ctx, f.bob, a.ID), domain.ErrForbidden)

	stored, err := f.apps.Get(f.ctx, f.alice, a.ID)
	require.NoError(t, err)
	assert.Equal(t, *a, *stored)

	bobs, err := f.apps.List(f.ctx, f.bob)
	require.NoError(t, err)
	assert.Empty(t, bobs)
}

func TestMissingIDIsNotFoundForEveryone(t *testing.T) {
	f := newFixture(t)
	f.acme(t)

	for _, uid := range []uint{f.alice, f.bob} {
		_, err := f.apps.Get(f.ctx, uid, 4242)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = f.apps.Update(f.ctx, uid, 4242, domain.ApplicationPatch{Company: domain.Some("x")})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.ErrorIs(t, f.apps.Delete(f.ctx, uid, 4242), domain.ErrNotFound)
	}
}

func TestDeleteApplication(t *testing.T) {
	f := newFixture(t)
	a := f.acme(t)

	require.NoError(t, f.apps.Delete(f.ctx, f.alice, a.ID))
	assert.ErrorIs(t, f.apps.Delete(f.ctx, f.alice, a.ID), domain.ErrNotFound)

	// the store itself is idempotent
	require.NoError(t, f.store.Applications().Delete(f.ctx, a.ID))
	require.NoError(t, f.store.Applications().Delete(f.ctx, a.ID))

	b := f.acme(t)
	assert.Greater(t, b.ID, a.ID, "ids are never reused")
}
