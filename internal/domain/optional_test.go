package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalPresence(t *testing.T) {
	var p ApplicationPatch
	require.NoError(t, json.Unmarshal([]byte(`{"company":"Acme","notes":null}`), &p))

	assert.True(t, p.Company.Set)
	require.NotNil(t, p.Company.Value)
	assert.Equal(t, "Acme", *p.Company.Value)

	assert.True(t, p.Notes.Set)
	assert.Nil(t, p.Notes.Value)

	assert.False(t, p.Location.Set)
	assert.False(t, p.Status.Set)
}

func TestApplicationApply(t *testing.T) {
	loc := "Berlin"
	notes := "call back"
	a := JobApplication{Company: "Acme", Position: "Engineer", Location: &loc, Notes: &notes, Status: StatusApplied}

	a.Apply(ApplicationPatch{
		Position: Some("Staff Engineer"),
		Notes:    Null[string](),
		Status:   Some(StatusOffer),
	})

	assert.Equal(t, "Acme", a.Company)
	assert.Equal(t, "Staff Engineer", a.Position)
	require.NotNil(t, a.Location)
	assert.Equal(t, "Berlin", *a.Location)
	assert.Nil(t, a.Notes)
	assert.Equal(t, StatusOffer, a.Status)
}

func TestApplyValueIgnoresNull(t *testing.T) {
	iv := Interview{Title: "Onsite", Date: time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC), Completed: true}
	iv.Apply(InterviewPatch{Title: Null[string](), Completed: Some(false)})

	assert.Equal(t, "Onsite", iv.Title)
	assert.False(t, iv.Completed)
}

func TestBlank(t *testing.T) {
	assert.False(t, Blank(Optional[string]{}))
	assert.True(t, Blank(Null[string]()))
	assert.True(t, Blank(Some("   ")))
	assert.False(t, Blank(Some("x")))
}
