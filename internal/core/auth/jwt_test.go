package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueParse(t *testing.T) {
	j := &JWTer{Secret: []byte("s3cret"), Issuer: "job-tracker", TTL: time.Hour}

	tok, exp, err := j.Issue(7, "sid-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(7), c.UID)
	assert.Equal(t, "sid-1", c.SID)
}

func TestParseRejects(t *testing.T) {
	j := &JWTer{Secret: []byte("s3cret"), Issuer: "job-tracker", TTL: time.Hour}
	tok, _, err := j.Issue(7, "sid-1")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("other"), Issuer: "job-tracker", TTL: time.Hour}
	_, err = other.Parse(tok)
	assert.Error(t, err, "wrong secret")

	wrongIssuer := &JWTer{Secret: []byte("s3cret"), Issuer: "someone-else", TTL: time.Hour}
	_, err = wrongIssuer.Parse(tok)
	assert.Error(t, err, "wrong issuer")

	past := time.Now().Add(-3 * time.Hour)
	stale := &JWTer{Secret: []byte("s3cret"), Issuer: "job-tracker", TTL: time.Hour, Now: func() time.Time { return past }}
	old, _, err := stale.Issue(7, "sid-1")
	require.NoError(t, err)
	_, err = j.Parse(old)
	assert.Error(t, err, "expired")

	_, err = j.Parse("not-a-token")
	assert.Error(t, err)
}
