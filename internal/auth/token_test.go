package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignerRejectsExpiredToken(t *testing.T) {
	now := time.Date(2026, 1, 29, 12, 0, 0, 0, time.UTC)
	s := signer{secret: []byte("k"), ttl: time.Hour, now: func() time.Time { return now }}

	raw, err := s.issue("1", "admin@cfohub.com", "admin")
	require.NoError(t, err)
	claims, err := s.parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "1", claims.Subject)
	assert.NotEmpty(t, claims.ID)

	now = now.Add(2 * time.Hour)
	_, err = s.parse(raw)
	assert.Error(t, err)
}

func TestSignerRejectsForeignKey(t *testing.T) {
	now := func() time.Time { return time.Now() }
	a := signer{secret: []byte("a"), ttl: time.Hour, now: now}
	b := signer{secret: []byte("b"), ttl: time.Hour, now: now}

	raw, err := a.issue("1", "x@y.z", "admin")
	require.NoError(t, err)
	_, err = b.parse(raw)
	assert.Error(t, err)
}
