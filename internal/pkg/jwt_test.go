package pkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParsePair(t *testing.T) {
	m := NewTokenManager("a-secret", "r-secret", time.Minute, time.Hour)

	pair, err := m.GeneratePair(42)
	require.NoError(t, err)

	claims, err := m.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)

	claims, err = m.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
}

func TestAccessAndRefreshAreNotInterchangeable(t *testing.T) {
	m := NewTokenManager("a-secret", "r-secret", time.Minute, time.Hour)
	pair, err := m.GeneratePair(7)
	require.NoError(t, err)

	_, err = m.ParseAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = m.ParseRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrRefreshInvalid)
}

func TestParseAccessExpired(t *testing.T) {
	m := NewTokenManager("a-secret", "r-secret", time.Minute, time.Hour)
	m.accessTTL = -time.Minute

	pair, err := m.GeneratePair(1)
	require.NoError(t, err)

	_, err = m.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseAccessWrongSecret(t *testing.T) {
	issuer := NewTokenManager("a-secret", "r-secret", time.Minute, time.Hour)
	verifier := NewTokenManager("other", "other", time.Minute, time.Hour)

	pair, err := issuer.GeneratePair(1)
	require.NoError(t, err)

	_, err = verifier.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
