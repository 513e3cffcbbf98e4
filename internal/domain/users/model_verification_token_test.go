package users

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVerificationTokenExpired(t *testing.T) {
	now := time.Now()

	live := VerificationToken{ExpiresAt: now.Add(time.Hour)}
	assert.False(t, live.Expired(now))

	stale := VerificationToken{ExpiresAt: now.Add(-time.Minute)}
	assert.True(t, stale.Expired(now))

	// Rows written before expiry was tracked have a zero ExpiresAt and
	// stay redeemable.
	legacy := VerificationToken{}
	assert.False(t, legacy.Expired(now))
}
