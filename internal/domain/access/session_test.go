package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResolver() *SessionResolver {
	return NewSessionResolver([]byte("test-secret"))
}

func TestIssueResolveRoundtrip(t *testing.T) {
	sr := testResolver()
	now := time.Now()

	token, err := sr.Issue(Identity{UserID: 42, Email: "reader@example.com"}, RoleParent, now)
	require.NoError(t, err)

	s := sr.Resolve(token)
	require.NotNil(t, s)
	assert.Equal(t, uint(42), s.Identity.UserID)
	assert.Equal(t, "reader@example.com", s.Identity.Email)
	assert.WithinDuration(t, now.Add(sr.TTL), s.ExpiresAt, time.Second)
}

// The role claim must survive resolve-then-reissue, so a refreshed
// cookie never downgrades an admin's hint to the default role.
func TestResolvePreservesRoleHint(t *testing.T) {
	sr := testResolver()
	now := time.Now()

	for _, role := range []Role{RoleParent, RoleAuthor, RoleAdmin} {
		token, err := sr.Issue(Identity{UserID: 42}, role, now)
		require.NoError(t, err)

		s := sr.Resolve(token)
		require.NotNil(t, s)
		assert.Equal(t, role, s.RoleHint)

		reissued, err := sr.Issue(s.Identity, s.RoleHint, now)
		require.NoError(t, err)
		assert.Equal(t, role, sr.Resolve(reissued).RoleHint)
	}
}

func TestResolveRejectsGarbage(t *testing.T) {
	sr := testResolver()

	assert.Nil(t, sr.Resolve(""))
	assert.Nil(t, sr.Resolve("not-a-token"))
	assert.Nil(t, sr.Resolve("aaaa.bbbb.cccc"))
}

func TestResolveRejectsWrongSecret(t *testing.T) {
	token, err := NewSessionResolver([]byte("other-secret")).
		Issue(Identity{UserID: 42}, RoleParent, time.Now())
	require.NoError(t, err)

	assert.Nil(t, testResolver().Resolve(token))
}

func TestResolveRejectsExpired(t *testing.T) {
	sr := testResolver()

	token, err := sr.Issue(Identity{UserID: 42}, RoleParent, time.Now().Add(-2*sr.TTL))
	require.NoError(t, err)

	assert.Nil(t, sr.Resolve(token))
}

func TestResolveIsIdempotent(t *testing.T) {
	sr := testResolver()

	token, err := sr.Issue(Identity{UserID: 42, Email: "reader@example.com"}, RoleParent, time.Now())
	require.NoError(t, err)

	first := sr.Resolve(token)
	second := sr.Resolve(token)

	require.NotNil(t, first)
	assert.Equal(t, first, second)
}

func TestNeedsRefresh(t *testing.T) {
	sr := testResolver()
	now := time.Now()

	fresh := &Session{ExpiresAt: now.Add(sr.TTL)}
	assert.False(t, sr.NeedsRefresh(fresh, now))

	closing := &Session{ExpiresAt: now.Add(sr.RefreshWindow / 2)}
	assert.True(t, sr.NeedsRefresh(closing, now))

	assert.False(t, sr.NeedsRefresh(nil, now))
	assert.False(t, sr.NeedsRefresh(&Session{}, now))
}
