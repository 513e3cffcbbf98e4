package subscriptions

import (
	"testing"

	"dreamnest-app/internal/domain/access"

	"github.com/stretchr/testify/assert"
)

func subWithStatus(status string) *Subscription {
	return &Subscription{UserID: 1, Status: status}
}

func TestIsActive(t *testing.T) {
	cases := []struct {
		status string
		active bool
	}{
		{"active", true},
		{"trialing", true},
		{"past_due", false},
		{"unpaid", false},
		{"canceled", false},
		{"incomplete_expired", false},
		{"", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.active, IsActive(subWithStatus(tc.status)), "status=%q", tc.status)
	}

	assert.False(t, IsActive(nil))
}

func TestFullAccess(t *testing.T) {
	active := subWithStatus("active")
	lapsed := subWithStatus("canceled")

	cases := []struct {
		name     string
		sub      *Subscription
		isAuthor bool
		role     access.Role
		want     bool
	}{
		{"subscriber", active, false, access.RoleParent, true},
		{"trialing subscriber", subWithStatus("trialing"), false, access.RoleParent, true},
		{"book author without subscription", nil, true, access.RoleAuthor, true},
		{"admin without subscription", nil, false, access.RoleAdmin, true},
		{"free parent", nil, false, access.RoleParent, false},
		{"lapsed subscriber", lapsed, false, access.RoleParent, false},
		{"author of a different book", nil, false, access.RoleAuthor, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FullAccess(tc.sub, tc.isAuthor, tc.role))
		})
	}
}
