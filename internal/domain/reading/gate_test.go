package reading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAccessPreviewWindow(t *testing.T) {
	// Without full access only the first DefaultPreviewLimit pages open.
	for i := 0; i < DefaultPreviewLimit; i++ {
		assert.True(t, CanAccess(false, i, DefaultPreviewLimit), "page %d should be previewable", i)
	}
	assert.False(t, CanAccess(false, DefaultPreviewLimit, DefaultPreviewLimit))
	assert.False(t, CanAccess(false, DefaultPreviewLimit+10, DefaultPreviewLimit))
}

func TestCanAccessFullAccessIgnoresIndex(t *testing.T) {
	for _, idx := range []int{0, DefaultPreviewLimit, 500} {
		assert.True(t, CanAccess(true, idx, DefaultPreviewLimit))
	}
}

func TestCanAccessIsIdempotent(t *testing.T) {
	first := CanAccess(false, 5, DefaultPreviewLimit)
	second := CanAccess(false, 5, DefaultPreviewLimit)
	assert.Equal(t, first, second)
}

func TestParsePageParam(t *testing.T) {
	cases := []struct {
		raw   string
		value int
		ok    bool
	}{
		{"", 0, false},
		{"0", 0, true},
		{"7", 7, true},
		{"-1", 0, false},
		{"abc", 0, false},
		{"3.5", 0, false},
		{" 3", 0, false},
	}

	for _, tc := range cases {
		v, ok := ParsePageParam(tc.raw)
		assert.Equal(t, tc.ok, ok, "raw=%q", tc.raw)
		assert.Equal(t, tc.value, v, "raw=%q", tc.raw)
	}
}

func TestStartIndexParamWins(t *testing.T) {
	session := &Session{CurrentPageIndex: 9}

	assert.Equal(t, 4, StartIndex("4", session, 20))
}

func TestStartIndexResumesFromSession(t *testing.T) {
	session := &Session{CurrentPageIndex: 9}

	assert.Equal(t, 9, StartIndex("", session, 20))
}

func TestStartIndexClampsStaleResume(t *testing.T) {
	// Book shortened after the session was written.
	session := &Session{CurrentPageIndex: 30}

	assert.Equal(t, 19, StartIndex("", session, 20))
	assert.Equal(t, 0, StartIndex("", session, 0))
}

func TestStartIndexIgnoresBadParam(t *testing.T) {
	session := &Session{CurrentPageIndex: 9}

	assert.Equal(t, 9, StartIndex("-2", session, 20))
	assert.Equal(t, 9, StartIndex("junk", session, 20))
}

func TestStartIndexDefaultsToFirstPage(t *testing.T) {
	assert.Equal(t, 0, StartIndex("", nil, 20))
}

// A subscriber and a free reader opening the same book: the subscriber
// sees any page, the free reader only the preview window.
func TestPaywallScenario(t *testing.T) {
	requested := 5

	assert.True(t, CanAccess(true, requested, DefaultPreviewLimit))
	assert.False(t, CanAccess(false, requested, DefaultPreviewLimit))
	assert.True(t, CanAccess(false, 2, DefaultPreviewLimit))
}
