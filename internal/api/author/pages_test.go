package author

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPermutationOf(t *testing.T) {
	existing := []uint{10, 11, 12}

	t.Run("reordered list accepted", func(t *testing.T) {
		assert.True(t, isPermutationOf([]uint{12, 10, 11}, existing))
	})

	t.Run("same order accepted", func(t *testing.T) {
		assert.True(t, isPermutationOf([]uint{10, 11, 12}, existing))
	})

	// A duplicated id passes a bare length check but would leave one
	// page stranded past the end of the index range.
	t.Run("duplicate id rejected", func(t *testing.T) {
		assert.False(t, isPermutationOf([]uint{10, 10, 11}, existing))
	})

	t.Run("unknown id rejected", func(t *testing.T) {
		assert.False(t, isPermutationOf([]uint{10, 11, 99}, existing))
	})

	t.Run("missing id rejected", func(t *testing.T) {
		assert.False(t, isPermutationOf([]uint{10, 11}, existing))
	})

	t.Run("extra id rejected", func(t *testing.T) {
		assert.False(t, isPermutationOf([]uint{10, 11, 12, 12}, existing))
	})

	t.Run("empty against empty accepted", func(t *testing.T) {
		assert.True(t, isPermutationOf(nil, nil))
	})
}
