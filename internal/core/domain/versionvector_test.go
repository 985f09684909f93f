package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tradelens/barter_ledger/internal/core/domain"
)

func TestVersionVector_Increment(t *testing.T) {
	v := domain.NewVersionVector("device-a")
	assert.Equal(t, int64(1), v.Counter("device-a"))

	v.Increment("device-a")
	assert.Equal(t, int64(2), v.Counter("device-a"))

	// Incrementing one device leaves all other keys unchanged.
	v.Increment("device-b")
	assert.Equal(t, int64(2), v.Counter("device-a"))
	assert.Equal(t, int64(1), v.Counter("device-b"))
}

func TestVersionVector_Descends(t *testing.T) {
	tests := []struct {
		name  string
		left  domain.VersionVector
		right domain.VersionVector
		want  bool
	}{
		{
			name:  "equal vectors descend each other",
			left:  domain.VersionVector{"a": 2, "b": 1},
			right: domain.VersionVector{"a": 2, "b": 1},
			want:  true,
		},
		{
			name:  "strict successor descends",
			left:  domain.VersionVector{"a": 3, "b": 1},
			right: domain.VersionVector{"a": 2, "b": 1},
			want:  true,
		},
		{
			name:  "missing key treated as zero",
			left:  domain.VersionVector{"a": 2},
			right: domain.VersionVector{"a": 2, "b": 1},
			want:  false,
		},
		{
			name:  "divergent vectors do not descend",
			left:  domain.VersionVector{"a": 3, "b": 1},
			right: domain.VersionVector{"a": 2, "b": 2},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.left.Descends(tt.right))
		})
	}
}

func TestVersionVector_Concurrent(t *testing.T) {
	base := domain.VersionVector{"a": 1, "b": 1}

	editedByA := base.Clone()
	editedByA.Increment("a")

	editedByB := base.Clone()
	editedByB.Increment("b")

	assert.True(t, editedByA.Concurrent(editedByB))
	assert.False(t, editedByA.Concurrent(base))
	assert.False(t, base.Concurrent(base))
}

func TestVersionVector_Merge(t *testing.T) {
	left := domain.VersionVector{"a": 2, "b": 1}
	right := domain.VersionVector{"a": 1, "b": 3, "c": 1}

	left.Merge(right)

	assert.Equal(t, domain.VersionVector{"a": 2, "b": 3, "c": 1}, left)
	// Merged vector descends both inputs.
	assert.True(t, left.Descends(right))
}

func TestVersionVector_CloneIsIndependent(t *testing.T) {
	original := domain.NewVersionVector("a")
	clone := original.Clone()
	clone.Increment("a")

	assert.Equal(t, int64(1), original.Counter("a"))
	assert.Equal(t, int64(2), clone.Counter("a"))
}
