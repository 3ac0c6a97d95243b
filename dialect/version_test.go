package dialect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/froque/sqlast/dialect"
)

func TestParseVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want dialect.Version
	}{
		{"13", dialect.Version{Major: 13}},
		{"8.0", dialect.Version{Major: 8, Minor: 0}},
		{"8.0.23", dialect.Version{Major: 8, Minor: 0, Patch: 23}},
		{"3.45.1", dialect.Version{Major: 3, Minor: 45, Patch: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := dialect.ParseVersion(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}

	t.Run("Invalid", func(t *testing.T) {
		for _, in := range []string{"", "x", "1.y", "-1", "1.-2"} {
			_, err := dialect.ParseVersion(in)
			assert.Error(t, err, "input %q", in)
		}
	})
}

func TestVersionCompare(t *testing.T) {
	t.Parallel()

	v13 := dialect.Version{Major: 13}
	v1301 := dialect.Version{Major: 13, Minor: 0, Patch: 1}
	v14 := dialect.Version{Major: 14}

	assert.True(t, v14.AtLeast(v13))
	assert.True(t, v13.AtLeast(v13))
	assert.False(t, v13.AtLeast(v14))
	assert.True(t, v1301.AtLeast(v13))
	assert.False(t, v13.AtLeast(v1301))

	assert.Equal(t, 0, v13.Compare(dialect.Version{Major: 13}))
	assert.Equal(t, -1, v13.Compare(v14))
	assert.Equal(t, 1, v14.Compare(v13))
}

func TestVersionString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "8.0.23", dialect.Version{Major: 8, Minor: 0, Patch: 23}.String())
	assert.Equal(t, "13.0.0", dialect.MustParseVersion("13").String())
	assert.Panics(t, func() { dialect.MustParseVersion("not-a-version") })
}
