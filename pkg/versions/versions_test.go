package versions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/vstmap/pkg/errors"
	"github.com/agentstation/vstmap/pkg/versions"
)

func TestFamilyOf(t *testing.T) {
	tests := []struct {
		version  string
		expected versions.Family
	}{
		{"2400", versions.Numeric},
		{" 2400 ", versions.Numeric},
		{"0", versions.Numeric},
		{"3.7.6", versions.Dotted},
		{"VST 3.7.6", versions.Dotted},
		{"VST 2400", versions.Dotted},
		{"v1", versions.Dotted},
		{"", versions.Dotted},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			assert.Equal(t, tt.expected, versions.FamilyOf(tt.version))
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected versions.Ordering
	}{
		{"numeric equal", "2400", "2400", versions.Equal},
		{"numeric less", "2300", "2400", versions.Less},
		{"numeric by magnitude not text", "999", "2400", versions.Less},
		{"numeric leading zeros", "02400", "2400", versions.Equal},
		{"numeric beyond uint64", "184467440737095516160", "18446744073709551616", versions.Greater},
		{"dotted greater", "3.7.6", "3.7.5", versions.Greater},
		{"dotted less", "3.6.14", "3.7.0", versions.Less},
		{"dotted multi digit component", "3.10.0", "3.9.9", versions.Greater},
		{"dotted missing trailing zeros", "3.7", "3.7.0", versions.Equal},
		{"dotted shorter is older", "3.7", "3.7.1", versions.Less},
		{"dotted prefix stripped", "VST 3.7.6", "3.7.6", versions.Equal},
		{"dotted v prefix", "v1.2.0", "1.1.9", versions.Greater},
		{"dotted suffix ignored", "1.2.6-beta", "1.2.6", versions.Equal},
		{"dotted no digits reads as zero", "beta", "0.0", versions.Equal},
		{"both empty", "", "", versions.Equal},
		{"empty is minimal against dotted", "", "0.0.1", versions.Less},
		{"empty is less than zero", "", "0.0", versions.Less},
		{"whitespace is empty", "  ", "", versions.Equal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := versions.Compare(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCompareIncompatibleFamilies(t *testing.T) {
	_, err := versions.Compare("2400", "3.7.6")
	require.Error(t, err)
	assert.True(t, errors.IsIncompatibleFamilies(err))

	var mismatch *errors.VersionFamilyMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "numeric", mismatch.FamilyA)
	assert.Equal(t, "dotted", mismatch.FamilyB)

	_, err = versions.Compare("VST 3.0", "3000")
	assert.True(t, errors.IsIncompatibleFamilies(err))
}

func TestCompareEmptyAgainstNumeric(t *testing.T) {
	assert.Equal(t, versions.Dotted, versions.FamilyOf(""))

	for _, pair := range [][2]string{{"2400", ""}, {"", "2400"}, {"0", "  "}} {
		got, err := versions.Compare(pair[0], pair[1])
		require.Error(t, err, "%q vs %q", pair[0], pair[1])
		assert.True(t, errors.IsIncompatibleFamilies(err))
		assert.Equal(t, versions.Equal, got)
	}
}

func TestCompareIsAntisymmetric(t *testing.T) {
	pairs := [][2]string{
		{"3.7.6", "3.7.5"},
		{"2400", "2300"},
		{"", "1.0"},
		{"1.0", "1.0.0"},
	}
	for _, p := range pairs {
		ab, err := versions.Compare(p[0], p[1])
		require.NoError(t, err)
		ba, err := versions.Compare(p[1], p[0])
		require.NoError(t, err)
		assert.Equal(t, ab, -ba, "%q vs %q", p[0], p[1])
	}
}

func TestCompareComponents(t *testing.T) {
	assert.Equal(t, versions.Less, versions.CompareComponents("12", "12.0.1"))
	assert.Equal(t, versions.Equal, versions.CompareComponents("12", "12.0"))
	assert.Equal(t, versions.Greater, versions.CompareComponents("1.1.0", "1.0.0"))
	assert.Equal(t, versions.Less, versions.CompareComponents("", "0"))
	assert.Equal(t, versions.Equal, versions.CompareComponents("", ""))
}

func TestComparePlugin(t *testing.T) {
	t.Run("sdk decides first", func(t *testing.T) {
		got, err := versions.ComparePlugin("3.7.6", "1.0.0", "3.7.5", "9.9.9")
		require.NoError(t, err)
		assert.Equal(t, versions.Greater, got)
	})

	t.Run("falls back to plugin version", func(t *testing.T) {
		got, err := versions.ComparePlugin("3.0.0", "1.1.0", "3.0.0", "1.0.0")
		require.NoError(t, err)
		assert.Equal(t, versions.Greater, got)
	})

	t.Run("plugin versions of mixed shape", func(t *testing.T) {
		got, err := versions.ComparePlugin("2400", "5", "2400", "5.0.1")
		require.NoError(t, err)
		assert.Equal(t, versions.Less, got)
	})

	t.Run("empty plugin version is oldest", func(t *testing.T) {
		got, err := versions.ComparePlugin("3.0.0", "", "3.0.0", "1.0.0")
		require.NoError(t, err)
		assert.Equal(t, versions.Less, got)
	})

	t.Run("sdk family mismatch", func(t *testing.T) {
		_, err := versions.ComparePlugin("2400", "1.0", "3.7.6", "1.0")
		assert.True(t, errors.IsIncompatibleFamilies(err))
	})
}

func TestOrderingString(t *testing.T) {
	assert.Equal(t, "less", versions.Less.String())
	assert.Equal(t, "equal", versions.Equal.String())
	assert.Equal(t, "greater", versions.Greater.String())
}
