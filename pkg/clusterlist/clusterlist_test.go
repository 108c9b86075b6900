package clusterlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clusters.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "comments and blanks",
			content: "  # just a comment\n\nclusterA\nclusterB # trailing comment\n",
			want:    []string{"clusterA", "clusterB"},
		},
		{
			name:    "order preserved",
			content: "zeta\nalpha\nmid\n",
			want:    []string{"zeta", "alpha", "mid"},
		},
		{
			name:    "duplicates kept",
			content: "clusterA\nclusterA\n",
			want:    []string{"clusterA", "clusterA"},
		},
		{
			name:    "hash inside identifier truncates",
			content: "cluster#name\n",
			want:    []string{"cluster"},
		},
		{
			name:    "whitespace trimmed",
			content: "\t clusterA  \n",
			want:    []string{"clusterA"},
		},
		{
			name:    "only comments",
			content: "# a\n# b\n",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(writeList(t, tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Filter
	}{
		{name: "plain list", raw: "a,b,c", want: Filter{"a": {}, "b": {}, "c": {}}},
		{name: "brace list", raw: "{a,b,c}", want: Filter{"a": {}, "b": {}, "c": {}}},
		{name: "whitespace stripped", raw: " { a , b } ", want: Filter{"a": {}, "b": {}}},
		{name: "empty entries dropped", raw: ",,a,", want: Filter{"a": {}}},
		{name: "empty string", raw: "", want: Filter{}},
		{name: "braces only", raw: "{}", want: Filter{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFilter(tt.raw))
		})
	}
}

func TestFilterAllows(t *testing.T) {
	empty := Filter{}
	assert.True(t, empty.Allows("anything"))

	f := ParseFilter("a,c")
	assert.True(t, f.Allows("a"))
	assert.False(t, f.Allows("b"))
	assert.True(t, f.Allows("c"))
	// Case-sensitive exact match.
	assert.False(t, f.Allows("A"))
}
