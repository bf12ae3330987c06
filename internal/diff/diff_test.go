package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name    string
		old     []string
		new     []string
		added   []string
		removed []string
	}{
		{
			name: "identical",
			old:  []string{"/a", "/b"},
			new:  []string{"/b", "/a"},
		},
		{
			name:  "added",
			old:   []string{"/src/a.go"},
			new:   []string{"/src/a.go", "/src/b.go"},
			added: []string{"/src/b.go"},
		},
		{
			name:    "removed",
			old:     []string{"/src/a.go", "/src/b.go"},
			new:     []string{"/src/b.go"},
			removed: []string{"/src/a.go"},
		},
		{
			name:    "prefix is not a partial match",
			old:     []string{"/src/a"},
			new:     []string{"/src/ab"},
			added:   []string{"/src/ab"},
			removed: []string{"/src/a"},
		},
		{
			name:  "from empty",
			new:   []string{"/x", "/y", "/x"},
			added: []string{"/x", "/y"},
		},
		{
			name:    "to empty",
			old:     []string{"/x"},
			removed: []string{"/x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compute(tt.old, tt.new, "old", "new")
			assert.Equal(t, tt.added, r.Added)
			assert.Equal(t, tt.removed, r.Removed)
			assert.Equal(t, len(tt.added)+len(tt.removed) > 0, r.Changed())
		})
	}
}

func TestFormat(t *testing.T) {
	r := Compute([]string{"/a", "/b"}, []string{"/b", "/c"}, "snap1", "live")

	plain := r.Format(false)
	assert.True(t, strings.HasPrefix(plain, "--- snap1\n+++ live\n"))
	assert.Contains(t, plain, "- /a\n")
	assert.Contains(t, plain, "  /b\n")
	assert.Contains(t, plain, "+ /c\n")

	coloured := r.Format(true)
	assert.Contains(t, coloured, "\033[31m- /a\033[0m")
	assert.Contains(t, coloured, "\033[32m+ /c\033[0m")
}

func TestFormat_CollapsesLongEqualRuns(t *testing.T) {
	var same []string
	for _, c := range "abcdefghij" {
		same = append(same, "/"+string(c))
	}
	r := Compute(same, append(same, "/z"), "old", "new")

	assert.Contains(t, r.Diff, "  ...\n")
	assert.NotContains(t, r.Diff, "  /e\n")
	assert.Contains(t, r.Diff, "+ /z\n")
}
