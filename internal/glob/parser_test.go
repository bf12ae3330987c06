package glob

import (
	"testing"

	"github.com/jpl-au/globfs/internal/fsys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nodeKinds(head *Node) []NodeKind {
	var out []NodeKind
	for _, n := range head.Segments() {
		out = append(out, n.Kind)
	}
	return out
}

func TestParse(t *testing.T) {
	tests := []struct {
		pattern string
		unix    bool
		want    []NodeKind
		str     string
	}{
		{"src", true, []NodeKind{RelativeRoot, IdentifierSegment}, "./src"},
		{"./src", true, []NodeKind{RelativeRoot, IdentifierSegment}, "./src"},
		{".", true, []NodeKind{RelativeRoot}, "."},
		{"/", true, []NodeKind{UnixRoot}, "/"},
		{"/usr/*", true, []NodeKind{UnixRoot, IdentifierSegment, WildcardSegment}, "/usr/*"},
		{"src/**/*.go", true, []NodeKind{RelativeRoot, IdentifierSegment, RecursiveWildcardSegment, PatternSegment}, "./src/**/*.go"},
		{"a/./b", true, []NodeKind{RelativeRoot, IdentifierSegment, IdentifierSegment}, "./a/b"},
		{"a//b/", true, []NodeKind{RelativeRoot, IdentifierSegment, IdentifierSegment}, "./a/b"},
		{"../x", true, []NodeKind{RelativeRoot, ParentSegment, IdentifierSegment}, "./../x"},
		{"*/..", true, []NodeKind{RelativeRoot, WildcardSegment, ParentSegment}, "./*/.."},
		{`C:\src\*`, false, []NodeKind{WindowsRoot, IdentifierSegment, WildcardSegment}, "C:/src/*"},
		{"c:", false, []NodeKind{WindowsRoot}, "C:/"},
		{"doc?", true, []NodeKind{RelativeRoot, PatternSegment}, "./doc?"},
		{"a**b", true, []NodeKind{RelativeRoot, PatternSegment}, "./a**b"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			head, err := Parse(tt.pattern, tt.unix)
			require.NoError(t, err)
			assert.Equal(t, tt.want, nodeKinds(head))
			assert.Equal(t, tt.str, head.String())
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	names := []string{"readme.md", "a[1]", "[x", "{a,b}", "a..b", "..hidden", "with space", "ünïcode"}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			head, err := Parse(name, true)
			require.NoError(t, err)
			assert.Equal(t, []NodeKind{RelativeRoot, IdentifierSegment}, nodeKinds(head))

			again, err := Parse(head.String(), true)
			require.NoError(t, err)
			assert.Equal(t, head.String(), again.String())

			for _, dir := range []bool{false, true} {
				m := fsys.NewMemory(true)
				if dir {
					require.NoError(t, m.AddDirectory("/work/"+name))
				} else {
					require.NoError(t, m.AddFile("/work/"+name, 1))
				}
				g, err := New(m, fsys.NewEnvironment("/work", true))
				require.NoError(t, err)

				got, err := g.Match(again.String(), nil)
				require.NoError(t, err)
				require.Len(t, got, 1)
				assert.Equal(t, "/work/"+name, got[0].String())
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		unix    bool
		err     error
	}{
		{"parent after recursive", "**/..", true, ErrUnsupported},
		{"parent after nested recursive", "src/**/../x", true, ErrUnsupported},
		{"rooted without drive on windows", `\work`, false, ErrUnsupported},
		{"illegal character", "a|b", false, ErrIllegalCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.pattern, tt.unix)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestNode_IsMatch(t *testing.T) {
	tests := []struct {
		pattern    string
		name       string
		ignoreCase bool
		want       bool
	}{
		{"*", "anything", false, true},
		{"src", "src", false, true},
		{"src", "SRC", false, false},
		{"src", "SRC", true, true},
		{"*.go", "main.go", false, true},
		{"*.go", "main.GO", false, false},
		{"*.go", "main.GO", true, true},
		{"*.go", "main.goo", false, false},
		{"doc?", "docs", false, true},
		{"doc?", "doc", false, false},
		{"[a]*", "[a]bc", false, true},
		{"[a]*", "abc", false, false},
		{"{x}?", "{x}1", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"~"+tt.name, func(t *testing.T) {
			head, err := Parse(tt.pattern, true)
			require.NoError(t, err)
			require.NotNil(t, head.Next)
			assert.Equal(t, tt.want, head.Next.IsMatch(tt.name, tt.ignoreCase))
		})
	}
}

func TestNode_RootsMatchNothing(t *testing.T) {
	head, err := Parse("/..", true)
	require.NoError(t, err)
	assert.False(t, head.IsMatch("/", false))
	assert.False(t, head.Next.IsMatch("..", false))
}
