package pathslice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(i int) *int { return &i }

func TestParse_Literals(t *testing.T) {
	p, err := Parse("foo/bar/baz")
	require.NoError(t, err)
	require.Len(t, p, 3)
	for i, name := range []string{"foo", "bar", "baz"} {
		assert.Equal(t, TokenLiteral, p[i].Kind)
		assert.Equal(t, name, p[i].Name)
	}
}

func TestParse_IgnoresEmptySegments(t *testing.T) {
	a, err := Parse("/foo//bar/")
	require.NoError(t, err)
	b, err := Parse("foo/bar")
	require.NoError(t, err)
	assert.Equal(t, b, a)
}

func TestParse_WildcardAndEllipsis(t *testing.T) {
	p, err := Parse("foo/*/.../baz")
	require.NoError(t, err)
	require.Len(t, p, 4)
	assert.Equal(t, TokenWildcard, p[1].Kind)
	assert.Equal(t, TokenEllipsis, p[2].Kind)
}

func TestParse_CollapsesAdjacentEllipsis(t *testing.T) {
	p, err := Parse(".../.../.../foo")
	require.NoError(t, err)
	require.Len(t, p, 2)
	assert.Equal(t, TokenEllipsis, p[0].Kind)
	assert.Equal(t, TokenLiteral, p[1].Kind)
}

func TestParse_Selectors(t *testing.T) {
	for _, tc := range []struct {
		pattern string
		name    string
		sel     Selector
	}{
		{"trial[82]", "trial", Index(82)},
		{"trial[-1]", "trial", Index(-1)},
		{"trial[:]", "trial", Slice{}},
		{"trial[1:3]", "trial", Slice{Start: intp(1), Stop: intp(3)}},
		{"trial[::2]", "trial", Slice{Step: intp(2)}},
		{"trial[80:90:2]", "trial", Slice{Start: intp(80), Stop: intp(90), Step: intp(2)}},
		{"trial[5:]", "trial", Slice{Start: intp(5)}},
		{"probe[[1,5]]", "probe", List{1, 5}},
		{"probe[[1, 5, -2]]", "probe", List{1, 5, -2}},
		{"trial[ 2 ]", "trial", Index(2)},
	} {
		p, err := Parse(tc.pattern)
		require.NoError(t, err, "pattern %q", tc.pattern)
		require.Len(t, p, 1, "pattern %q", tc.pattern)
		assert.Equal(t, TokenFamily, p[0].Kind, "pattern %q", tc.pattern)
		assert.Equal(t, tc.name, p[0].Name, "pattern %q", tc.pattern)
		assert.Equal(t, tc.sel, p[0].Sel, "pattern %q", tc.pattern)
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	for _, pattern := range []string{
		"",
		"/",
		"///",
		"trial[abc]",
		"trial[]",
		"trial[[]]",
		"trial[1:2:3:4]",
		"trial[1:2:0]",
		"trial[1",
		"trial]1[",
		"tri]al",
		"[0]",
		"*[0]",
		"...[2]",
		"probe[[1,x]]",
		"probe[[1,5]",
	} {
		_, err := Parse(pattern)
		require.Error(t, err, "pattern %q should not parse", pattern)
		var serr *SyntaxError
		require.ErrorAs(t, err, &serr, "pattern %q", pattern)
		assert.Equal(t, pattern, serr.Pattern)
	}
}

func TestParse_ErrorNamesOffendingSegment(t *testing.T) {
	_, err := Parse("foo/trial[abc]/bar")
	require.Error(t, err)
	serr := &SyntaxError{}
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "trial[abc]", serr.Segment)
	assert.Contains(t, err.Error(), "trial[abc]")
}

func TestParse_Pure(t *testing.T) {
	a, err := Parse("foo/.../trial[1:3]/probe[[1,5]]/*")
	require.NoError(t, err)
	b, err := Parse("foo/.../trial[1:3]/probe[[1,5]]/*")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPattern_String(t *testing.T) {
	for _, pattern := range []string{
		"foo/bar",
		"foo/*/.../baz",
		"trial[82]/probe[20:22]",
		"trial[80:90:2]",
		"probe[[1,5]]",
		"trial[-1]",
	} {
		p, err := Parse(pattern)
		require.NoError(t, err)
		assert.Equal(t, pattern, p.String())
	}
}
