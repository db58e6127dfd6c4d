// Package pathslice implements the path-slice pattern language: parsing
// a pattern string into tokens, resolving index/slice selectors against
// ordered sibling families (name.<int> naming), and matching patterns
// against a hierarchy to produce the set of matching paths.
//
// Pattern syntax:
//
//	segment  := literal | "*" | "..." | literal "[" selector "]"
//	selector := integer | slice | "[" integer ("," integer)* "]"
//	slice    := [integer] ":" [integer] [":" [integer]]
//
// "*" matches exactly one level of any name, "..." matches zero or more
// levels, and literal[selector] selects members of the ordered family
// of siblings named literal.0, literal.1, ... by position.
package pathslice

import (
	"strconv"
	"strings"
)

// TokenKind discriminates pattern tokens.
type TokenKind int

const (
	// TokenLiteral matches a child by exact name.
	TokenLiteral TokenKind = iota
	// TokenWildcard matches exactly one level, any name.
	TokenWildcard
	// TokenEllipsis matches zero or more levels.
	TokenEllipsis
	// TokenFamily matches members of an ordered name.<int> family.
	TokenFamily
)

// Token is one parsed pattern segment. Name is set for TokenLiteral
// (the exact name) and TokenFamily (the family prefix); Sel is set for
// TokenFamily only.
type Token struct {
	Kind TokenKind
	Name string
	Sel  Selector
}

// Pattern is an immutable sequence of tokens. Parsing is a pure
// function: the same pattern string always yields the same tokens.
type Pattern []Token

// String reconstructs the pattern in canonical form.
func (p Pattern) String() string {
	segs := make([]string, len(p))
	for i, t := range p {
		segs[i] = t.String()
	}
	return strings.Join(segs, "/")
}

func (t Token) String() string {
	switch t.Kind {
	case TokenWildcard:
		return "*"
	case TokenEllipsis:
		return "..."
	case TokenFamily:
		return t.Name + "[" + t.Sel.String() + "]"
	default:
		return t.Name
	}
}

// Selector picks members of an ordered family: a single position, a
// slice, or an explicit list of positions.
type Selector interface {
	String() string
	// apply returns the selected positions for a family of length n.
	// Out-of-range positions are dropped, never an error.
	apply(n int) []int
}

// Index selects a single position. Negative values count from the end.
type Index int

func (i Index) String() string { return strconv.Itoa(int(i)) }

func (i Index) apply(n int) []int {
	pos := int(i)
	if pos < 0 {
		pos += n
	}
	if pos < 0 || pos >= n {
		return nil
	}
	return []int{pos}
}

// Slice selects a half-open start:stop:step range. Nil fields were
// omitted in the pattern and take their defaults at resolution time,
// exactly like array slicing: negative bounds count from the end, and
// out-of-range bounds clamp instead of failing.
type Slice struct {
	Start *int
	Stop  *int
	Step  *int
}

func (s Slice) String() string {
	var b strings.Builder
	if s.Start != nil {
		b.WriteString(strconv.Itoa(*s.Start))
	}
	b.WriteByte(':')
	if s.Stop != nil {
		b.WriteString(strconv.Itoa(*s.Stop))
	}
	if s.Step != nil {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(*s.Step))
	}
	return b.String()
}

func (s Slice) apply(n int) []int {
	start, stop, step := s.bounds(n)
	var out []int
	if step > 0 {
		for i := start; i < stop; i += step {
			out = append(out, i)
		}
	} else {
		for i := start; i > stop; i += step {
			out = append(out, i)
		}
	}
	return out
}

// bounds resolves the slice against a family of length n, clamping the
// way language-level slicing does. The parser rejects step == 0.
func (s Slice) bounds(n int) (start, stop, step int) {
	step = 1
	if s.Step != nil {
		step = *s.Step
	}
	clampLow, clampHigh := 0, n
	if step < 0 {
		clampLow, clampHigh = -1, n-1
	}
	adjust := func(v int) int {
		if v < 0 {
			v += n
			if v < clampLow {
				v = clampLow
			}
			return v
		}
		if v > clampHigh {
			v = clampHigh
		}
		return v
	}
	if step > 0 {
		start, stop = 0, n
	} else {
		start, stop = n-1, -1
	}
	if s.Start != nil {
		start = adjust(*s.Start)
	}
	if s.Stop != nil {
		stop = adjust(*s.Stop)
	}
	return start, stop, step
}

// List selects explicit positions. Duplicates are preserved and
// out-of-range entries are dropped, mirroring the single-index policy.
type List []int

func (l List) String() string {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func (l List) apply(n int) []int {
	var out []int
	for _, v := range l {
		pos := v
		if pos < 0 {
			pos += n
		}
		if pos < 0 || pos >= n {
			continue
		}
		out = append(out, pos)
	}
	return out
}
