package pathslice

import (
	"errors"
	"sort"
	"strings"

	"github.com/agentic-research/treeslice/internal/hier"
)

// ErrVisitBudget is returned by Match when the configured node-visit
// budget runs out before the search completes.
var ErrVisitBudget = errors.New("node visit budget exceeded")

// ErrEmptyPattern is returned by Match for a nil or empty Pattern.
// Parse never produces one; this only guards hand-built patterns.
var ErrEmptyPattern = errors.New("empty pattern")

// MatchOption configures a single Match call.
type MatchOption func(*matcher)

// WithVisitBudget bounds the number of (node, token-position) states
// the search may visit. Zero or negative means unlimited. Deep trees
// combined with several "..." tokens can make the search expensive;
// callers that accept user-supplied patterns should set a budget.
func WithVisitBudget(n int) MatchOption {
	return func(m *matcher) { m.budget = n }
}

// Match walks the hierarchy depth-first against the pattern and
// returns the matching paths in canonical order: depth-first with
// siblings in lexicographic name order, compared per path segment.
//
// Structural non-matches (missing literal child, empty ordered family,
// out-of-range selection) silently contribute nothing. Matching never
// mutates the hierarchy and holds no state between calls, so repeated
// calls over an unchanged hierarchy return identical results.
//
// When the pattern's final token is "...", only leaf nodes (datasets,
// or groups without children) are reported; everything below the
// matched prefix is otherwise reachable at zero or more levels and the
// interior groups would drown out the data.
func Match(p Pattern, root hier.Node, opts ...MatchOption) ([]string, error) {
	if len(p) == 0 {
		return nil, ErrEmptyPattern
	}
	m := &matcher{
		seen:       make(map[string]struct{}),
		leavesOnly: p[len(p)-1].Kind == TokenEllipsis,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.limited = m.budget > 0
	if err := m.walk(root, nil, p); err != nil {
		return nil, err
	}
	sort.Slice(m.out, func(i, j int) bool {
		return pathLess(m.out[i], m.out[j])
	})
	return m.out, nil
}

type matcher struct {
	budget     int
	limited    bool
	leavesOnly bool
	seen       map[string]struct{}
	out        []string
}

func (m *matcher) walk(n hier.Node, path []string, toks Pattern) error {
	if m.limited {
		if m.budget == 0 {
			return ErrVisitBudget
		}
		m.budget--
	}

	if len(toks) == 0 {
		// The root itself (empty path) is never a match.
		if len(path) > 0 && (!m.leavesOnly || hier.IsLeaf(n)) {
			m.record(path)
		}
		return nil
	}

	tok, rest := toks[0], toks[1:]
	children := n.Children()

	switch tok.Kind {
	case TokenLiteral:
		child, ok := children[tok.Name]
		if !ok {
			return nil
		}
		return m.walk(child, append(path, tok.Name), rest)

	case TokenWildcard:
		for _, name := range hier.SortedChildNames(n) {
			if err := m.walk(children[name], append(path, name), rest); err != nil {
				return err
			}
		}
		return nil

	case TokenEllipsis:
		// Zero levels consumed: the remaining tokens match here.
		if err := m.walk(n, path, rest); err != nil {
			return err
		}
		// One more level: descend with the same token still active.
		// The hierarchy is a tree, so this terminates without any
		// cycle detection.
		for _, name := range hier.SortedChildNames(n) {
			if err := m.walk(children[name], append(path, name), toks); err != nil {
				return err
			}
		}
		return nil

	case TokenFamily:
		// An absent family behaves like a missing literal child:
		// zero matches on this branch, not a failure.
		selected := ResolveFamily(hier.SortedChildNames(n), tok.Name, tok.Sel)
		for _, name := range selected {
			if err := m.walk(children[name], append(path, name), rest); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

// record deduplicates by serialized path. Overlapping selectors and
// reconverging ellipsis branches can reach the same node more than
// once; two matches are distinct iff their paths differ.
func (m *matcher) record(path []string) {
	p := strings.Join(path, hier.Separator)
	if _, dup := m.seen[p]; dup {
		return
	}
	m.seen[p] = struct{}{}
	m.out = append(m.out, p)
}

// pathLess compares paths segment-wise. Plain string comparison is
// wrong here: '.' sorts before '/', so "trial.9" would order after
// the subtree of a sibling named "trial".
func pathLess(a, b string) bool {
	as, bs := strings.Split(a, hier.Separator), strings.Split(b, hier.Separator)
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] != bs[i] {
			return as[i] < bs[i]
		}
	}
	return len(as) < len(bs)
}
