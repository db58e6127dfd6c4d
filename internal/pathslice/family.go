package pathslice

import (
	"sort"
	"strconv"
	"strings"
)

// familyMember pairs a sibling name with its parsed integer suffix.
type familyMember struct {
	name  string
	index int
}

// orderedFamily filters names of the form prefix.<int> and sorts them
// ascending by the integer suffix. Names are unique among siblings, so
// ties cannot occur. Non-conforming siblings are simply not part of
// the family — never an error, so mixed hierarchies keep working.
func orderedFamily(names []string, prefix string) []familyMember {
	dot := prefix + "."
	var members []familyMember
	for _, name := range names {
		suffix, ok := strings.CutPrefix(name, dot)
		if !ok {
			continue
		}
		idx, err := strconv.Atoi(suffix)
		if err != nil || idx < 0 {
			continue
		}
		members = append(members, familyMember{name: name, index: idx})
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].index < members[j].index
	})
	return members
}

// ResolveFamily interprets the given sibling names as the ordered
// family prefix.0, prefix.1, ... and applies the selector to it by
// position. The family is rebuilt from the names on every call; it is
// never cached, since the hierarchy may change between queries.
//
// An empty family or an out-of-range selection yields an empty result,
// not an error: trial[200] against a 100-trial hierarchy is a normal
// zero-match outcome. Duplicate entries in a List selector produce
// duplicate selections.
func ResolveFamily(names []string, prefix string, sel Selector) []string {
	members := orderedFamily(names, prefix)
	if len(members) == 0 {
		return nil
	}
	positions := sel.apply(len(members))
	if len(positions) == 0 {
		return nil
	}
	out := make([]string, 0, len(positions))
	for _, pos := range positions {
		out = append(out, members[pos].name)
	}
	return out
}
