package hier

import (
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring"
)

// NameIndex is an inverted index over a hierarchy: search token → set
// of node ordinals, with the ordinal order matching the canonical
// depth-first traversal. A node is findable under its exact name and,
// for ordered-family members like "trial.7", under the bare family
// prefix "trial".
//
// The index is a snapshot: it reflects the hierarchy as it was when
// built and is not updated when the hierarchy changes.
type NameIndex struct {
	paths   []string
	isGroup []bool
	byToken map[string]*roaring.Bitmap
}

// FindFilter restricts search results by node kind. The zero value
// matches nothing useful; use EverythingFilter for no restriction.
type FindFilter struct {
	IncludeGroups   bool
	IncludeDatasets bool
}

// EverythingFilter matches groups and datasets alike.
var EverythingFilter = FindFilter{IncludeGroups: true, IncludeDatasets: true}

// BuildNameIndex walks the hierarchy once and indexes every node.
func BuildNameIndex(root Node) *NameIndex {
	ix := &NameIndex{byToken: make(map[string]*roaring.Bitmap)}
	Walk(root, func(path string, n Node) bool {
		ord := uint32(len(ix.paths))
		ix.paths = append(ix.paths, path)
		ix.isGroup = append(ix.isGroup, n.IsGroup())

		name := n.Name()
		ix.add(name, ord)
		if prefix, ok := familyPrefix(name); ok {
			ix.add(prefix, ord)
		}
		return true
	})
	return ix
}

func (ix *NameIndex) add(token string, ord uint32) {
	bm, ok := ix.byToken[token]
	if !ok {
		bm = roaring.New()
		ix.byToken[token] = bm
	}
	bm.Add(ord)
}

// familyPrefix splits "trial.7" into ("trial", true). Names without an
// integer suffix are not family members.
func familyPrefix(name string) (string, bool) {
	dot := strings.LastIndexByte(name, '.')
	if dot <= 0 || dot == len(name)-1 {
		return "", false
	}
	if idx, err := strconv.Atoi(name[dot+1:]); err != nil || idx < 0 {
		return "", false
	}
	return name[:dot], true
}

// FindAll returns the paths of all nodes matching token, in canonical
// depth-first order.
func (ix *NameIndex) FindAll(token string, filter FindFilter) []string {
	bm, ok := ix.byToken[token]
	if !ok {
		return nil
	}
	var out []string
	it := bm.Iterator()
	for it.HasNext() {
		ord := it.Next()
		if ix.isGroup[ord] && !filter.IncludeGroups {
			continue
		}
		if !ix.isGroup[ord] && !filter.IncludeDatasets {
			continue
		}
		out = append(out, ix.paths[ord])
	}
	return out
}

// FindFirst returns the first match in canonical order.
func (ix *NameIndex) FindFirst(token string, filter FindFilter) (string, bool) {
	bm, ok := ix.byToken[token]
	if !ok {
		return "", false
	}
	it := bm.Iterator()
	for it.HasNext() {
		ord := it.Next()
		if ix.isGroup[ord] && !filter.IncludeGroups {
			continue
		}
		if !ix.isGroup[ord] && !filter.IncludeDatasets {
			continue
		}
		return ix.paths[ord], true
	}
	return "", false
}

// Len returns the number of indexed nodes.
func (ix *NameIndex) Len() int { return len(ix.paths) }
