package hier

import (
	"errors"
	"fmt"
)

// ErrNotAGroup is returned when a path step lands on a dataset.
var ErrNotAGroup = errors.New("not a group")

// Group is the in-memory group node. It owns its children map; the
// engine only ever reads it.
type Group struct {
	name     string
	children map[string]Node
	attrs    Value
}

// NewGroup creates an empty group. Pass "" for an anonymous root.
func NewGroup(name string) *Group {
	return &Group{name: name, children: make(map[string]Node)}
}

func (g *Group) Name() string              { return g.name }
func (g *Group) IsGroup() bool             { return true }
func (g *Group) Children() map[string]Node { return g.children }
func (g *Group) Attrs() Value              { return g.attrs }

// SetAttrs replaces the group's attribute value.
func (g *Group) SetAttrs(v Value) { g.attrs = v }

// CreateGroup creates a group at path below g, creating intermediate
// groups as needed. Existing groups along the way are reused; hitting
// a dataset is an error.
func (g *Group) CreateGroup(path string) (*Group, error) {
	cur := g
	for _, seg := range SplitPath(path) {
		next, ok := cur.children[seg]
		if !ok {
			child := NewGroup(seg)
			cur.children[seg] = child
			cur = child
			continue
		}
		childGroup, ok := next.(*Group)
		if !ok {
			return nil, fmt.Errorf("create group %q: %q: %w", path, seg, ErrNotAGroup)
		}
		cur = childGroup
	}
	return cur, nil
}

// CreateDataset creates a dataset at path below g, creating
// intermediate groups as needed. The final segment must not already
// exist.
func (g *Group) CreateDataset(path string) (*Dataset, error) {
	segs := SplitPath(path)
	if len(segs) == 0 {
		return nil, fmt.Errorf("create dataset: empty path")
	}
	parent := g
	if len(segs) > 1 {
		var err error
		parent, err = g.CreateGroup(JoinPath(segs[:len(segs)-1]))
		if err != nil {
			return nil, err
		}
	}
	name := segs[len(segs)-1]
	if _, exists := parent.children[name]; exists {
		return nil, fmt.Errorf("create dataset %q: %q already exists", path, name)
	}
	ds := &Dataset{name: name}
	parent.children[name] = ds
	return ds, nil
}

// Dataset is the in-memory leaf node. Shape and Dtype describe the
// payload the backing store would hold; the engine itself never
// inspects them.
type Dataset struct {
	name  string
	shape []int64
	dtype string
	attrs Value
}

func (d *Dataset) Name() string              { return d.name }
func (d *Dataset) IsGroup() bool             { return false }
func (d *Dataset) Children() map[string]Node { return nil }
func (d *Dataset) Attrs() Value              { return d.attrs }
func (d *Dataset) Shape() []int64            { return d.shape }
func (d *Dataset) Dtype() string             { return d.dtype }

func (d *Dataset) SetAttrs(v Value)       { d.attrs = v }
func (d *Dataset) SetShape(shape []int64) { d.shape = shape }
func (d *Dataset) SetDtype(dtype string)  { d.dtype = dtype }

var (
	_ Node       = (*Group)(nil)
	_ Node       = (*Dataset)(nil)
	_ Attributed = (*Group)(nil)
	_ Attributed = (*Dataset)(nil)
)
