package hier

import (
	"fmt"
	"os"

	"github.com/ohler55/ojg/oj"

	"github.com/agentic-research/treeslice/api"
)

// DatasetInfo is implemented by dataset nodes that can describe their
// payload.
type DatasetInfo interface {
	Shape() []int64
	Dtype() string
}

// FromDocument builds an in-memory hierarchy from a document. Sibling
// names must be unique; a collision is an error.
func FromDocument(doc *api.Document) (*Group, error) {
	root := NewGroup("")
	if err := fillGroup(root, &doc.Root, ""); err != nil {
		return nil, err
	}
	return root, nil
}

func fillGroup(g *Group, ag *api.Group, path string) error {
	if ag.Attrs != nil {
		g.SetAttrs(FromAny(anyMap(ag.Attrs)))
	}
	for i := range ag.Groups {
		cg := &ag.Groups[i]
		childPath := joinChild(path, cg.Name)
		if cg.Name == "" {
			return fmt.Errorf("group under %q has no name", path)
		}
		if _, dup := g.children[cg.Name]; dup {
			return fmt.Errorf("duplicate child name %q", childPath)
		}
		child := NewGroup(cg.Name)
		g.children[cg.Name] = child
		if err := fillGroup(child, cg, childPath); err != nil {
			return err
		}
	}
	for i := range ag.Datasets {
		ad := &ag.Datasets[i]
		childPath := joinChild(path, ad.Name)
		if ad.Name == "" {
			return fmt.Errorf("dataset under %q has no name", path)
		}
		if _, dup := g.children[ad.Name]; dup {
			return fmt.Errorf("duplicate child name %q", childPath)
		}
		ds := &Dataset{name: ad.Name, shape: ad.Shape, dtype: ad.Dtype}
		if ad.Attrs != nil {
			ds.SetAttrs(FromAny(anyMap(ad.Attrs)))
		}
		g.children[ad.Name] = ds
	}
	return nil
}

func joinChild(path, name string) string {
	if path == "" {
		return name
	}
	return path + Separator + name
}

// anyMap widens a map[string]any to any so FromAny picks the map case.
func anyMap(m map[string]any) any { return m }

// ToDocument captures any hierarchy (memory, SQLite, ...) as a
// document, children in lexicographic order.
func ToDocument(root Node) *api.Document {
	return &api.Document{
		Version: api.CurrentVersion,
		Root:    toAPIGroup(root),
	}
}

func toAPIGroup(n Node) api.Group {
	ag := api.Group{Name: n.Name()}
	if a, ok := n.(Attributed); ok && !a.Attrs().IsNull() {
		if m, ok := a.Attrs().ToAny().(map[string]any); ok {
			ag.Attrs = m
		}
	}
	children := n.Children()
	for _, name := range SortedChildNames(n) {
		child := children[name]
		if child.IsGroup() {
			ag.Groups = append(ag.Groups, toAPIGroup(child))
			continue
		}
		ad := api.Dataset{Name: child.Name()}
		if a, ok := child.(Attributed); ok && !a.Attrs().IsNull() {
			if m, ok := a.Attrs().ToAny().(map[string]any); ok {
				ad.Attrs = m
			}
		}
		if info, ok := child.(DatasetInfo); ok {
			ad.Shape = info.Shape()
			ad.Dtype = info.Dtype()
		}
		ag.Datasets = append(ag.Datasets, ad)
	}
	return ag
}

// UnmarshalDocument decodes a JSON hierarchy document.
func UnmarshalDocument(data []byte) (*api.Document, error) {
	doc := &api.Document{}
	if err := oj.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

// MarshalDocument encodes a document as indented JSON.
func MarshalDocument(doc *api.Document) ([]byte, error) {
	data, err := oj.Marshal(doc, 2)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return append(data, '\n'), nil
}

// LoadDocumentFile reads a JSON document from disk and builds the
// hierarchy.
func LoadDocumentFile(path string) (*Group, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	doc, err := UnmarshalDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return FromDocument(doc)
}
