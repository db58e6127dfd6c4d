// Package api defines the JSON document format for hierarchies: the
// interchange representation used by the build command, the JSON
// loader, and the virtual _document.json file exposed by the mount
// layers.
package api

// Document is the root of a hierarchy document.
type Document struct {
	// Version of the document format.
	Version string `json:"version"`
	// Root group. Its name is ignored; the root is anonymous.
	Root Group `json:"root"`
}

// Group is a named container of sub-groups and datasets. Sibling
// names must be unique across both lists.
type Group struct {
	Name string `json:"name"`
	// Attrs holds arbitrary attribute values (scalars, lists, maps).
	Attrs map[string]any `json:"attrs,omitempty"`
	// Groups are the child groups.
	Groups []Group `json:"groups,omitempty"`
	// Datasets are the leaf children.
	Datasets []Dataset `json:"datasets,omitempty"`
}

// Dataset is a leaf node. The engine only reasons about names and
// structure; Shape and Dtype are carried for display and mounting.
type Dataset struct {
	Name  string         `json:"name"`
	Attrs map[string]any `json:"attrs,omitempty"`
	Shape []int64        `json:"shape,omitempty"`
	Dtype string         `json:"dtype,omitempty"`
}

// CurrentVersion is written into documents produced by this tree.
const CurrentVersion = "v1"
