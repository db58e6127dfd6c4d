// Package fs presents a hierarchy as a FUSE filesystem via cgofuse.
// Groups are directories; datasets and group attributes appear as
// read-only JSON files.
package fs

import (
	"path/filepath"
	"time"

	"github.com/ohler55/ojg/oj"
	"github.com/winfsp/cgofuse/fuse"

	"github.com/agentic-research/treeslice/internal/hier"
)

// attrsFile is the virtual file exposing a group's attributes.
const attrsFile = ".attrs.json"

// TreeFS implements the FUSE interface from cgofuse over a hierarchy.
type TreeFS struct {
	fuse.FileSystemBase
	Root      hier.Node
	mountTime fuse.Timespec
}

func NewTreeFS(root hier.Node) *TreeFS {
	return &TreeFS{
		Root:      root,
		mountTime: fuse.NewTimespec(time.Now()),
	}
}

// content returns the rendered bytes for a file path, or nil if the
// path does not name a file.
func (fs *TreeFS) content(path string) []byte {
	if filepath.Base(path) == attrsFile {
		group, ok := hier.Lookup(fs.Root, filepath.Dir(path))
		if !ok || !group.IsGroup() {
			return nil
		}
		a, ok := group.(hier.Attributed)
		if !ok || a.Attrs().IsNull() {
			return nil
		}
		return renderJSON(a.Attrs().ToAny())
	}

	node, ok := hier.Lookup(fs.Root, path)
	if !ok || node.IsGroup() {
		return nil
	}
	body := map[string]any{"name": node.Name()}
	if info, ok := node.(hier.DatasetInfo); ok {
		if len(info.Shape()) > 0 {
			body["shape"] = info.Shape()
		}
		if info.Dtype() != "" {
			body["dtype"] = info.Dtype()
		}
	}
	if a, ok := node.(hier.Attributed); ok && !a.Attrs().IsNull() {
		body["attrs"] = a.Attrs().ToAny()
	}
	return renderJSON(body)
}

func renderJSON(v any) []byte {
	data, err := oj.Marshal(v, 2)
	if err != nil {
		return []byte("{}\n")
	}
	return append(data, '\n')
}

// entries returns the directory listing for a group path, including
// the "." and ".." entries, or nil if the path is not a directory.
func (fs *TreeFS) entries(path string) []string {
	node, ok := hier.Lookup(fs.Root, path)
	if !ok || !node.IsGroup() {
		return nil
	}
	names := []string{".", ".."}
	names = append(names, hier.SortedChildNames(node)...)
	if a, ok := node.(hier.Attributed); ok && !a.Attrs().IsNull() {
		names = append(names, attrsFile)
	}
	return names
}

// Open checks that the path names a readable file.
func (fs *TreeFS) Open(path string, flags int) (int, uint64) {
	if node, ok := hier.Lookup(fs.Root, path); ok && node.IsGroup() {
		return -fuse.EISDIR, 0
	}
	if fs.content(path) == nil {
		return -fuse.ENOENT, 0
	}
	return 0, 0
}

// Getattr (Stat)
func (fs *TreeFS) Getattr(path string, stat *fuse.Stat_t, fh uint64) int {
	stat.Atim = fs.mountTime
	stat.Mtim = fs.mountTime
	stat.Ctim = fs.mountTime
	stat.Birthtim = fs.mountTime

	// Root is always there
	if path == "/" {
		stat.Mode = fuse.S_IFDIR | 0o555
		stat.Nlink = 2
		return 0
	}

	// 1. Is this a group? (Directory)
	if node, ok := hier.Lookup(fs.Root, path); ok && node.IsGroup() {
		stat.Mode = fuse.S_IFDIR | 0o555
		stat.Nlink = 2
		return 0
	}

	// 2. Is it a dataset or attrs view? (File)
	if content := fs.content(path); content != nil {
		stat.Mode = fuse.S_IFREG | 0o444
		stat.Nlink = 1
		stat.Size = int64(len(content))
		return 0
	}

	return -fuse.ENOENT
}

// Opendir validates the path before Readdir gets called with it.
func (fs *TreeFS) Opendir(path string) (int, uint64) {
	node, ok := hier.Lookup(fs.Root, path)
	if !ok {
		return -fuse.ENOENT, 0
	}
	if !node.IsGroup() {
		return -fuse.ENOTDIR, 0
	}
	return 0, 0
}

func (fs *TreeFS) Releasedir(path string, fh uint64) int {
	return 0
}

// Readdir (List directory). Entries carry 1-based offsets so the
// kernel can resume a paged listing where the previous fill stopped.
func (fs *TreeFS) Readdir(path string, fill func(name string, stat *fuse.Stat_t, ofst int64) bool, ofst int64, fh uint64) int {
	names := fs.entries(path)
	if names == nil {
		return -fuse.ENOENT
	}
	for i := int(ofst); i < len(names); i++ {
		if !fill(names[i], nil, int64(i+1)) {
			break
		}
	}
	return 0
}

// Read (Cat file)
func (fs *TreeFS) Read(path string, buff []byte, ofst int64, fh uint64) int {
	if node, ok := hier.Lookup(fs.Root, path); ok && node.IsGroup() {
		return -fuse.EISDIR
	}
	content := fs.content(path)
	if content == nil {
		return -fuse.ENOENT
	}

	if ofst >= int64(len(content)) {
		return 0
	}
	end := ofst + int64(len(buff))
	if end > int64(len(content)) {
		end = int64(len(content))
	}
	n := copy(buff, content[ofst:end])
	return n
}
