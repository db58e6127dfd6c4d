// Package nfsmount exposes a hierarchy for browsing over NFS. It
// adapts hier.Node to billy.Filesystem for use with willscott/go-nfs:
// groups become directories, datasets become read-only JSON files
// describing their shape, dtype, and attributes.
package nfsmount

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/helper/chroot"

	"github.com/agentic-research/treeslice/internal/hier"
)

var errReadOnly = fmt.Errorf("read-only filesystem")

// documentFile is the virtual file at the mount root holding the full
// hierarchy document.
const documentFile = "_document.json"

// HierFS adapts a hierarchy to billy.Filesystem. All access is
// read-only; the engine never mutates hierarchies and neither does the
// mount.
type HierFS struct {
	root      hier.Node
	docJSON   []byte
	mountTime time.Time
}

// NewHierFS creates a billy.Filesystem serving the given hierarchy.
func NewHierFS(root hier.Node) *HierFS {
	doc, err := hier.MarshalDocument(hier.ToDocument(root))
	if err != nil {
		doc = []byte("{}\n")
	}
	return &HierFS{
		root:      root,
		docJSON:   doc,
		mountTime: time.Now(),
	}
}

// --- billy.Basic ---

func (fs *HierFS) Create(filename string) (billy.File, error) {
	return nil, errReadOnly
}

func (fs *HierFS) Open(filename string) (billy.File, error) {
	return fs.OpenFile(filename, os.O_RDONLY, 0)
}

func (fs *HierFS) OpenFile(filename string, flag int, perm os.FileMode) (billy.File, error) {
	filename = cleanPath(filename)

	if flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE|os.O_TRUNC) != 0 {
		return nil, errReadOnly
	}
	if filename == "/"+documentFile {
		return &bytesFile{name: documentFile, data: fs.docJSON}, nil
	}

	node, ok := hier.Lookup(fs.root, filename)
	if !ok {
		return nil, &os.PathError{Op: "open", Path: filename, Err: os.ErrNotExist}
	}
	if node.IsGroup() {
		return nil, &os.PathError{Op: "open", Path: filename, Err: fmt.Errorf("is a directory")}
	}
	return &bytesFile{name: filepath.Base(filename), data: renderDataset(node)}, nil
}

func (fs *HierFS) Stat(filename string) (os.FileInfo, error) {
	return fs.Lstat(filename)
}

func (fs *HierFS) Rename(oldpath, newpath string) error { return errReadOnly }
func (fs *HierFS) Remove(filename string) error         { return errReadOnly }

func (fs *HierFS) Join(elem ...string) string {
	return filepath.Join(elem...)
}

// --- billy.TempFile ---

func (fs *HierFS) TempFile(dir, prefix string) (billy.File, error) {
	return nil, billy.ErrNotSupported
}

// --- billy.Dir ---

func (fs *HierFS) ReadDir(path string) ([]os.FileInfo, error) {
	path = cleanPath(path)

	node, ok := hier.Lookup(fs.root, path)
	if !ok {
		return nil, &os.PathError{Op: "readdir", Path: path, Err: os.ErrNotExist}
	}
	if !node.IsGroup() {
		return nil, &os.PathError{Op: "readdir", Path: path, Err: fmt.Errorf("not a directory")}
	}

	children := node.Children()
	infos := make([]os.FileInfo, 0, len(children)+1)

	if path == "/" {
		infos = append(infos, &staticFileInfo{
			name:    documentFile,
			size:    int64(len(fs.docJSON)),
			mode:    0o444,
			modTime: fs.mountTime,
		})
	}

	for _, name := range hier.SortedChildNames(node) {
		infos = append(infos, fs.nodeFileInfo(children[name]))
	}
	return infos, nil
}

func (fs *HierFS) MkdirAll(filename string, perm os.FileMode) error {
	return errReadOnly
}

// --- billy.Symlink ---

func (fs *HierFS) Lstat(filename string) (os.FileInfo, error) {
	filename = cleanPath(filename)

	if filename == "/" {
		return &staticFileInfo{
			name:    "/",
			mode:    os.ModeDir | 0o555,
			modTime: fs.mountTime,
		}, nil
	}
	if filename == "/"+documentFile {
		return &staticFileInfo{
			name:    documentFile,
			size:    int64(len(fs.docJSON)),
			mode:    0o444,
			modTime: fs.mountTime,
		}, nil
	}

	node, ok := hier.Lookup(fs.root, filename)
	if !ok {
		return nil, &os.PathError{Op: "lstat", Path: filename, Err: os.ErrNotExist}
	}
	return fs.nodeFileInfo(node), nil
}

func (fs *HierFS) Symlink(target, link string) error {
	return billy.ErrNotSupported
}

func (fs *HierFS) Readlink(link string) (string, error) {
	return "", billy.ErrNotSupported
}

// --- billy.Chroot ---

func (fs *HierFS) Chroot(path string) (billy.Filesystem, error) {
	return chroot.New(fs, path), nil
}

func (fs *HierFS) Root() string {
	return "/"
}

// --- billy.Capable ---

func (fs *HierFS) Capabilities() billy.Capability {
	return billy.ReadCapability | billy.SeekCapability
}

// --- internals ---

// cleanPath normalizes a billy path to a clean absolute path.
func cleanPath(path string) string {
	path = filepath.Clean("/" + path)
	if path == "." {
		return "/"
	}
	return path
}

func (fs *HierFS) nodeFileInfo(n hier.Node) os.FileInfo {
	if n.IsGroup() {
		return &staticFileInfo{
			name:    n.Name(),
			mode:    os.ModeDir | 0o555,
			modTime: fs.mountTime,
		}
	}
	return &staticFileInfo{
		name:    n.Name(),
		size:    int64(len(renderDataset(n))),
		mode:    0o444,
		modTime: fs.mountTime,
	}
}

// staticFileInfo implements os.FileInfo with static values.
type staticFileInfo struct {
	name    string
	size    int64
	mode    os.FileMode
	modTime time.Time
}

func (fi *staticFileInfo) Name() string       { return fi.name }
func (fi *staticFileInfo) Size() int64        { return fi.size }
func (fi *staticFileInfo) Mode() os.FileMode  { return fi.mode }
func (fi *staticFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *staticFileInfo) IsDir() bool        { return fi.mode.IsDir() }
func (fi *staticFileInfo) Sys() interface{}   { return nil }

// Compile-time interface checks.
var (
	_ billy.Filesystem = (*HierFS)(nil)
	_ billy.Capable    = (*HierFS)(nil)
)
