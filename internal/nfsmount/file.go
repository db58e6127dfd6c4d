package nfsmount

import (
	"io"

	billy "github.com/go-git/go-billy/v5"
	"github.com/ohler55/ojg/oj"

	"github.com/agentic-research/treeslice/internal/hier"
)

// renderDataset produces the JSON content shown for a dataset node:
// name, shape, dtype, and attributes. The actual array payload lives
// in the backing store and is out of scope here.
func renderDataset(n hier.Node) []byte {
	body := map[string]any{"name": n.Name()}
	if info, ok := n.(hier.DatasetInfo); ok {
		if len(info.Shape()) > 0 {
			body["shape"] = info.Shape()
		}
		if info.Dtype() != "" {
			body["dtype"] = info.Dtype()
		}
	}
	if a, ok := n.(hier.Attributed); ok && !a.Attrs().IsNull() {
		body["attrs"] = a.Attrs().ToAny()
	}
	data, err := oj.Marshal(body, 2)
	if err != nil {
		return []byte("{}\n")
	}
	return append(data, '\n')
}

// bytesFile implements billy.File backed by a static byte slice.
// Every file this mount serves is rendered up front, so one file type
// covers datasets and virtual files alike.
type bytesFile struct {
	name string
	data []byte
	pos  int64
}

func (f *bytesFile) Name() string { return f.name }

func (f *bytesFile) Read(p []byte) (int, error) {
	if f.pos >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.data[f.pos:])
	f.pos += int64(n)
	if f.pos >= int64(len(f.data)) {
		return n, io.EOF
	}
	return n, nil
}

func (f *bytesFile) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (f *bytesFile) Seek(offset int64, whence int) (int64, error) {
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = f.pos + offset
	case io.SeekEnd:
		newPos = int64(len(f.data)) + offset
	}
	if newPos < 0 {
		newPos = 0
	}
	f.pos = newPos
	return f.pos, nil
}

func (f *bytesFile) Write([]byte) (int, error) { return 0, errReadOnly }
func (f *bytesFile) Truncate(int64) error      { return errReadOnly }
func (f *bytesFile) Lock() error               { return nil }
func (f *bytesFile) Unlock() error             { return nil }
func (f *bytesFile) Close() error              { return nil }

var _ billy.File = (*bytesFile)(nil)
