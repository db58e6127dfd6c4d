package hier

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/ohler55/ojg/oj"
	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed hierarchy. One row per node, keyed by path,
// with a parent index so child listings are a single indexed query.
// The source database is treated as read-only by everything except
// Import; the matcher sees it through the same Node interface as the
// in-memory tree.
type Store struct {
	db   *sql.DB
	path string
}

const storeSchema = `
CREATE TABLE IF NOT EXISTS nodes (
	path   TEXT PRIMARY KEY,
	parent TEXT NOT NULL,
	name   TEXT NOT NULL,
	kind   INTEGER NOT NULL,
	attrs  TEXT,
	shape  TEXT,
	dtype  TEXT
);
CREATE INDEX IF NOT EXISTS idx_nodes_parent ON nodes(parent);
`

const (
	kindGroup   = 0
	kindDataset = 1
)

// OpenStore opens (creating if necessary) a hierarchy database.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	if _, err := db.Exec(storeSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init store schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Import replaces the store contents with the given hierarchy in a
// single transaction.
func (s *Store) Import(root Node) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM nodes"); err != nil {
		return fmt.Errorf("clear nodes: %w", err)
	}
	stmt, err := tx.Prepare(
		"INSERT INTO nodes (path, parent, name, kind, attrs, shape, dtype) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	insert := func(path string, n Node) error {
		kind := kindGroup
		var shape, dtype any
		if !n.IsGroup() {
			kind = kindDataset
			if info, ok := n.(DatasetInfo); ok {
				if len(info.Shape()) > 0 {
					sj, err := oj.Marshal(info.Shape())
					if err != nil {
						return fmt.Errorf("encode shape for %q: %w", path, err)
					}
					shape = string(sj)
				}
				if info.Dtype() != "" {
					dtype = info.Dtype()
				}
			}
		}
		var attrs any
		if a, ok := n.(Attributed); ok && !a.Attrs().IsNull() {
			aj, err := oj.Marshal(a.Attrs().ToAny())
			if err != nil {
				return fmt.Errorf("encode attrs for %q: %w", path, err)
			}
			attrs = string(aj)
		}
		parent := ""
		if segs := SplitPath(path); len(segs) > 1 {
			parent = JoinPath(segs[:len(segs)-1])
		}
		if _, err := stmt.Exec(path, parent, n.Name(), kind, attrs, shape, dtype); err != nil {
			return fmt.Errorf("insert %q: %w", path, err)
		}
		return nil
	}

	// Root row: empty path, parent points at itself. Child queries
	// filter it out explicitly.
	if err := insert("", root); err != nil {
		return err
	}
	var walkErr error
	Walk(root, func(path string, n Node) bool {
		walkErr = insert(path, n)
		return walkErr == nil
	})
	if walkErr != nil {
		return walkErr
	}
	return tx.Commit()
}

// Root returns the store's root node.
func (s *Store) Root() Node {
	root := &storeNode{store: s, group: true}
	var attrs sql.NullString
	err := s.db.QueryRow("SELECT attrs FROM nodes WHERE path = ''").Scan(&attrs)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		log.Printf("hier: load root: %v", err)
	case attrs.Valid:
		root.attrs = decodeAttrs("", attrs.String)
	}
	return root
}

// storeNode is a lazy view over one row. Children are fetched on first
// use and memoized for the lifetime of this node value, which matches
// the engine's single-call snapshot semantics; a fresh Root() sees
// fresh data.
type storeNode struct {
	store    *Store
	path     string
	name     string
	group    bool
	attrs    Value
	shape    []int64
	dtype    string
	children map[string]Node
}

func (n *storeNode) Name() string    { return n.name }
func (n *storeNode) IsGroup() bool   { return n.group }
func (n *storeNode) Attrs() Value    { return n.attrs }
func (n *storeNode) Shape() []int64  { return n.shape }
func (n *storeNode) Dtype() string   { return n.dtype }

func (n *storeNode) Children() map[string]Node {
	if !n.group {
		return nil
	}
	if n.children != nil {
		return n.children
	}
	rows, err := n.store.db.Query(
		"SELECT path, name, kind, attrs, shape, dtype FROM nodes WHERE parent = ? AND path <> ''", n.path)
	if err != nil {
		log.Printf("hier: list children of %q: %v", n.path, err)
		return nil
	}
	defer func() { _ = rows.Close() }()

	children := make(map[string]Node)
	for rows.Next() {
		child := &storeNode{store: n.store}
		var kind int
		var attrs, shape, dtype sql.NullString
		if err := rows.Scan(&child.path, &child.name, &kind, &attrs, &shape, &dtype); err != nil {
			log.Printf("hier: scan child of %q: %v", n.path, err)
			return nil
		}
		child.group = kind == kindGroup
		if attrs.Valid {
			child.attrs = decodeAttrs(child.path, attrs.String)
		}
		if shape.Valid {
			child.shape = decodeShape(child.path, shape.String)
		}
		if dtype.Valid {
			child.dtype = dtype.String
		}
		children[child.name] = child
	}
	if err := rows.Err(); err != nil {
		log.Printf("hier: list children of %q: %v", n.path, err)
		return nil
	}
	n.children = children
	return children
}

func decodeAttrs(path, raw string) Value {
	parsed, err := oj.Parse([]byte(raw))
	if err != nil {
		log.Printf("hier: bad attrs for %q: %v", path, err)
		return Null()
	}
	return FromAny(parsed)
}

func decodeShape(path, raw string) []int64 {
	parsed, err := oj.Parse([]byte(raw))
	if err != nil {
		log.Printf("hier: bad shape for %q: %v", path, err)
		return nil
	}
	list, ok := parsed.([]any)
	if !ok {
		return nil
	}
	shape := make([]int64, 0, len(list))
	for _, e := range list {
		switch v := e.(type) {
		case int64:
			shape = append(shape, v)
		case float64:
			shape = append(shape, int64(v))
		}
	}
	return shape
}

var (
	_ Node        = (*storeNode)(nil)
	_ Attributed  = (*storeNode)(nil)
	_ DatasetInfo = (*storeNode)(nil)
)
