// Package docstore is the document database seen by the repositories: keyed
// documents in slash-separated (possibly nested) collections.
package docstore

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned when a document key does not exist.
var ErrNotFound = errors.New("docstore: document not found")

// Document is one stored record. Key is the storage key, not any id field in Data.
type Document struct {
	Key  string
	Data map[string]any
}

// Filter is an equality condition on a top-level field.
type Filter struct {
	Field string
	Value any
}

// Query selects documents of one collection.
type Query struct {
	Filters    []Filter
	OrderBy    string
	Descending bool
	Limit      int
}

// Where returns a query with a single equality filter.
func Where(field string, value any) Query {
	return Query{Filters: []Filter{{Field: field, Value: value}}}
}

// And adds an equality filter.
func (q Query) And(field string, value any) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Field: field, Value: value})
	return q
}

// Order sorts results by field.
func (q Query) Order(field string, descending bool) Query {
	q.OrderBy = field
	q.Descending = descending
	return q
}

// Take limits the number of results.
func (q Query) Take(n int) Query {
	q.Limit = n
	return q
}

// Snapshot is one result of a watched query.
type Snapshot struct {
	Docs []Document
	Err  error
}

// Store is implemented by the Firestore, Mongo and in-memory drivers.
type Store interface {
	Get(ctx context.Context, collection, key string) (*Document, error)
	Set(ctx context.Context, collection, key string, data map[string]any) error
	Add(ctx context.Context, collection string, data map[string]any) (string, error)
	Update(ctx context.Context, collection, key string, fields map[string]any) error
	Delete(ctx context.Context, collection, key string) error
	Find(ctx context.Context, collection string, q Query) ([]Document, error)
	// Watch delivers the query result now and after every change until ctx is
	// done, then closes the channel. A consumer that falls behind only sees the
	// newest snapshot. A terminal failure is delivered as a Snapshot with Err set.
	Watch(ctx context.Context, collection string, q Query) (<-chan Snapshot, error)
	Ping(ctx context.Context) error
	Close() error
}

// Path joins collection and document ids: Path("hotels", key, "roomTypes").
func Path(segments ...string) string {
	return strings.Join(segments, "/")
}

// splitPath returns the parent document path ("" for a root collection) and
// the collection segments of a collection path.
func splitPath(collection string) (parent string, names []string) {
	segs := strings.Split(strings.Trim(collection, "/"), "/")
	for i := 0; i < len(segs); i += 2 {
		names = append(names, segs[i])
	}
	if len(segs) > 1 {
		parent = strings.Join(segs[:len(segs)-1], "/")
	}
	return parent, names
}

// IsNested reports whether collection lives under a document.
func IsNested(collection string) bool {
	return strings.Contains(strings.Trim(collection, "/"), "/")
}
