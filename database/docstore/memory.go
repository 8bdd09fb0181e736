package docstore

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps collections in process memory. It backs tests and local
// development and supports Watch.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]map[string]map[string]any
	watchers    map[string]map[*memWatcher]struct{}
	// failNext is returned by the next operation and then cleared.
	failNext error
}

type memWatcher struct {
	q  Query
	ch chan Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]map[string]any),
		watchers:    make(map[string]map[*memWatcher]struct{}),
	}
}

// FailNext makes the next store call return err. Used to exercise backend failures.
func (s *MemoryStore) FailNext(err error) {
	s.mu.Lock()
	s.failNext = err
	s.mu.Unlock()
}

func (s *MemoryStore) takeFailure() error {
	err := s.failNext
	s.failNext = nil
	return err
}

func normalize(collection string) string {
	return strings.Trim(collection, "/")
}

func (s *MemoryStore) Get(ctx context.Context, collection, key string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return nil, err
	}
	data, ok := s.collections[normalize(collection)][key]
	if !ok {
		return nil, ErrNotFound
	}
	return &Document{Key: key, Data: cloneMap(data)}, nil
}

func (s *MemoryStore) Set(ctx context.Context, collection, key string, data map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("docstore: empty key in %s", collection)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return err
	}
	c := normalize(collection)
	if s.collections[c] == nil {
		s.collections[c] = make(map[string]map[string]any)
	}
	s.collections[c][key] = cloneMap(data)
	s.notifyLocked(c)
	return nil
}

func (s *MemoryStore) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	key := uuid.NewString()
	if err := s.Set(ctx, collection, key, data); err != nil {
		return "", err
	}
	return key, nil
}

func (s *MemoryStore) Update(ctx context.Context, collection, key string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return err
	}
	c := normalize(collection)
	data, ok := s.collections[c][key]
	if !ok {
		return ErrNotFound
	}
	for k, v := range fields {
		data[k] = cloneValue(v)
	}
	s.notifyLocked(c)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return err
	}
	c := normalize(collection)
	if _, ok := s.collections[c][key]; ok {
		delete(s.collections[c], key)
		s.notifyLocked(c)
	}
	return nil
}

func (s *MemoryStore) Find(ctx context.Context, collection string, q Query) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return nil, err
	}
	return s.findLocked(normalize(collection), q), nil
}

func (s *MemoryStore) findLocked(collection string, q Query) []Document {
	docs := make([]Document, 0)
	for key, data := range s.collections[collection] {
		if matches(data, q.Filters) {
			docs = append(docs, Document{Key: key, Data: cloneMap(data)})
		}
	}
	sort.SliceStable(docs, func(i, j int) bool {
		if q.OrderBy != "" {
			c := compareValues(docs[i].Data[q.OrderBy], docs[j].Data[q.OrderBy])
			if c != 0 {
				if q.Descending {
					return c > 0
				}
				return c < 0
			}
		}
		return docs[i].Key < docs[j].Key
	})
	if q.Limit > 0 && len(docs) > q.Limit {
		docs = docs[:q.Limit]
	}
	return docs
}

func (s *MemoryStore) Watch(ctx context.Context, collection string, q Query) (<-chan Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c := normalize(collection)
	w := &memWatcher{q: q, ch: make(chan Snapshot, 1)}

	s.mu.Lock()
	if err := s.takeFailure(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if s.watchers[c] == nil {
		s.watchers[c] = make(map[*memWatcher]struct{})
	}
	s.watchers[c][w] = struct{}{}
	offerLatest(w.ch, Snapshot{Docs: s.findLocked(c, q)})
	s.mu.Unlock()

	out := make(chan Snapshot)
	go func() {
		defer close(out)
		defer func() {
			s.mu.Lock()
			delete(s.watchers[c], w)
			s.mu.Unlock()
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case snap := <-w.ch:
				select {
				case out <- snap:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// notifyLocked pushes the new result to every watcher of collection.
func (s *MemoryStore) notifyLocked(collection string) {
	for w := range s.watchers[collection] {
		offerLatest(w.ch, Snapshot{Docs: s.findLocked(collection, w.q)})
	}
}

// offerLatest replaces any undelivered snapshot with snap.
func offerLatest(ch chan Snapshot, snap Snapshot) {
	for {
		select {
		case ch <- snap:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) Close() error {
	return nil
}

func matches(data map[string]any, filters []Filter) bool {
	for _, f := range filters {
		v, ok := data[f.Field]
		if !ok || compareValues(v, f.Value) != 0 {
			return false
		}
	}
	return true
}

// compareValues orders numbers numerically, everything else by its string form.
func compareValues(a, b any) int {
	fa, aNum := toFloat(a)
	fb, bNum := toFloat(b)
	if aNum && bNum {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	}
	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			if ab == bb {
				return 0
			}
			if !ab {
				return -1
			}
			return 1
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case map[string]string:
		out := make(map[string]string, len(t))
		for k, s := range t {
			out[k] = s
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = cloneValue(t[i])
		}
		return out
	case []string:
		return append([]string(nil), t...)
	}
	return v
}
