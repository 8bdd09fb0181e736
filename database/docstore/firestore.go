package docstore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore maps collection paths directly onto Firestore collections,
// nested paths onto subcollections.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func (s *FirestoreStore) Get(ctx context.Context, collection, key string) (*Document, error) {
	snap, err := s.client.Collection(collection).Doc(key).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("firestore get %s/%s: %w", collection, key, err)
	}
	return &Document{Key: snap.Ref.ID, Data: snap.Data()}, nil
}

func (s *FirestoreStore) Set(ctx context.Context, collection, key string, data map[string]any) error {
	if _, err := s.client.Collection(collection).Doc(key).Set(ctx, data); err != nil {
		return fmt.Errorf("firestore set %s/%s: %w", collection, key, err)
	}
	return nil
}

func (s *FirestoreStore) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, data)
	if err != nil {
		return "", fmt.Errorf("firestore add %s: %w", collection, err)
	}
	return ref.ID, nil
}

func (s *FirestoreStore) Update(ctx context.Context, collection, key string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range fields {
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	if _, err := s.client.Collection(collection).Doc(key).Update(ctx, updates); err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("firestore update %s/%s: %w", collection, key, err)
	}
	return nil
}

func (s *FirestoreStore) Delete(ctx context.Context, collection, key string) error {
	if _, err := s.client.Collection(collection).Doc(key).Delete(ctx); err != nil {
		return fmt.Errorf("firestore delete %s/%s: %w", collection, key, err)
	}
	return nil
}

func (s *FirestoreStore) query(collection string, q Query) firestore.Query {
	fq := s.client.Collection(collection).Query
	for _, f := range q.Filters {
		fq = fq.Where(f.Field, "==", f.Value)
	}
	if q.OrderBy != "" {
		dir := firestore.Asc
		if q.Descending {
			dir = firestore.Desc
		}
		fq = fq.OrderBy(q.OrderBy, dir)
	}
	if q.Limit > 0 {
		fq = fq.Limit(q.Limit)
	}
	return fq
}

func (s *FirestoreStore) Find(ctx context.Context, collection string, q Query) ([]Document, error) {
	snaps, err := s.query(collection, q).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("firestore query %s: %w", collection, err)
	}
	return toDocuments(snaps), nil
}

func (s *FirestoreStore) Watch(ctx context.Context, collection string, q Query) (<-chan Snapshot, error) {
	it := s.query(collection, q).Snapshots(ctx)
	latest := make(chan Snapshot, 1)
	out := make(chan Snapshot)

	go func() {
		defer it.Stop()
		defer close(latest)
		for {
			qs, err := it.Next()
			if err != nil {
				if ctx.Err() == nil && !errors.Is(err, iterator.Done) {
					offerLatest(latest, Snapshot{Err: fmt.Errorf("firestore watch %s: %w", collection, err)})
				}
				return
			}
			snaps, err := qs.Documents.GetAll()
			if err != nil {
				offerLatest(latest, Snapshot{Err: fmt.Errorf("firestore watch %s: %w", collection, err)})
				return
			}
			offerLatest(latest, Snapshot{Docs: toDocuments(snaps)})
		}
	}()

	go forwardLatest(ctx, latest, out)
	return out, nil
}

// forwardLatest relays snapshots from latest to out until either side ends.
func forwardLatest(ctx context.Context, latest <-chan Snapshot, out chan<- Snapshot) {
	defer close(out)
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-latest:
			if !ok {
				return
			}
			select {
			case out <- snap:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (s *FirestoreStore) Ping(ctx context.Context) error {
	_, err := s.client.Collections(ctx).Next()
	if err != nil && !errors.Is(err, iterator.Done) {
		return err
	}
	return nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func toDocuments(snaps []*firestore.DocumentSnapshot) []Document {
	docs := make([]Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, Document{Key: snap.Ref.ID, Data: snap.Data()})
	}
	return docs
}
