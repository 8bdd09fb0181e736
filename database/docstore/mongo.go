package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Reserved fields of the Mongo schema. A nested collection "hotels/{k}/roomTypes"
// is stored in the Mongo collection "hotels.roomTypes"; its documents carry the
// parent document path and their own key, and use the full document path as _id.
const (
	mongoIDField     = "_id"
	mongoParentField = "_parent"
	mongoKeyField    = "_key"
)

// MongoStore implements Store on a MongoDB database.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) coll(collection string) (*mongo.Collection, string) {
	parent, names := splitPath(collection)
	return s.db.Collection(strings.Join(names, ".")), parent
}

func mongoID(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "/" + key
}

func (s *MongoStore) Get(ctx context.Context, collection, key string) (*Document, error) {
	c, parent := s.coll(collection)
	var raw bson.M
	err := c.FindOne(ctx, bson.M{mongoIDField: mongoID(parent, key)}).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("mongo get %s/%s: %w", collection, key, err)
	}
	doc := fromMongo(raw)
	return &doc, nil
}

func (s *MongoStore) Set(ctx context.Context, collection, key string, data map[string]any) error {
	c, parent := s.coll(collection)
	id := mongoID(parent, key)
	doc := bson.M{}
	for k, v := range data {
		doc[k] = v
	}
	doc[mongoIDField] = id
	if parent != "" {
		doc[mongoParentField] = parent
		doc[mongoKeyField] = key
	}
	_, err := c.ReplaceOne(ctx, bson.M{mongoIDField: id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo set %s/%s: %w", collection, key, err)
	}
	return nil
}

func (s *MongoStore) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	key := primitive.NewObjectID().Hex()
	if err := s.Set(ctx, collection, key, data); err != nil {
		return "", err
	}
	return key, nil
}

func (s *MongoStore) Update(ctx context.Context, collection, key string, fields map[string]any) error {
	c, parent := s.coll(collection)
	res, err := c.UpdateOne(ctx, bson.M{mongoIDField: mongoID(parent, key)}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return fmt.Errorf("mongo update %s/%s: %w", collection, key, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, collection, key string) error {
	c, parent := s.coll(collection)
	if _, err := c.DeleteOne(ctx, bson.M{mongoIDField: mongoID(parent, key)}); err != nil {
		return fmt.Errorf("mongo delete %s/%s: %w", collection, key, err)
	}
	return nil
}

func mongoFilter(parent string, q Query) bson.M {
	filter := bson.M{}
	for _, f := range q.Filters {
		filter[f.Field] = f.Value
	}
	if parent != "" {
		filter[mongoParentField] = parent
	}
	return filter
}

func (s *MongoStore) Find(ctx context.Context, collection string, q Query) ([]Document, error) {
	c, parent := s.coll(collection)
	opts := options.Find()
	if q.OrderBy != "" {
		dir := 1
		if q.Descending {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: q.OrderBy, Value: dir}})
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cursor, err := c.Find(ctx, mongoFilter(parent, q), opts)
	if err != nil {
		return nil, fmt.Errorf("mongo query %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	docs := make([]Document, 0)
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("mongo decode %s: %w", collection, err)
		}
		docs = append(docs, fromMongo(raw))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("mongo cursor %s: %w", collection, err)
	}
	return docs, nil
}

// Watch re-runs the query on every change event of the backing collection.
// Change streams need a replica set; on a standalone server Watch fails.
func (s *MongoStore) Watch(ctx context.Context, collection string, q Query) (<-chan Snapshot, error) {
	c, _ := s.coll(collection)
	stream, err := c.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, fmt.Errorf("mongo watch %s: %w", collection, err)
	}

	latest := make(chan Snapshot, 1)
	out := make(chan Snapshot)

	go func() {
		defer close(latest)
		defer stream.Close(context.Background())

		emit := func() bool {
			fctx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			docs, err := s.Find(fctx, collection, q)
			if err != nil {
				if ctx.Err() == nil {
					offerLatest(latest, Snapshot{Err: err})
				}
				return false
			}
			offerLatest(latest, Snapshot{Docs: docs})
			return true
		}

		if !emit() {
			return
		}
		for stream.Next(ctx) {
			if !emit() {
				return
			}
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			offerLatest(latest, Snapshot{Err: fmt.Errorf("mongo watch %s: %w", collection, err)})
		}
	}()

	go forwardLatest(ctx, latest, out)
	return out, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.db.Client().Disconnect(ctx)
}

// fromMongo strips the reserved fields and converts driver types to plain Go values.
func fromMongo(raw bson.M) Document {
	key, _ := raw[mongoKeyField].(string)
	if key == "" {
		key = fmt.Sprint(raw[mongoIDField])
	}
	data := make(map[string]any, len(raw))
	for k, v := range raw {
		switch k {
		case mongoIDField, mongoParentField, mongoKeyField:
			continue
		}
		data[k] = plainValue(v)
	}
	return Document{Key: key, Data: data}
}

func plainValue(v any) any {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time()
	case primitive.ObjectID:
		return t.Hex()
	case primitive.A:
		out := make([]any, len(t))
		for i := range t {
			out[i] = plainValue(t[i])
		}
		return out
	case primitive.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = plainValue(e.Value)
		}
		return out
	case primitive.M:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = plainValue(e)
		}
		return out
	}
	return v
}
