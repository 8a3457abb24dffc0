package docstore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Server error codes the driver reports when a query cannot be planned without an index.
const (
	mongoIndexNotFound        = 27
	mongoNoQueryExecutionPlan = 291
)

// idField is where the document key is stored in MongoDB documents.
const idField = "id"

// MongoStore implements Store on a MongoDB database.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore wraps an already connected client.
func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	return &MongoStore{client: client, db: client.Database(dbName)}
}

func (s *MongoStore) Backend() string { return "mongo" }

func (s *MongoStore) Collection(name string) Collection {
	return &mongoCollection{name: name, coll: s.db.Collection(name)}
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Database exposes the underlying database for index management.
func (s *MongoStore) Database() *mongo.Database {
	return s.db
}

type mongoCollection struct {
	name string
	coll *mongo.Collection
}

func (c *mongoCollection) Name() string { return c.name }

func (c *mongoCollection) Get(ctx context.Context, id string, dst interface{}) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := c.coll.FindOne(ctx, bson.M{idField: id}).Decode(dst)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%s: get %s: %w", c.name, id, err)
	}
	if doc, ok := dst.(Identifiable); ok {
		doc.SetID(id)
	}
	return nil
}

func (c *mongoCollection) Create(ctx context.Context, id string, doc interface{}) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	raw, err := withID(doc, id)
	if err != nil {
		return fmt.Errorf("%s: encode %s: %w", c.name, id, err)
	}
	if _, err := c.coll.InsertOne(ctx, raw); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("%s: create %s: %w", c.name, id, err)
	}
	return nil
}

func (c *mongoCollection) Set(ctx context.Context, id string, doc interface{}) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	raw, err := withID(doc, id)
	if err != nil {
		return fmt.Errorf("%s: encode %s: %w", c.name, id, err)
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := c.coll.ReplaceOne(ctx, bson.M{idField: id}, raw, opts); err != nil {
		return fmt.Errorf("%s: set %s: %w", c.name, id, err)
	}
	return nil
}

func (c *mongoCollection) Merge(ctx context.Context, id string, fields map[string]interface{}) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	set := bson.M{idField: id}
	for k, v := range fields {
		set[k] = v
	}
	opts := options.Update().SetUpsert(true)
	if _, err := c.coll.UpdateOne(ctx, bson.M{idField: id}, bson.M{"$set": set}, opts); err != nil {
		return fmt.Errorf("%s: merge %s: %w", c.name, id, err)
	}
	return nil
}

func (c *mongoCollection) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := c.coll.UpdateOne(ctx, bson.M{idField: id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("%s: update %s: %w", c.name, id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *mongoCollection) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := c.coll.DeleteOne(ctx, bson.M{idField: id})
	if err != nil {
		return fmt.Errorf("%s: delete %s: %w", c.name, id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *mongoCollection) Find(ctx context.Context, q Query) (Cursor, error) {
	opts := options.Find()
	if q.OrderBy != "" {
		opts.SetSort(bson.D{{Key: q.OrderBy, Value: mongoDirection(q.Direction)}})
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	cur, err := c.coll.Find(ctx, mongoFilter(q.Filters), opts)
	if err != nil {
		return nil, c.classify(err)
	}
	return &mongoCursor{cur: cur, classify: c.classify}, nil
}

func (c *mongoCollection) Count(ctx context.Context, q Query) (int64, error) {
	n, err := c.coll.CountDocuments(ctx, mongoFilter(q.Filters))
	if err != nil {
		return 0, c.classify(err)
	}
	return n, nil
}

// Watch opens a change stream on the collection. Every insert, update, replace or delete is
// reported; callers re-run their query to observe the new result set.
func (c *mongoCollection) Watch(ctx context.Context, q Query) (Watcher, error) {
	stream, err := c.coll.Watch(ctx, mongo.Pipeline{}, options.ChangeStream())
	if err != nil {
		return nil, c.classify(err)
	}
	return &mongoWatcher{stream: stream}, nil
}

func (c *mongoCollection) classify(err error) error {
	if err == nil {
		return nil
	}
	var se mongo.ServerError
	if errors.As(err, &se) && (se.HasErrorCode(mongoNoQueryExecutionPlan) || se.HasErrorCode(mongoIndexNotFound)) {
		return &IndexError{Collection: c.name, Link: indexLink(err.Error()), Cause: err}
	}
	return &QueryError{Collection: c.name, Cause: err}
}

type mongoCursor struct {
	cur      *mongo.Cursor
	classify func(error) error
}

func (m *mongoCursor) Next(ctx context.Context) bool { return m.cur.Next(ctx) }

func (m *mongoCursor) ID() string {
	id, _ := m.cur.Current.Lookup(idField).StringValueOK()
	return id
}

func (m *mongoCursor) Decode(dst interface{}) error { return m.cur.Decode(dst) }

func (m *mongoCursor) Err() error { return m.classify(m.cur.Err()) }

func (m *mongoCursor) Close(ctx context.Context) error { return m.cur.Close(ctx) }

// mongoWatcher signals once as soon as the change stream is open, then once per change event.
type mongoWatcher struct {
	stream *mongo.ChangeStream
	primed bool
}

func (w *mongoWatcher) Next(ctx context.Context) error {
	if !w.primed {
		w.primed = true
		return ctx.Err()
	}
	if w.stream.Next(ctx) {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := w.stream.Err(); err != nil {
		return err
	}
	return ErrWatchClosed
}

func (w *mongoWatcher) Close() error {
	return w.stream.Close(context.Background())
}

func mongoDirection(d Direction) int {
	if d == Desc {
		return -1
	}
	return 1
}

func mongoFilter(filters []Filter) bson.M {
	out := bson.M{}
	for _, f := range filters {
		if f.Op == Eq {
			out[f.Field] = f.Value
			continue
		}
		ops, ok := out[f.Field].(bson.M)
		if !ok {
			ops = bson.M{}
			out[f.Field] = ops
		}
		ops[mongoOperator(f.Op)] = f.Value
	}
	return out
}

func mongoOperator(op Op) string {
	switch op {
	case Gt:
		return "$gt"
	case Gte:
		return "$gte"
	case Lt:
		return "$lt"
	case Lte:
		return "$lte"
	default:
		return "$eq"
	}
}

// withID marshals doc and forces the key field, so callers never have to keep both in sync.
func withID(doc interface{}, id string) (bson.M, error) {
	data, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var raw bson.M
	if err := bson.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	raw[idField] = id
	return raw, nil
}
