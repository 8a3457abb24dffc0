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

// FirestoreStore implements Store on Cloud Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore wraps a Firestore client obtained from the Firebase app.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) Backend() string { return "firestore" }

func (s *FirestoreStore) Collection(name string) Collection {
	return &firestoreCollection{name: name, ref: s.client.Collection(name)}
}

// Ping reads a document that need not exist; only transport and auth failures are errors.
func (s *FirestoreStore) Ping(ctx context.Context) error {
	_, err := s.client.Collection("_health").Doc("ping").Get(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return err
	}
	return nil
}

func (s *FirestoreStore) Close(ctx context.Context) error {
	return s.client.Close()
}

type firestoreCollection struct {
	name string
	ref  *firestore.CollectionRef
}

func (c *firestoreCollection) Name() string { return c.name }

func (c *firestoreCollection) Get(ctx context.Context, id string, dst interface{}) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	snap, err := c.ref.Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%s: get %s: %w", c.name, id, err)
	}
	if err := snap.DataTo(dst); err != nil {
		return fmt.Errorf("%s: decode %s: %w", c.name, id, err)
	}
	if doc, ok := dst.(Identifiable); ok {
		doc.SetID(snap.Ref.ID)
	}
	return nil
}

func (c *firestoreCollection) Create(ctx context.Context, id string, doc interface{}) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := c.ref.Doc(id).Create(ctx, doc)
	if status.Code(err) == codes.AlreadyExists {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("%s: create %s: %w", c.name, id, err)
	}
	return nil
}

func (c *firestoreCollection) Set(ctx context.Context, id string, doc interface{}) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if _, err := c.ref.Doc(id).Set(ctx, doc); err != nil {
		return fmt.Errorf("%s: set %s: %w", c.name, id, err)
	}
	return nil
}

func (c *firestoreCollection) Merge(ctx context.Context, id string, fields map[string]interface{}) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if _, err := c.ref.Doc(id).Set(ctx, fields, firestore.MergeAll); err != nil {
		return fmt.Errorf("%s: merge %s: %w", c.name, id, err)
	}
	return nil
}

func (c *firestoreCollection) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range fields {
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	_, err := c.ref.Doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%s: update %s: %w", c.name, id, err)
	}
	return nil
}

func (c *firestoreCollection) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := c.ref.Doc(id).Delete(ctx, firestore.Exists)
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%s: delete %s: %w", c.name, id, err)
	}
	return nil
}

func (c *firestoreCollection) query(q Query) firestore.Query {
	fq := c.ref.Query
	for _, f := range q.Filters {
		fq = fq.Where(f.Field, string(f.Op), f.Value)
	}
	if q.OrderBy != "" {
		dir := firestore.Asc
		if q.Direction == Desc {
			dir = firestore.Desc
		}
		fq = fq.OrderBy(q.OrderBy, dir)
	}
	if q.Limit > 0 {
		fq = fq.Limit(q.Limit)
	}
	return fq
}

// Find runs the query eagerly so that index and transport failures surface here rather than
// halfway through iteration.
func (c *firestoreCollection) Find(ctx context.Context, q Query) (Cursor, error) {
	docs, err := c.query(q).Documents(ctx).GetAll()
	if err != nil {
		return nil, c.classify(err)
	}
	return &firestoreCursor{docs: docs, pos: -1}, nil
}

func (c *firestoreCollection) Count(ctx context.Context, q Query) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	fq := c.query(q)
	res, err := fq.NewAggregationQuery().WithCount("total").Get(ctx)
	if err != nil {
		return 0, c.classify(err)
	}
	v, ok := res["total"]
	if !ok {
		return 0, &QueryError{Collection: c.name, Cause: errors.New("count alias missing from result")}
	}
	return countValue(v)
}

func (c *firestoreCollection) Watch(ctx context.Context, q Query) (Watcher, error) {
	return &firestoreWatcher{it: c.query(q).Snapshots(ctx), classify: c.classify}, nil
}

// classify maps gRPC status codes. Firestore answers FailedPrecondition with a console link when
// a composite index is required.
func (c *firestoreCollection) classify(err error) error {
	if err == nil {
		return nil
	}
	if st, ok := status.FromError(err); ok && st.Code() == codes.FailedPrecondition {
		return &IndexError{Collection: c.name, Link: indexLink(st.Message()), Cause: err}
	}
	return &QueryError{Collection: c.name, Cause: err}
}

type firestoreCursor struct {
	docs []*firestore.DocumentSnapshot
	pos  int
}

func (f *firestoreCursor) Next(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	f.pos++
	return f.pos < len(f.docs)
}

func (f *firestoreCursor) ID() string { return f.docs[f.pos].Ref.ID }

func (f *firestoreCursor) Decode(dst interface{}) error { return f.docs[f.pos].DataTo(dst) }

func (f *firestoreCursor) Err() error { return nil }

func (f *firestoreCursor) Close(ctx context.Context) error { return nil }

// firestoreWatcher reports every snapshot, the listener's initial one included, so a reader that
// queries after each Next never misses a change made before the listener was live.
type firestoreWatcher struct {
	it       *firestore.QuerySnapshotIterator
	classify func(error) error
}

func (w *firestoreWatcher) Next(ctx context.Context) error {
	_, err := w.it.Next()
	if errors.Is(err, iterator.Done) {
		return ErrWatchClosed
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return w.classify(err)
	}
	return nil
}

func (w *firestoreWatcher) Close() error {
	w.it.Stop()
	return nil
}

func countValue(v interface{}) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case interface{ GetIntegerValue() int64 }:
		return n.GetIntegerValue(), nil
	default:
		return 0, fmt.Errorf("unexpected count type %T", v)
	}
}
