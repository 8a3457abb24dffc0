// Package docstore is the document database boundary. Both the Firestore and the MongoDB
// backends expose the same small contract: keyed documents, single-field range queries with one
// sort key and a limit, and change notifications.
package docstore

import (
	"context"
	"time"
)

// Op is a comparison operator usable in a Filter.
type Op string

const (
	Eq  Op = "=="
	Gt  Op = ">"
	Gte Op = ">="
	Lt  Op = "<"
	Lte Op = "<="
)

// Direction is the sort direction of a Query.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// Filter is one predicate on a document field.
type Filter struct {
	Field string
	Op    Op
	Value interface{}
}

// Query describes a filtered, sorted, optionally limited read of a collection.
type Query struct {
	Filters   []Filter
	OrderBy   string
	Direction Direction
	Limit     int
}

// Where returns a copy of q with an extra predicate.
func (q Query) Where(field string, op Op, value interface{}) Query {
	filters := make([]Filter, 0, len(q.Filters)+1)
	filters = append(filters, q.Filters...)
	q.Filters = append(filters, Filter{Field: field, Op: op, Value: value})
	return q
}

// Store hands out collections and owns the underlying client.
type Store interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	Backend() string
}

// Collection is a named set of documents keyed by string id.
type Collection interface {
	Name() string
	Get(ctx context.Context, id string, dst interface{}) error
	Create(ctx context.Context, id string, doc interface{}) error
	Set(ctx context.Context, id string, doc interface{}) error
	Merge(ctx context.Context, id string, fields map[string]interface{}) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, q Query) (Cursor, error)
	Count(ctx context.Context, q Query) (int64, error)
	Watch(ctx context.Context, q Query) (Watcher, error)
}

// Cursor iterates query results in order.
type Cursor interface {
	Next(ctx context.Context) bool
	ID() string
	Decode(dst interface{}) error
	Err() error
	Close(ctx context.Context) error
}

// Watcher signals changes to the documents matching a query. The first Next returns once the
// watch is established; later calls block until the next change or until ctx is done.
type Watcher interface {
	Next(ctx context.Context) error
	Close() error
}

// Identifiable documents get their id assigned from the store key after decoding.
type Identifiable interface {
	SetID(id string)
}

// DefaultTimeout bounds single-document operations when the caller has no deadline.
const DefaultTimeout = 5 * time.Second

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, DefaultTimeout)
}
