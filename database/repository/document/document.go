// File: database/repository/document/document.go
package docRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"asokatrip/database/docstore"
	"asokatrip/metrics"
)

// Repo is typed access to one collection of the document store.
type Repo[T any] struct {
	coll    docstore.Collection
	metrics *metrics.Metrics
}

// New binds a Repo to the named collection. m may be nil.
func New[T any](store docstore.Store, name string, m *metrics.Metrics) *Repo[T] {
	return &Repo[T]{coll: store.Collection(name), metrics: m}
}

func (r *Repo[T]) Name() string { return r.coll.Name() }

// NewID returns a fresh document key.
func NewID() string {
	return uuid.New().String()
}

// GetByID loads a document. A missing document yields docstore.ErrNotFound.
func (r *Repo[T]) GetByID(ctx context.Context, id string) (*T, error) {
	var doc T
	if err := r.coll.Get(ctx, id, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetOrZero loads a singleton document, returning the zero value when it has never been saved.
func (r *Repo[T]) GetOrZero(ctx context.Context, id string) (*T, error) {
	doc, err := r.GetByID(ctx, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return new(T), nil
	}
	return doc, err
}

// Create inserts doc under a new key and returns the key.
func (r *Repo[T]) Create(ctx context.Context, doc *T) (string, error) {
	id := NewID()
	if err := r.coll.Create(ctx, id, doc); err != nil {
		return "", err
	}
	if d, ok := any(doc).(docstore.Identifiable); ok {
		d.SetID(id)
	}
	return id, nil
}

// Save replaces the document stored under id.
func (r *Repo[T]) Save(ctx context.Context, id string, doc *T) error {
	return r.coll.Set(ctx, id, doc)
}

// Merge upserts the given fields into the document stored under id.
func (r *Repo[T]) Merge(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.coll.Merge(ctx, id, fields)
}

// Update changes fields of an existing document.
func (r *Repo[T]) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.coll.Update(ctx, id, fields)
}

func (r *Repo[T]) Delete(ctx context.Context, id string) error {
	return r.coll.Delete(ctx, id)
}

// Find runs q and decodes every match, recording the query outcome.
func (r *Repo[T]) Find(ctx context.Context, q docstore.Query) ([]T, error) {
	started := time.Now()
	docs, err := docstore.FindAll[T](ctx, r.coll, q)
	r.metrics.ObserveQuery(r.coll.Name(), started, err)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", r.coll.Name(), err)
	}
	return docs, nil
}

// FindOne returns the first match of q or docstore.ErrNotFound.
func (r *Repo[T]) FindOne(ctx context.Context, q docstore.Query) (*T, error) {
	q.Limit = 1
	docs, err := r.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, docstore.ErrNotFound
	}
	return &docs[0], nil
}

func (r *Repo[T]) Count(ctx context.Context, q docstore.Query) (int64, error) {
	started := time.Now()
	n, err := r.coll.Count(ctx, q)
	r.metrics.ObserveQuery(r.coll.Name(), started, err)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", r.coll.Name(), err)
	}
	return n, nil
}

// Watch reports changes to the documents matched by q.
func (r *Repo[T]) Watch(ctx context.Context, q docstore.Query) (docstore.Watcher, error) {
	return r.coll.Watch(ctx, q)
}

// Newest orders by createdAt descending, the default listing order of every collection.
func Newest() docstore.Query {
	return docstore.Query{OrderBy: "createdAt", Direction: docstore.Desc}
}
