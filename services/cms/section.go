package cms

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"asokatrip/database/docstore"
	"asokatrip/services/tasks"
	"asokatrip/utils"
)

// Documents is the collection access a Section needs. docRepo.Repo satisfies it.
type Documents[T any] interface {
	Name() string
	Find(ctx context.Context, q docstore.Query) ([]T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, doc *T) (string, error)
	Save(ctx context.Context, id string, doc *T) error
	Delete(ctx context.Context, id string) error
}

// Entry is the method set shared by listed content documents.
type Entry[T any] interface {
	*T
	docstore.Identifiable
	Created() time.Time
	SetCreatedAt(time.Time)
}

// Section is one editable list of site content.
type Section[T any, P Entry[T]] struct {
	docs     Documents[T]
	order    docstore.Query
	validate func(*T) error
	media    func(*T) []string
	cleaner  tasks.MediaCleaner
	now      func() time.Time
}

// List returns every entry in the section's display order.
func (s *Section[T, P]) List(ctx context.Context) ([]T, error) {
	return s.docs.Find(ctx, s.order)
}

// Latest returns at most limit entries in display order.
func (s *Section[T, P]) Latest(ctx context.Context, limit int) ([]T, error) {
	q := s.order
	q.Limit = limit
	return s.docs.Find(ctx, q)
}

func (s *Section[T, P]) Get(ctx context.Context, id string) (*T, error) {
	doc, err := s.docs.GetByID(ctx, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrNotFound
	}
	return doc, err
}

// Create validates doc and stores it with the current time as createdAt.
func (s *Section[T, P]) Create(ctx context.Context, doc *T) (*T, error) {
	if err := s.validate(doc); err != nil {
		return nil, err
	}
	P(doc).SetCreatedAt(s.now())
	if _, err := s.docs.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Update replaces the entry under id, keeping its creation time. Images no longer referenced are
// queued for deletion.
func (s *Section[T, P]) Update(ctx context.Context, id string, doc *T) (*T, error) {
	if err := s.validate(doc); err != nil {
		return nil, err
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	P(doc).SetID(id)
	P(doc).SetCreatedAt(P(existing).Created())
	if err := s.docs.Save(ctx, id, doc); err != nil {
		return nil, err
	}
	s.cleanup(ctx, dropped(s.images(existing), s.images(doc)))
	return doc, nil
}

// Delete removes the entry and queues its images for deletion.
func (s *Section[T, P]) Delete(ctx context.Context, id string) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.docs.Delete(ctx, id); err != nil {
		return err
	}
	utils.GetLogger().Info("Content deleted", zap.String("collection", s.docs.Name()), zap.String("id", id))
	s.cleanup(ctx, s.images(existing))
	return nil
}

func (s *Section[T, P]) images(doc *T) []string {
	if s.media == nil || doc == nil {
		return nil
	}
	return s.media(doc)
}

func (s *Section[T, P]) cleanup(ctx context.Context, urls []string) {
	enqueueCleanup(ctx, s.cleaner, urls)
}

func enqueueCleanup(ctx context.Context, cleaner tasks.MediaCleaner, urls []string) {
	if len(urls) == 0 {
		return
	}
	if err := cleaner.EnqueueMediaCleanup(ctx, urls); err != nil {
		utils.GetLogger().Warn("Failed to queue image cleanup", zap.Strings("urls", urls), zap.Error(err))
	}
}

// dropped returns the non-empty entries of before missing from after.
func dropped(before, after []string) []string {
	keep := make(map[string]bool, len(after))
	for _, u := range after {
		keep[u] = true
	}
	var out []string
	for _, u := range before {
		if u != "" && !keep[u] {
			out = append(out, u)
		}
	}
	return out
}
