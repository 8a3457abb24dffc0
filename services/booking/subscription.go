package booking

import (
	"context"
	"errors"
	"sync"

	"asokatrip/database/docstore"
	"asokatrip/models"
)

// BookingFinder re-reads the subscribed query after every change.
type BookingFinder interface {
	Find(ctx context.Context, q docstore.Query) ([]models.Booking, error)
}

// Subscription is a live booking list. Updates delivers the latest list; a slow reader only ever
// sees the newest one. The channel is closed when the subscription ends.
type Subscription struct {
	Period models.Period

	updates chan []models.Booking
	cancel  context.CancelFunc
	done    chan struct{}

	mu  sync.Mutex
	err error
}

func newSubscription(p models.Period, cancel context.CancelFunc) *Subscription {
	return &Subscription{
		Period:  p,
		updates: make(chan []models.Booking, 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
}

func (s *Subscription) Updates() <-chan []models.Booking { return s.updates }

// Done is closed once the subscription has stopped.
func (s *Subscription) Done() <-chan struct{} { return s.done }

// Err returns the failure that ended the subscription, nil when it was closed normally.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close stops the subscription and waits for its goroutine to exit.
func (s *Subscription) Close() {
	s.cancel()
	<-s.done
}

func (s *Subscription) run(ctx context.Context, finder BookingFinder, q docstore.Query, w docstore.Watcher) {
	defer close(s.done)
	defer close(s.updates)
	defer w.Close()

	for {
		if err := w.Next(ctx); err != nil {
			if !errors.Is(err, docstore.ErrWatchClosed) {
				s.fail(ctx, err)
			}
			return
		}

		list, err := finder.Find(ctx, q)
		if err != nil {
			s.fail(ctx, err)
			return
		}
		s.publish(list)
	}
}

// publish replaces any undelivered list with the newest one. Only run sends, so the second send
// cannot block.
func (s *Subscription) publish(list []models.Booking) {
	select {
	case s.updates <- list:
	default:
		select {
		case <-s.updates:
		default:
		}
		s.updates <- list
	}
}

func (s *Subscription) fail(ctx context.Context, err error) {
	if ctx.Err() != nil {
		return
	}
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}
