// Package period turns the admin's filter selection into concrete time bounds.
package period

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"asokatrip/models"
)

// DateLayout is the calendar date format accepted for custom ranges.
const DateLayout = "2006-01-02"

var (
	// ErrInvalidDateRange is returned for custom ranges with missing, malformed or inverted dates.
	ErrInvalidDateRange = errors.New("invalid date range")
	// ErrUnknownFilter is returned for a filter token outside the known set. It matches
	// ErrInvalidDateRange under errors.Is.
	ErrUnknownFilter = fmt.Errorf("%w: unknown filter", ErrInvalidDateRange)
)

// Resolver computes period bounds in a fixed location with a fixed first day of the week.
type Resolver struct {
	loc       *time.Location
	weekStart time.Weekday
}

// NewResolver returns a Resolver. A nil location means UTC.
func NewResolver(loc *time.Location, weekStart time.Weekday) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{loc: loc, weekStart: weekStart}
}

func (r *Resolver) Location() *time.Location { return r.loc }

func (r *Resolver) WeekStart() time.Weekday { return r.weekStart }

// Resolve returns the inclusive interval selected by token, or nil for "all". start and end are
// only read for the custom token. An empty token is treated as "all".
func (r *Resolver) Resolve(token models.FilterToken, start, end string, now time.Time) (*models.Interval, error) {
	now = now.In(r.loc)
	y, m, d := now.Date()

	switch token {
	case models.FilterAll, "":
		return nil, nil
	case models.FilterMonth:
		return r.span(y, m, 1, y, m+1, 0), nil
	case models.FilterYear:
		return r.span(y, time.January, 1, y, time.December, 31), nil
	case models.FilterWeek:
		offset := (int(now.Weekday()) - int(r.weekStart) + 7) % 7
		return r.span(y, m, d-offset, y, m, d-offset+6), nil
	case models.FilterCustom:
		return r.custom(start, end)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFilter, token)
	}
}

// Period resolves f and attaches its display label.
func (r *Resolver) Period(f models.PeriodFilter, now time.Time) (models.Period, error) {
	if f.Token == "" {
		f.Token = models.FilterAll
	}
	iv, err := r.Resolve(f.Token, f.Start, f.End, now)
	if err != nil {
		return models.Period{}, err
	}
	return models.Period{Filter: f, Label: Label(f.Token, f.Start, f.End), Interval: iv}, nil
}

func (r *Resolver) custom(start, end string) (*models.Interval, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" || end == "" {
		return nil, fmt.Errorf("%w: start and end dates are required", ErrInvalidDateRange)
	}
	from, err := time.ParseInLocation(DateLayout, start, r.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: start %q is not a YYYY-MM-DD date", ErrInvalidDateRange, start)
	}
	to, err := time.ParseInLocation(DateLayout, end, r.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: end %q is not a YYYY-MM-DD date", ErrInvalidDateRange, end)
	}
	if from.After(to) {
		return nil, fmt.Errorf("%w: start %s is after end %s", ErrInvalidDateRange, start, end)
	}
	return &models.Interval{Start: from, End: endOfDay(to)}, nil
}

// span covers whole days from the first date through the last. time.Date normalizes day and
// month overflow, so callers may pass d-offset or day 0 of the next month.
func (r *Resolver) span(y1 int, m1 time.Month, d1 int, y2 int, m2 time.Month, d2 int) *models.Interval {
	return &models.Interval{
		Start: time.Date(y1, m1, d1, 0, 0, 0, 0, r.loc),
		End:   endOfDay(time.Date(y2, m2, d2, 0, 0, 0, 0, r.loc)),
	}
}

// endOfDay is the last millisecond of t's calendar day, the precision of stored timestamps.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
