package docstore

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrNotFound is returned when a keyed document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrAlreadyExists is returned by Create when the id is taken.
	ErrAlreadyExists = errors.New("document already exists")
	// ErrMissingIndex is returned when the backend needs an index that has not been provisioned.
	ErrMissingIndex = errors.New("missing index")
	// ErrQueryFailed covers every other backend or network failure of a read.
	ErrQueryFailed = errors.New("query failed")
	// ErrWatchClosed is returned by Watcher.Next after Close.
	ErrWatchClosed = errors.New("watch closed")
)

// IndexError reports a missing index together with the provisioning link when the backend
// included one in its message.
type IndexError struct {
	Collection string
	Link       string
	Cause      error
}

func (e *IndexError) Error() string {
	if e.Link != "" {
		return fmt.Sprintf("%s: missing index, create it at %s", e.Collection, e.Link)
	}
	return fmt.Sprintf("%s: missing index: %v", e.Collection, e.Cause)
}

func (e *IndexError) Is(target error) bool { return target == ErrMissingIndex }

func (e *IndexError) Unwrap() error { return e.Cause }

// QueryError wraps a transient query failure.
type QueryError struct {
	Collection string
	Cause      error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: query failed: %v", e.Collection, e.Cause)
}

func (e *QueryError) Is(target error) bool { return target == ErrQueryFailed }

func (e *QueryError) Unwrap() error { return e.Cause }

var linkPattern = regexp.MustCompile(`https?://[^\s"']+`)

// indexLink extracts the first URL from a backend error message.
func indexLink(msg string) string {
	return linkPattern.FindString(msg)
}

// IndexLink returns the provisioning link carried by a missing-index error, if any.
func IndexLink(err error) string {
	var ie *IndexError
	if errors.As(err, &ie) {
		return ie.Link
	}
	return ""
}
