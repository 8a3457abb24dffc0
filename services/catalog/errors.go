package catalog

import "errors"

var (
	// ErrPackageNotFound is returned for unknown packages and, on public lookups, for drafts.
	ErrPackageNotFound = errors.New("package not found")
	// ErrSlugTaken is returned when an explicit slug is already used by another package.
	ErrSlugTaken = errors.New("slug already in use")
	// ErrInvalidPackage wraps every rejected package form.
	ErrInvalidPackage = errors.New("invalid package")
)
