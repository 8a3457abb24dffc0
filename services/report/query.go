package report

import (
	"asokatrip/database/docstore"
	"asokatrip/models"
)

// CreatedAtField is the booking timestamp used for both the period filter and the ordering.
const CreatedAtField = "createdAt"

// BuildBookingQuery filters bookings to iv (nil means unbounded) and orders them newest first.
// A positive limit caps the result size.
func BuildBookingQuery(iv *models.Interval, limit int) docstore.Query {
	q := docstore.Query{
		OrderBy:   CreatedAtField,
		Direction: docstore.Desc,
		Limit:     limit,
	}
	if iv != nil {
		q = q.Where(CreatedAtField, docstore.Gte, iv.Start).
			Where(CreatedAtField, docstore.Lte, iv.End)
	}
	return q
}
