package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asokatrip/database/docstore"
	"asokatrip/models"
)

func TestBuildBookingQueryAll(t *testing.T) {
	q := BuildBookingQuery(nil, 0)
	assert.Empty(t, q.Filters)
	assert.Equal(t, "createdAt", q.OrderBy)
	assert.Equal(t, docstore.Desc, q.Direction)
	assert.Zero(t, q.Limit)
}

func TestBuildBookingQueryInterval(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 23, 59, 59, 999_000_000, time.UTC)
	q := BuildBookingQuery(&models.Interval{Start: start, End: end}, 5)

	require.Len(t, q.Filters, 2)
	assert.Equal(t, docstore.Filter{Field: "createdAt", Op: docstore.Gte, Value: start}, q.Filters[0])
	assert.Equal(t, docstore.Filter{Field: "createdAt", Op: docstore.Lte, Value: end}, q.Filters[1])
	assert.Equal(t, "createdAt", q.OrderBy)
	assert.Equal(t, docstore.Desc, q.Direction)
	assert.Equal(t, 5, q.Limit)
}
