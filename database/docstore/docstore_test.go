package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const consoleLink = "https://console.firebase.google.com/v1/r/project/asoka/firestore/indexes?create_composite=Cghib29raW5ncw"

func TestWhereCopiesFilters(t *testing.T) {
	base := Query{OrderBy: "createdAt", Direction: Desc}.Where("status", Eq, "paid")
	a := base.Where("createdAt", Gte, 1)
	b := base.Where("createdAt", Lte, 2)

	require.Len(t, base.Filters, 1)
	require.Len(t, a.Filters, 2)
	require.Len(t, b.Filters, 2)
	assert.Equal(t, Gte, a.Filters[1].Op)
	assert.Equal(t, Lte, b.Filters[1].Op)
	assert.Equal(t, "createdAt", a.OrderBy)
}

func TestMongoFilterMergesRangeOnOneField(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)
	q := Query{}.Where("createdAt", Gte, start).Where("createdAt", Lte, end).Where("status", Eq, "active")

	assert.Equal(t, bson.M{
		"createdAt": bson.M{"$gte": start, "$lte": end},
		"status":    "active",
	}, mongoFilter(q.Filters))
}

func TestMongoFilterEmpty(t *testing.T) {
	assert.Equal(t, bson.M{}, mongoFilter(nil))
}

func TestFirestoreClassify(t *testing.T) {
	c := &firestoreCollection{name: "bookings"}

	err := c.classify(status.Error(codes.FailedPrecondition, "The query requires an index. You can create it here: "+consoleLink))
	assert.ErrorIs(t, err, ErrMissingIndex)
	assert.Equal(t, consoleLink, IndexLink(err))

	err = c.classify(status.Error(codes.Unavailable, "connection reset"))
	assert.ErrorIs(t, err, ErrQueryFailed)
	assert.NotErrorIs(t, err, ErrMissingIndex)
	assert.Empty(t, IndexLink(err))

	assert.NoError(t, c.classify(nil))
}

func TestMongoClassify(t *testing.T) {
	c := &mongoCollection{name: "bookings"}

	err := c.classify(mongo.CommandError{Code: mongoNoQueryExecutionPlan, Message: "No query solutions"})
	assert.ErrorIs(t, err, ErrMissingIndex)

	err = c.classify(errors.New("server selection timeout"))
	assert.ErrorIs(t, err, ErrQueryFailed)
}

func TestIndexLinkSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("find bookings: %w", &IndexError{Collection: "bookings", Link: consoleLink})

	assert.ErrorIs(t, err, ErrMissingIndex)
	assert.Equal(t, consoleLink, IndexLink(err))
	assert.Contains(t, err.Error(), consoleLink)
}

type item struct {
	ID   string `json:"-"`
	Name string `json:"name"`
}

func (i *item) SetID(id string) { i.ID = id }

type sliceCursor struct {
	ids  []string
	docs []string
	pos  int
	err  error
}

func (s *sliceCursor) Next(ctx context.Context) bool {
	s.pos++
	return s.pos <= len(s.docs)
}

func (s *sliceCursor) ID() string { return s.ids[s.pos-1] }

func (s *sliceCursor) Decode(dst interface{}) error {
	return json.Unmarshal([]byte(s.docs[s.pos-1]), dst)
}

func (s *sliceCursor) Err() error                      { return s.err }
func (s *sliceCursor) Close(ctx context.Context) error { return nil }

func TestAllAssignsIDs(t *testing.T) {
	cur := &sliceCursor{ids: []string{"a", "b"}, docs: []string{`{"name":"Bromo"}`, `{"name":"Ijen"}`}}

	got, err := All[item](context.Background(), cur)

	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "a", Name: "Bromo"}, {ID: "b", Name: "Ijen"}}, got)
}

func TestAllEmptyIsNotNil(t *testing.T) {
	got, err := All[item](context.Background(), &sliceCursor{})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAllReturnsCursorError(t *testing.T) {
	cur := &sliceCursor{err: &QueryError{Collection: "bookings", Cause: errors.New("reset")}}

	_, err := All[item](context.Background(), cur)

	assert.ErrorIs(t, err, ErrQueryFailed)
}

func TestMongoWatcherSignalsOnceEstablished(t *testing.T) {
	w := &mongoWatcher{}
	assert.NoError(t, w.Next(context.Background()))
	assert.True(t, w.primed)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, (&mongoWatcher{}).Next(ctx), context.Canceled)
}

func TestFirestoreCountClassifiesFailure(t *testing.T) {
	t.Setenv("FIRESTORE_EMULATOR_HOST", "127.0.0.1:1")
	client, err := firestore.NewClient(context.Background(), "asoka-test")
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	coll := NewFirestoreStore(client).Collection("packages")
	n, err := coll.Count(ctx, Query{}.Where("status", Eq, "active"))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, ErrQueryFailed)
}

func TestCountValue(t *testing.T) {
	n, err := countValue(int64(7))
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	_, err = countValue("7")
	assert.Error(t, err)
}
