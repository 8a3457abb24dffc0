package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asokatrip/database/docstore"
	"asokatrip/services/booking"
	"asokatrip/services/catalog"
	"asokatrip/services/cms"
	"asokatrip/services/period"
	"asokatrip/services/report"
	"asokatrip/utils"
)

func TestRespondErrorStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid range", fmt.Errorf("resolve: %w", period.ErrInvalidDateRange), http.StatusBadRequest},
		{"booking validation", booking.NewValidationError("pax", "Jumlah pax minimal 1."), http.StatusBadRequest},
		{"content validation", &cms.ValidationError{Message: "Pertanyaan wajib diisi."}, http.StatusBadRequest},
		{"invalid package", catalog.ErrInvalidPackage, http.StatusBadRequest},
		{"booking for unknown package", fmt.Errorf("%w: p-9", booking.ErrPackageNotFound), http.StatusBadRequest},
		{"not found", docstore.ErrNotFound, http.StatusNotFound},
		{"package not found", catalog.ErrPackageNotFound, http.StatusNotFound},
		{"content not found", cms.ErrNotFound, http.StatusNotFound},
		{"slug taken", catalog.ErrSlugTaken, http.StatusConflict},
		{"superseded", report.ErrSuperseded, http.StatusConflict},
		{"missing index", &docstore.IndexError{Collection: "bookings", Link: "https://console.firebase.google.com/idx"}, http.StatusServiceUnavailable},
		{"query failed", &docstore.QueryError{Collection: "bookings", Cause: errors.New("unavailable")}, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, "test", tc.err)

			assert.Equal(t, tc.code, w.Code)
			assert.True(t, c.IsAborted())
		})
	}
}

func TestRespondErrorMissingIndexCarriesLink(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	link := "https://console.firebase.google.com/project/asoka/firestore/indexes?create_composite=abc"
	respondError(c, "load", fmt.Errorf("find bookings: %w", &docstore.IndexError{Collection: "bookings", Link: link}))

	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, link, body.IndexURL)
	assert.Equal(t, msgMissingIndex, body.Error)
}

func TestRespondErrorValidationMessage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	respondError(c, "create booking", booking.NewValidationError("required", "Nama, Telepon, Paket/Custom, dan Tanggal Trip wajib diisi."))

	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Nama, Telepon, Paket/Custom, dan Tanggal Trip wajib diisi.", body.Error)
	assert.Equal(t, "required", body.Details)
}

func TestRespondErrorCancelledWritesNothing(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondError(c, "load", context.Canceled)

	assert.True(t, c.IsAborted())
	assert.Empty(t, w.Body.String())
}
