package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"asokatrip/database/docstore"
	"asokatrip/services/auth"
	"asokatrip/services/booking"
	"asokatrip/services/catalog"
	"asokatrip/services/cms"
	"asokatrip/services/period"
	"asokatrip/services/report"
	"asokatrip/services/storage"
	"asokatrip/utils"
)

// Messages shown to the operator for store failures.
const (
	msgMissingIndex = "Index database yang dibutuhkan belum dibuat. Buka indexUrl untuk membuatnya, lalu muat ulang."
	msgLoadFailed   = "Gagal memuat data. Coba lagi."
)

// respondError maps a service error to its HTTP answer. action names the failed operation in logs.
func respondError(c *gin.Context, action string, err error) {
	logger := getLogger(c).With(zap.String("action", action))

	var bookingErr *booking.ValidationError
	var contentErr *cms.ValidationError

	switch {
	case errors.As(err, &bookingErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, utils.ErrorResponse{Error: bookingErr.Message, Details: bookingErr.Field})
	case errors.As(err, &contentErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, utils.ErrorResponse{Error: contentErr.Message})
	case errors.Is(err, period.ErrInvalidDateRange),
		errors.Is(err, catalog.ErrInvalidPackage),
		errors.Is(err, booking.ErrPackageNotFound),
		errors.Is(err, storage.ErrUnknownFolder),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrNothingToUpdate):
		c.AbortWithStatusJSON(http.StatusBadRequest, utils.ErrorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrUnauthorized):
		c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Error: err.Error()})
	case errors.Is(err, docstore.ErrNotFound),
		errors.Is(err, catalog.ErrPackageNotFound),
		errors.Is(err, cms.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, utils.ErrorResponse{Error: "Not found"})
	case errors.Is(err, catalog.ErrSlugTaken), errors.Is(err, docstore.ErrAlreadyExists):
		c.AbortWithStatusJSON(http.StatusConflict, utils.ErrorResponse{Error: err.Error()})
	case errors.Is(err, report.ErrSuperseded):
		c.AbortWithStatusJSON(http.StatusConflict, utils.ErrorResponse{Error: "superseded", Details: "A newer request for this view is in progress"})
	case errors.Is(err, docstore.ErrMissingIndex):
		link := docstore.IndexLink(err)
		logger.Error("Query needs a missing index", zap.String("indexUrl", link), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, utils.ErrorResponse{Error: msgMissingIndex, IndexURL: link})
	case errors.Is(err, context.Canceled):
		logger.Debug("Request cancelled", zap.Error(err))
		c.Abort()
	case errors.Is(err, docstore.ErrQueryFailed), errors.Is(err, context.DeadlineExceeded):
		logger.Error("Query failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadGateway, utils.ErrorResponse{Error: msgLoadFailed})
	default:
		logger.Error("Request failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "Internal Server Error"})
	}
}

// bindError answers a request body or query that failed to bind.
func bindError(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
}
