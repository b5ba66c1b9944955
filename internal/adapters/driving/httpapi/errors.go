package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rustyrag/rustyrag/internal/core/domain"
)

// errorJSON is the envelope every failure returns.
type errorJSON struct {
	Detail string `json:"detail"`
}

// writeError converts a service error into the error envelope with the
// status its sentinel maps to.
func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), errorJSON{Detail: detailFor(err)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrBatchTooLarge),
		errors.Is(err, domain.ErrInvalidDraft),
		errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// detailFor picks the client-facing message. Two messages are pinned to
// the exact strings existing clients match on; everything else carries
// the wrapped cause chain.
func detailFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "Record not found"
	case errors.Is(err, domain.ErrBatchTooLarge):
		return "Batch size cannot exceed 100 records"
	default:
		return err.Error()
	}
}

// bindError normalizes JSON decode failures so malformed bodies map to
// 400 rather than an unclassified 500.
func bindError(err error) error {
	if errors.Is(err, domain.ErrInvalidDraft) || errors.Is(err, domain.ErrInvalidInput) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
}
