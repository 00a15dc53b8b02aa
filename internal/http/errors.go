package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/catalog-service/internal/circuitbreaker"
	"github.com/guttosm/catalog-service/internal/i18n"
	"github.com/guttosm/catalog-service/internal/repository"
	"github.com/guttosm/catalog-service/internal/service"
)

// statusFor maps a service or backend error to an HTTP status and message key.
// Cache transport failures and unknown backend errors are 500s.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, i18n.ErrKeyNotFound
	case errors.Is(err, service.ErrConflict), errors.Is(err, repository.ErrDuplicateKey):
		return http.StatusConflict, i18n.ErrKeyConflict
	case errors.Is(err, service.ErrInvalidReference):
		return http.StatusUnprocessableEntity, i18n.ErrKeyInvalidReference
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, i18n.ErrKeyInvalidRequest
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return http.StatusServiceUnavailable, i18n.ErrKeyUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, i18n.ErrKeyTimeout
	default:
		return http.StatusInternalServerError, i18n.ErrKeyInternalError
	}
}

// writeServiceError is the single place where service errors become responses.
func writeServiceError(b *ResponseBuilder, err error) {
	status, key := statusFor(err)
	b.Error(status, key, err)
}

var errInvalidID = errors.New("id must be a positive integer")

// parseID reads the :id path parameter, writing a 400 when it is not a positive integer.
func parseID(c *gin.Context, b *ResponseBuilder) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		b.Error(http.StatusBadRequest, i18n.ErrKeyInvalidID, errInvalidID)
		return 0, false
	}
	return id, true
}
