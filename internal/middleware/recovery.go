package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/catalog-service/internal/domain/dto"
	"github.com/guttosm/catalog-service/internal/i18n"
)

// Recovery turns a panic in a later handler into a logged 500. A panic with
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			requestLogger(c).Error().
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("Recovered from panic")

			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, internalError(c))
		}()
		c.Next()
	}
}

// internalError is the 500 body shared by Recovery and ErrorHandler.
func internalError(c *gin.Context) dto.ErrorResponse {
	message := i18n.GetTranslator().Translate(i18n.ErrKeyInternalError, i18n.GetLocale(c))
	return dto.NewError(dto.ErrCodeInternal, message).WithRequestID(GetRequestID(c))
}
