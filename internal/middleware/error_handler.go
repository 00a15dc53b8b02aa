package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorHandler logs the errors handlers attach with c.Error. Client errors are
// logged at warn level and server errors at error level. Handlers write their own
// response; a 500 is written only when none was.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		status := c.Writer.Status()
		if !c.Writer.Written() {
			status = http.StatusInternalServerError
		}

		log := requestLogger(c)
		event := log.Error()
		if status < http.StatusInternalServerError {
			event = log.Warn()
		}
		event.
			Err(c.Errors.Last().Err).
			Strs("errors", c.Errors.Errors()).
			Int("status", status).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Request failed")

		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, internalError(c))
		}
	}
}
