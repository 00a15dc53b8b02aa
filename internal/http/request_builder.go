package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/catalog-service/internal/domain/dto"
	"github.com/guttosm/catalog-service/internal/i18n"
	"github.com/guttosm/catalog-service/internal/middleware"
)

// envelopes recycles response envelopes. gin encodes synchronously, so an
// envelope can be released as soon as the write returns.
type envelopes[T any] struct{ pool sync.Pool }

func (e *envelopes[T]) acquire() *T {
	if v, ok := e.pool.Get().(*T); ok {
		return v
	}
	return new(T)
}

func (e *envelopes[T]) release(v *T) {
	var zero T
	*v = zero
	e.pool.Put(v)
}

var (
	successEnvelopes envelopes[dto.SuccessResponse]
	errorEnvelopes   envelopes[dto.ErrorResponse]
)

// Validator is implemented by request DTOs that can validate themselves.
type Validator interface {
	Validate() error
}

// BuildRequestAndValidate decodes the JSON body into a new T and runs its
// Validate method when T implements Validator.
func BuildRequestAndValidate[T any](c *gin.Context) (*T, error) {
	req := new(T)
	if err := c.ShouldBindJSON(req); err != nil {
		return nil, err
	}
	if v, ok := any(req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// ResponseBuilder writes the success and error envelopes shared by every handler.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a new response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success writes data inside a SuccessResponse with the given status.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	env := successEnvelopes.acquire()
	defer successEnvelopes.release(env)

	env.Data = data
	env.RequestID = middleware.GetRequestID(b.c)
	env.Timestamp = time.Now().UTC()
	b.c.JSON(statusCode, env)
}

// SuccessOK is Success with 200.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// SuccessCreated is Success with 201.
func (b *ResponseBuilder) SuccessCreated(data interface{}) {
	b.Success(http.StatusCreated, data)
}

// Error aborts with an ErrorResponse whose message is messageKey translated to
// the request locale. Client errors carry the cause under details.reason.
// err is recorded on the context so ErrorHandler logs it.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	var details map[string]string
	if err != nil && statusCode < http.StatusInternalServerError {
		details = map[string]string{"reason": err.Error()}
	}
	message := i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(b.c))
	b.abort(statusCode, message, details, err)
}

// ErrorWithMessage aborts with an untranslated message and no details.
func (b *ResponseBuilder) ErrorWithMessage(statusCode int, message string, err error) {
	b.abort(statusCode, message, nil, err)
}

func (b *ResponseBuilder) abort(statusCode int, message string, details map[string]string, err error) {
	if err != nil {
		_ = b.c.Error(err)
	}

	env := errorEnvelopes.acquire()
	defer errorEnvelopes.release(env)

	env.Error = dto.ErrCodeFromStatus(statusCode)
	env.Message = message
	env.Details = details
	env.RequestID = middleware.GetRequestID(b.c)
	env.Timestamp = time.Now().UTC()
	b.c.AbortWithStatusJSON(statusCode, env)
}
