package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		handler        gin.HandlerFunc
		acceptLanguage string
		expectedStatus int
		expectedBody   []string
		expectLog      bool
	}{
		{
			name:           "string panic becomes 500",
			handler:        func(c *gin.Context) { panic("boom") },
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   []string{`"error":"internal_error"`, `"request_id":"panic-1"`},
			expectLog:      true,
		},
		{
			name:           "error panic is localized",
			handler:        func(c *gin.Context) { panic(errors.New("nil map")) },
			acceptLanguage: "pt-BR",
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   []string{"Ocorreu um erro inesperado"},
			expectLog:      true,
		},
		{
			name: "partial response is kept",
			handler: func(c *gin.Context) {
				c.String(http.StatusAccepted, "started")
				panic("late")
			},
			expectedStatus: http.StatusAccepted,
			expectedBody:   []string{"started"},
			expectLog:      true,
		},
		{
			name:           "passes through when no panic",
			handler:        func(c *gin.Context) { c.String(http.StatusOK, "ok") },
			expectedStatus: http.StatusOK,
			expectedBody:   []string{"ok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLogs(t)
			router := gin.New()
			router.Use(RequestID(), Recovery())
			router.GET("/test", tt.handler)

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set(RequestIDHeader, "panic-1")
			if tt.acceptLanguage != "" {
				req.Header.Set("Accept-Language", tt.acceptLanguage)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			for _, s := range tt.expectedBody {
				assert.Contains(t, w.Body.String(), s)
			}
			if tt.expectLog {
				assert.Contains(t, logs.String(), "Recovered from panic")
				assert.Contains(t, logs.String(), `"request_id":"panic-1"`)
				assert.Contains(t, logs.String(), `"stack"`)
			} else {
				assert.NotContains(t, logs.String(), "Recovered from panic")
			}
		})
	}
}

func TestRecovery_ReraisesAbortHandler(t *testing.T) {
	router := gin.New()
	router.Use(Recovery())
	router.GET("/abort", func(c *gin.Context) { panic(http.ErrAbortHandler) })

	assert.PanicsWithError(t, http.ErrAbortHandler.Error(), func() {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/abort", nil))
	})
}
