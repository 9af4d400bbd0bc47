package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"blog-api/api/trace"
)

func newEngine(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestTrace())
	r.POST("/echo", handler)
	return r
}

func TestRequestTraceGeneratesRequestID(t *testing.T) {
	var seen string
	r := newEngine(func(c *gin.Context) {
		seen = trace.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/echo", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get(headerRequestID))
}

func TestRequestTraceKeepsIncomingRequestID(t *testing.T) {
	r := newEngine(func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodPost, "/echo", nil)
	req.Header.Set(headerRequestID, "incoming-id")
	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, req)

	assert.Equal(t, "incoming-id", recorder.Header().Get(headerRequestID))
}

func TestRequestTraceRestoresBody(t *testing.T) {
	var body string
	r := newEngine(func(c *gin.Context) {
		b, _ := io.ReadAll(c.Request.Body)
		body = string(b)
		c.Status(http.StatusOK)
	})

	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"title":"t"}`)))

	assert.Equal(t, `{"title":"t"}`, body)
}

func TestRequestTraceRestoresBodyLongerThanSnippet(t *testing.T) {
	var body string
	r := newEngine(func(c *gin.Context) {
		b, _ := io.ReadAll(c.Request.Body)
		body = string(b)
		c.Status(http.StatusOK)
	})
	payload := `{"content":"` + strings.Repeat("x", 4*maxBodyLog) + `"}`

	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(payload)))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, payload, body)
}
