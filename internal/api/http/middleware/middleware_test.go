package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftboard/shiftboard-backend/internal/logging"
)

func serve(r *gin.Engine, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware(logging.Discard()))

	var fromCtx, fromGin string
	r.GET("/ping", func(c *gin.Context) {
		fromCtx = GetRequestID(c.Request.Context())
		fromGin = c.GetString("request_id")
		c.Status(http.StatusNoContent)
	})

	t.Run("generates a uuid", func(t *testing.T) {
		w := serve(r, nil)
		rid := w.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(rid)
		require.NoError(t, err)
		assert.Equal(t, rid, fromCtx)
		assert.Equal(t, rid, fromGin)
	})

	t.Run("keeps the caller's id", func(t *testing.T) {
		w := serve(r, map[string]string{RequestIDHeader: "abc-123"})
		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc-123", fromCtx)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitMiddleware(0.001, 2))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, nil).Code)

	w := serve(r, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestTimeoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TimeoutMiddleware(50 * time.Millisecond))

	var deadline time.Time
	var ok bool
	r.GET("/ping", func(c *gin.Context) {
		deadline, ok = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})

	serve(r, nil)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), deadline, time.Second)
}
