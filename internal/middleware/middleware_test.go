package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func echoSession(c *gin.Context) {
	c.String(http.StatusOK, SessionID(c))
}

func TestSession(t *testing.T) {
	r := gin.New()
	r.Use(Session())
	r.GET("/", echoSession)

	t.Run("issues new id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, w.Code)
		_, err := uuid.Parse(w.Body.String())
		require.NoError(t, err)
		assert.Equal(t, w.Body.String(), w.Header().Get(SessionHeader))
		assert.Contains(t, w.Header().Get("Set-Cookie"), SessionCookie+"="+w.Body.String())
	})

	t.Run("header wins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(SessionHeader, "from-header")
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "from-cookie"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "from-header", w.Body.String())
		assert.Empty(t, w.Header().Get("Set-Cookie"))
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "from-cookie"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "from-cookie", w.Body.String())
	})
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(0.001, 2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestRateLimit_Disabled(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(0, 0))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 20; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusNoContent, w.Code)
	}
}

func TestRequestLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(Session(), RequestLogging(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	for _, path := range []string{"/ok", "/bad"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Request handled", entries[0].Message)
	assert.Equal(t, "/ok", entries[0].ContextMap()["path"])
	assert.NotEmpty(t, entries[0].ContextMap()["session"])
	assert.Equal(t, "Request rejected", entries[1].Message)
	assert.EqualValues(t, http.StatusBadRequest, entries[1].ContextMap()["status"])
}
