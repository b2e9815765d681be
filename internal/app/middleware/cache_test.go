package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCacheServesRepeatedGets(t *testing.T) {
	gin.SetMode(gin.TestMode)
	PurgeCache()

	hits := 0
	r := gin.New()
	r.GET("/data", Cache(CacheConfig{Expiration: time.Minute}), func(c *gin.Context) {
		hits++
		c.String(http.StatusOK, "hit "+strconv.Itoa(hits))
	})

	get := func(path string) string {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w.Body.String()
	}

	assert.Equal(t, "hit 1", get("/data"))
	assert.Equal(t, "hit 1", get("/data"))
	assert.Equal(t, 1, hits)

	// Different query parameters miss the cache.
	assert.Equal(t, "hit 2", get("/data?page=2"))
	assert.Equal(t, 2, hits)
}

func TestCacheSkipsWrites(t *testing.T) {
	gin.SetMode(gin.TestMode)
	PurgeCache()

	hits := 0
	r := gin.New()
	r.POST("/data", Cache(CacheConfig{Expiration: time.Minute}), func(c *gin.Context) {
		hits++
		c.String(http.StatusOK, "ok")
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/data", nil))
	}
	assert.Equal(t, 3, hits)
}

func TestCacheSkipsErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	PurgeCache()

	hits := 0
	r := gin.New()
	r.GET("/fail", Cache(CacheConfig{Expiration: time.Minute}), func(c *gin.Context) {
		hits++
		c.String(http.StatusInternalServerError, "boom")
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	}
	assert.Equal(t, 2, hits)
}

func TestPurgeCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	PurgeCache()

	hits := 0
	r := gin.New()
	r.GET("/data", Cache(CacheConfig{Expiration: time.Minute}), func(c *gin.Context) {
		hits++
		c.String(http.StatusOK, "ok")
	})

	get := func() {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/data", nil))
	}

	get()
	get()
	assert.Equal(t, 1, hits)

	PurgeCache()
	get()
	assert.Equal(t, 2, hits)
}
