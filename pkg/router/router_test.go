package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutesAndMiddlewareOrder(t *testing.T) {
	r := New()

	var trail []string
	mark := func(tag string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				trail = append(trail, tag)
				next.ServeHTTP(w, req)
			})
		}
	}

	r.Use(mark("global"))
	r.Post("graphql/", "graphql", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) }, mark("a"), mark("b"))
	r.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, []string{"global", "a", "b"}, trail)

	path, ok := r.Path("graphql")
	require.True(t, ok)
	assert.Equal(t, "/graphql", path)

	_, ok = r.Path("missing")
	assert.False(t, ok)

	assert.Equal(t, []RouteInfo{
		{Method: http.MethodPost, Path: "/graphql", Name: "graphql"},
		{Method: http.MethodGet, Path: "/health", Name: "health"},
	}, r.Routes())
}

func TestNotFoundHandler(t *testing.T) {
	r := New()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusGone) })

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusGone, rec.Code)
}
