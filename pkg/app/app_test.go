package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/crm/pkg/reqid"
	"github.com/shashiranjanraj/crm/pkg/router"
)

func testApp() *Application {
	return New().Routes(func(r *router.Router) {
		r.Get("/ping", "ping", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	})
}

func TestHandlerStack(t *testing.T) {
	h := testApp().Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(reqid.Header))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not found")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "crm_http_requests_total")
}

func TestRouteTable(t *testing.T) {
	assert.Equal(t, []router.RouteInfo{
		{Method: http.MethodGet, Path: "/metrics", Name: "metrics"},
		{Method: http.MethodGet, Path: "/ping", Name: "ping"},
	}, testApp().RouteTable())
}
