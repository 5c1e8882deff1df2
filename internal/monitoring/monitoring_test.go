package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestToggle(t *testing.T) {
	assert.Equal(t, "follow", Toggle(true, "follow", "unfollow"))
	assert.Equal(t, "unfollow", Toggle(false, "follow", "unfollow"))
}

func TestMiddlewareLabelsByRoute(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/api/auth/:id", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/api/missing/:id", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "nope")
	})

	before := testutil.CollectAndCount(RequestDuration)
	for _, path := range []string{"/api/auth/1", "/api/auth/2", "/api/missing/3"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	// one series per route and status, not per raw path
	assert.Equal(t, before+2, testutil.CollectAndCount(RequestDuration))
}
