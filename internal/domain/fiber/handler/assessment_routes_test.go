package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fadilmartias/life-wheel/internal/database"
	"github.com/fadilmartias/life-wheel/internal/logger"
	"github.com/fadilmartias/life-wheel/internal/middleware"
	"github.com/fadilmartias/life-wheel/internal/repository"
	"github.com/fadilmartias/life-wheel/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newServerApp wires the routes in the same order as cmd/server.
func newServerApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "routes.db"))
	require.NoError(t, err)
	uc := usecase.NewAssessmentUsecase(repository.NewAssessmentRepository(db), fixedGenerator{}, logger.NewNop())

	app := fiber.New()
	NewAssessmentHandler(uc, "").RegisterRoutes(app,
		middleware.Auth(secret, "lw_session"),
		middleware.CSRF(false),
		middleware.RateLimiter(10, time.Minute),
	)
	return app
}

func submitReset(t *testing.T, app *fiber.App, prepare func(*http.Request)) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", "/assessment/submit", strings.NewReader(`{"step":"reset"}`))
	req.Header.Set("Content-Type", "application/json")
	prepare(req)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestServerRoutesAuthBeforeCSRF(t *testing.T) {
	app := newServerApp(t)

	t.Run("no session", func(t *testing.T) {
		resp := submitReset(t, app, func(*http.Request) {})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("stale cookie", func(t *testing.T) {
		resp := submitReset(t, app, func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "lw_session", Value: "not-a-jwt"})
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestServerRoutesCookieSessionNeedsCSRF(t *testing.T) {
	app := newServerApp(t)
	tok, err := middleware.SignToken(secret, "7", "bob", "Bob", time.Hour)
	require.NoError(t, err)
	session := &http.Cookie{Name: "lw_session", Value: tok}

	resp := submitReset(t, app, func(r *http.Request) { r.AddCookie(session) })
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req := httptest.NewRequest("GET", "/assessment/config", nil)
	req.AddCookie(session)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var cfg map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cfg))
	csrfToken, _ := cfg["csrf_token"].(string)
	require.NotEmpty(t, csrfToken)

	var csrfCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "lw_csrf" {
			csrfCookie = c
		}
	}
	require.NotNil(t, csrfCookie)

	resp = submitReset(t, app, func(r *http.Request) {
		r.AddCookie(session)
		r.AddCookie(&http.Cookie{Name: "lw_csrf", Value: csrfCookie.Value})
		r.Header.Set(middleware.CSRFHeader, csrfToken)
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestServerRoutesBearerSkipsCSRF(t *testing.T) {
	app := newServerApp(t)
	tok, err := middleware.SignToken(secret, "8", "carol", "", time.Hour)
	require.NoError(t, err)

	resp := submitReset(t, app, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tok)
	})

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
