package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func newAuthApp() *fiber.App {
	app := fiber.New()
	app.Use(Auth(testSecret, "lw_session"))
	app.Get("/me", func(c *fiber.Ctx) error {
		v := ViewerFrom(c)
		return c.JSON(fiber.Map{"user_id": v.UserID, "name": v.DisplayName, "scheme": AuthSchemeFrom(c)})
	})
	return app
}

func doGet(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestSignAndParseToken(t *testing.T) {
	tok, err := SignToken(testSecret, "42", "alice", "Alice A", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "alice", claims.Login)
	assert.Equal(t, "Alice A", claims.Name)

	_, err = ParseToken([]byte("other"), tok)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpiredAndAnonymous(t *testing.T) {
	expired, err := SignToken(testSecret, "42", "", "", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(testSecret, expired)
	assert.Error(t, err)

	anonymous, err := SignToken(testSecret, "", "", "", time.Hour)
	require.NoError(t, err)
	_, err = ParseToken(testSecret, anonymous)
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	app := newAuthApp()

	t.Run("missing token", func(t *testing.T) {
		code, body := doGet(t, app, httptest.NewRequest("GET", "/me", nil))
		assert.Equal(t, fiber.StatusUnauthorized, code)
		assert.Equal(t, false, body["ok"])
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		code, _ := doGet(t, app, req)
		assert.Equal(t, fiber.StatusUnauthorized, code)
	})

	t.Run("bearer token", func(t *testing.T) {
		tok, err := SignToken(testSecret, "42", "alice", "Alice A", time.Hour)
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)

		code, body := doGet(t, app, req)

		assert.Equal(t, fiber.StatusOK, code)
		assert.Equal(t, "42", body["user_id"])
		assert.Equal(t, "Alice A", body["name"])
		assert.Equal(t, SchemeBearer, body["scheme"])
	})

	t.Run("cookie falls back to login for name", func(t *testing.T) {
		tok, err := SignToken(testSecret, "7", "bob", "", time.Hour)
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/me", nil)
		req.AddCookie(&http.Cookie{Name: "lw_session", Value: tok})

		code, body := doGet(t, app, req)

		assert.Equal(t, fiber.StatusOK, code)
		assert.Equal(t, "7", body["user_id"])
		assert.Equal(t, "bob", body["name"])
		assert.Equal(t, SchemeCookie, body["scheme"])
	})
}

func TestRateLimiterRejectsBurst(t *testing.T) {
	app := fiber.New()
	app.Use(RateLimiter(2, time.Minute))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
	code, body := doGet(t, app, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, fiber.StatusTooManyRequests, code)
	assert.Equal(t, "Too many requests", body["error"])
}
