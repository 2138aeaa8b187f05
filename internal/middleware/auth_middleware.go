package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/fadilmartias/life-wheel/internal/usecase"
	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
)

const (
	localsViewer     = "viewer"
	localsAuthScheme = "auth_scheme"

	SchemeBearer = "bearer"
	SchemeCookie = "cookie"
)

// Claims identify the session user. Subject holds the user id.
type Claims struct {
	Login string `json:"login,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

func SignToken(secret []byte, userID, login, name string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Login: login,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func ParseToken(secret []byte, tok string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tok, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid || c.Subject == "" {
		return nil, errors.New("invalid token")
	}
	return c, nil
}

// Auth resolves the session from a bearer token or the session cookie and
// rejects the request with 401 when neither yields a user.
func Auth(secret []byte, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok, scheme := sessionToken(c, cookieName)
		if tok == "" {
			return unauthorized(c)
		}
		claims, err := ParseToken(secret, tok)
		if err != nil {
			return unauthorized(c)
		}

		name := claims.Name
		if name == "" {
			name = claims.Login
		}
		c.Locals(localsViewer, usecase.Viewer{UserID: claims.Subject, DisplayName: name})
		c.Locals(localsAuthScheme, scheme)
		return c.Next()
	}
}

// ViewerFrom returns the authenticated viewer; the zero Viewer when Auth did not run.
func ViewerFrom(c *fiber.Ctx) usecase.Viewer {
	v, _ := c.Locals(localsViewer).(usecase.Viewer)
	return v
}

func AuthSchemeFrom(c *fiber.Ctx) string {
	s, _ := c.Locals(localsAuthScheme).(string)
	return s
}

func sessionToken(c *fiber.Ctx, cookieName string) (string, string) {
	if h := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")), SchemeBearer
	}
	if v := c.Cookies(cookieName); v != "" {
		return v, SchemeCookie
	}
	return "", ""
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"ok":    false,
		"error": "You must be logged in",
	})
}
