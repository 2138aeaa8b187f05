package config

import (
	"errors"
	"log"
	"os"
	"sync"
)

const devJWTSecret = "life-wheel-dev-secret"

type AuthConfig struct {
	JWTSecret  string
	CookieName string
}

var (
	authConfig *AuthConfig
	authOnce   sync.Once
)

func LoadAuthConfig() *AuthConfig {
	authOnce.Do(func() {
		secret, err := ResolveJWTSecret(os.Getenv("AUTH_JWT_SECRET"), LoadAppConfig().IsProduction())
		if err != nil {
			log.Fatalf("Could not load auth config: %v", err)
		}
		authConfig = &AuthConfig{
			JWTSecret:  secret,
			CookieName: envOr("AUTH_COOKIE_NAME", "lw_session"),
		}
	})
	return authConfig
}

// ResolveJWTSecret returns the configured secret. Outside production an
// unset secret falls back to a fixed development value; in production it
// is an error.
func ResolveJWTSecret(raw string, production bool) (string, error) {
	if raw != "" {
		return raw, nil
	}
	if production {
		return "", errors.New("AUTH_JWT_SECRET must be set in production")
	}
	log.Printf("Warning: AUTH_JWT_SECRET not set, using development secret")
	return devJWTSecret, nil
}
