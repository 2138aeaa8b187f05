package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/fadilmartias/life-wheel/internal/apperror"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unauthorized", apperror.ErrUnauthorized, fiber.StatusUnauthorized},
		{"wrapped not found", fmt.Errorf("x: %w", apperror.ErrNotFound), fiber.StatusNotFound},
		{"validation", apperror.NewValidationError("rating", "bad"), fiber.StatusBadRequest},
		{"storage", apperror.NewStorageError("upsert", errors.New("down")), fiber.StatusInternalServerError},
		{"fiber error", fiber.NewError(fiber.StatusRequestEntityTooLarge, "too big"), fiber.StatusRequestEntityTooLarge},
		{"unknown", errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCodeFor(tt.err))
		})
	}
}

func TestPublicMessageHidesUnknownErrors(t *testing.T) {
	assert.Equal(t, "Internal Server Error", PublicMessage(errors.New("secret dsn")))
	assert.Equal(t, "rating: bad", PublicMessage(apperror.NewValidationError("rating", "bad")))
	assert.Contains(t, PublicMessage(apperror.NewStorageError("reset", errors.New("locked"))), "database error")
}

func TestErrorWritesOkFalseBody(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return Error(c, apperror.NewValidationError("", "Invalid step: dance"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "Invalid step: dance", body["error"])
}
