package util

import (
	"errors"
	"runtime/debug"

	"github.com/fadilmartias/life-wheel/internal/apperror"
	"github.com/fadilmartias/life-wheel/internal/config"
	"github.com/gofiber/fiber/v2"
)

type ErrorResponseFormat struct {
	Code       int
	Message    string
	DevMessage string
}

type OrderedErrorResponse struct {
	OK         bool   `json:"ok"`
	Error      string `json:"error"`
	DevMessage string `json:"dev_message,omitempty"`
	Trace      string `json:"trace,omitempty"`
}

// SuccessResponse writes a 200 JSON body. Payloads carry their own ok flag.
func SuccessResponse(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// ErrorResponse writes {ok:false,error}. Outside production the cause is
// attached as dev_message, plus a stack trace for server errors.
func ErrorResponse(c *fiber.Ctx, params ErrorResponseFormat, errs ...error) error {
	code := params.Code
	if code == 0 {
		code = fiber.StatusInternalServerError
	}
	message := params.Message
	if message == "" {
		message = "Internal Server Error"
	}
	response := OrderedErrorResponse{
		OK:    false,
		Error: message,
	}
	if !config.LoadAppConfig().IsProduction() {
		if len(errs) > 0 && errs[0] != nil && errs[0].Error() != message {
			response.DevMessage = errs[0].Error()
		}
		if params.DevMessage != "" {
			response.DevMessage = params.DevMessage
		}
		if code >= fiber.StatusInternalServerError {
			response.Trace = string(debug.Stack())
		}
	}
	return c.Status(code).JSON(response)
}

// Error maps the application error taxonomy onto an HTTP error response.
func Error(c *fiber.Ctx, err error) error {
	return ErrorResponse(c, ErrorResponseFormat{
		Code:    StatusCodeFor(err),
		Message: PublicMessage(err),
	}, err)
}

func StatusCodeFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.Is(err, apperror.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, apperror.ErrNotFound):
		return fiber.StatusNotFound
	case apperror.IsValidation(err):
		return fiber.StatusBadRequest
	case errors.As(err, &fe):
		return fe.Code
	default:
		return fiber.StatusInternalServerError
	}
}

// PublicMessage is the text safe to show a client for err.
func PublicMessage(err error) string {
	var (
		ve *apperror.ValidationError
		fe *fiber.Error
	)
	switch {
	case errors.Is(err, apperror.ErrUnauthorized):
		return apperror.ErrUnauthorized.Error()
	case errors.Is(err, apperror.ErrNotFound):
		return apperror.ErrNotFound.Error()
	case errors.As(err, &ve):
		return ve.Error()
	case apperror.IsStorage(err):
		return err.Error()
	case errors.As(err, &fe):
		return fe.Message
	default:
		return "Internal Server Error"
	}
}
