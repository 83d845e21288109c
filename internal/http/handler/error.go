package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"atlas/internal/http/middleware"
)

// errorPayload is the body of every error response.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusErrors are the safe envelopes ErrorHandler uses for framework errors.
var statusErrors = map[int]errorEnvelope{
	fiber.StatusBadRequest:            {"BAD_REQUEST", "bad request"},
	fiber.StatusNotFound:              {"NOT_FOUND", "resource not found"},
	fiber.StatusMethodNotAllowed:      {"METHOD_NOT_ALLOWED", "method not allowed"},
	fiber.StatusRequestEntityTooLarge: {"PAYLOAD_TOO_LARGE", "request body too large"},
	fiber.StatusUnsupportedMediaType:  {"UNSUPPORTED_MEDIA_TYPE", "unsupported content type"},
	fiber.StatusRequestTimeout:        {"REQUEST_TIMEOUT", "request timed out"},
}

var internalEnvelope = errorEnvelope{"INTERNAL_ERROR", "internal server error"}

func requestIDFromCtx(c *fiber.Ctx) string {
	if s, ok := c.Locals(middleware.RequestIDLocalKey).(string); ok {
		return s
	}
	return ""
}

// writeError writes status with a machine-readable code and a message that is
// safe to show clients.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: requestIDFromCtx(c),
		Error:     errorEnvelope{Code: code, Message: message},
	})
}

// internalError logs err with the request and answers 500 without leaking it.
func internalError(c *fiber.Ctx, err error) error {
	log := loggerFor(c)
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
	return writeError(c, fiber.StatusInternalServerError, internalEnvelope.Code, internalEnvelope.Message)
}

// ErrorHandler converts errors returned by handlers and the router into the
// errorPayload shape. Non-fiber errors are treated as internal.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if !errors.As(err, &fe) {
			return internalError(c, err)
		}
		env, ok := statusErrors[fe.Code]
		if !ok {
			env = internalEnvelope
		}
		return writeError(c, fe.Code, env.Code, env.Message)
	}
}
