package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorBody is the error envelope returned to clients.
type ErrorBody struct {
	Error string `json:"error"`
}

// SuccessResponse writes data as-is with a 200 status.
func SuccessResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

// ErrorResponse writes an error envelope with the given status.
func ErrorResponse(c echo.Context, status int, message string) error {
	return c.JSON(status, ErrorBody{Error: message})
}

// BadRequestResponse writes a 400 error envelope.
func BadRequestResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusBadRequest, message)
}

// InternalErrorResponse writes a 500 error envelope.
func InternalErrorResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusInternalServerError, message)
}
