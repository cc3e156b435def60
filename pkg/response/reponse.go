package response

import (
	"errors"
	"net/http"
	"time"

	apperrors "luxuryline/pkg/errors"
	"luxuryline/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Response struct {
	Success      bool        `json:"success"`
	Data         interface{} `json:"data,omitempty"`
	Notification interface{} `json:"notification,omitempty"`
	Error        *ErrorInfo  `json:"error,omitempty"`
	Timestamp    string      `json:"timestamp"`
}

type ErrorInfo struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func Success(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{
		Success:   true,
		Data:      data,
		Timestamp: now(),
	})
}

func Created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Response{
		Success:   true,
		Data:      data,
		Timestamp: now(),
	})
}

func Accepted(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusAccepted, Response{
		Success:   true,
		Data:      data,
		Timestamp: now(),
	})
}

// WithNotification is Success plus the notification a mutation produced.
// A nil notification is omitted.
func WithNotification(c echo.Context, status int, data interface{}, notification interface{}) error {
	return c.JSON(status, Response{
		Success:      true,
		Data:         data,
		Notification: notification,
		Timestamp:    now(),
	})
}

func Error(c echo.Context, err error) error {
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return handleValidationError(c, validationErr)
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return renderAppError(c, appErr)
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return c.JSON(httpErr.Code, Response{
			Success:   false,
			Timestamp: now(),
			Error: &ErrorInfo{
				Code:    "BAD_REQUEST",
				Message: http.StatusText(httpErr.Code),
			},
		})
	}

	logger.Error("Unhandled error on %s %s: %v", c.Request().Method, c.Path(), err)
	return renderAppError(c, apperrors.Internal("An unexpected error occurred", err))
}

func renderAppError(c echo.Context, appErr *apperrors.AppError) error {
	return c.JSON(appErr.Status, Response{
		Success:   false,
		Timestamp: now(),
		Error: &ErrorInfo{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		},
	})
}

// ValidationMessage renders the first failed rule the way clients display it.
func ValidationMessage(validationErr validator.ValidationErrors) string {
	for _, err := range validationErr {
		field := err.Field()
		switch err.Tag() {
		case "required":
			return field + " is required"
		case "min":
			return field + " must be at least " + err.Param()
		case "max":
			return field + " must be at most " + err.Param()
		case "gte":
			return field + " must be greater than or equal to " + err.Param()
		case "oneof":
			return field + " must be one of: " + err.Param()
		default:
			return field + " is invalid"
		}
	}
	return "Invalid input data"
}

func handleValidationError(c echo.Context, validationErr validator.ValidationErrors) error {
	fields := make([]string, 0, len(validationErr))
	for _, err := range validationErr {
		fields = append(fields, err.Field())
	}

	return c.JSON(http.StatusBadRequest, Response{
		Success:   false,
		Timestamp: now(),
		Error: &ErrorInfo{
			Code:    "VALIDATION_ERROR",
			Message: ValidationMessage(validationErr),
			Details: map[string]interface{}{"fields": fields},
		},
	})
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
