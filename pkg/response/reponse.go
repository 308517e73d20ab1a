package response

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "agriconnect/pkg/errors"
)

type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorInfo  `json:"error,omitempty"`
	Notice    *Notice     `json:"notice,omitempty"`
	Redirect  string      `json:"redirect,omitempty"`
	Timestamp string      `json:"timestamp"`
}

type ErrorInfo struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
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

// View writes a page snapshot. When err is set the snapshot is still sent (the
// page keeps its prior state) but the status and error block mirror the failure.
func View(c echo.Context, data interface{}, notice *Notice, err error) error {
	if err == nil {
		return c.JSON(http.StatusOK, Response{
			Success:   true,
			Data:      data,
			Notice:    notice,
			Timestamp: now(),
		})
	}

	status, info := describe(err)
	return c.JSON(status, Response{
		Success:   false,
		Data:      data,
		Error:     info,
		Notice:    notice,
		Timestamp: now(),
	})
}

// Redirect tells the browser which page to show next.
func Redirect(c echo.Context, to string, data interface{}, notice *Notice) error {
	return c.JSON(http.StatusOK, Response{
		Success:   true,
		Data:      data,
		Notice:    notice,
		Redirect:  to,
		Timestamp: now(),
	})
}

func Error(c echo.Context, err error) error {
	status, info := describe(err)
	return c.JSON(status, Response{
		Success:   false,
		Timestamp: now(),
		Error:     info,
	})
}

// ErrorWithNotice is Error plus a toast, used when the page has nothing to
// re-render but the user must still be told.
func ErrorWithNotice(c echo.Context, err error, notice *Notice) error {
	status, info := describe(err)
	return c.JSON(status, Response{
		Success:   false,
		Timestamp: now(),
		Error:     info,
		Notice:    notice,
	})
}

// Unauthenticated is the reply for pages that need a logged-in session.
// loginPath is where the browser is sent to sign in.
func Unauthenticated(c echo.Context, loginPath string) error {
	return c.JSON(http.StatusUnauthorized, Response{
		Success:  false,
		Redirect: loginPath,
		Error: &ErrorInfo{
			Code:    apperrors.CodeUnauthorized,
			Message: "Authentication required",
		},
		Timestamp: now(),
	})
}

func describe(err error) (int, *ErrorInfo) {
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, &ErrorInfo{
			Code:    apperrors.CodeValidation,
			Message: validationMessage(validationErr),
		}
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message := appErr.Message
		if message == "" {
			message = http.StatusText(appErr.Status)
		}
		return appErr.Status, &ErrorInfo{
			Code:    appErr.Code,
			Message: message,
		}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, &ErrorInfo{
			Code:    apperrors.CodeBadRequest,
			Message: http.StatusText(httpErr.Code),
		}
	}

	return http.StatusInternalServerError, &ErrorInfo{
		Code:    apperrors.CodeInternal,
		Message: "An unexpected error occurred",
	}
}

func validationMessage(validationErr validator.ValidationErrors) string {
	for _, err := range validationErr {
		field := lowerFirst(err.Field())
		param := err.Param()

		switch err.Tag() {
		case "required":
			return field + " is required"
		case "min":
			return field + " must be at least " + param
		case "max":
			return field + " must be at most " + param
		case "oneof":
			return field + " must be one of: " + param
		case "email":
			return field + " must be a valid email address"
		case "region":
			return field + " must be a known region"
		case "culture":
			return field + " must be a known culture"
		case "seller_or_buyer":
			return field + " must be buyer or seller"
		default:
			return field + " is invalid"
		}
	}
	return "Invalid input data"
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
