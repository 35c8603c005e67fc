package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrEmptyBaseURL — не задан адрес платформы.
	ErrEmptyBaseURL = errors.New("empty platform base URL")

	// ErrNoCredentials — не задан ни токен, ни client credentials.
	ErrNoCredentials = errors.New("no credentials configured")
)

// PlatformError — ошибка, возвращённая платформой.
type PlatformError struct {
	// StatusCode — HTTP статус ответа.
	StatusCode int

	// Code — код ошибки платформы ("400", "404" и т.д.).
	Code string

	// Message — человекочитаемое описание.
	Message string
}

// Error реализует интерфейс error.
func (e *PlatformError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("platform error %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("platform error (status %d): %s", e.StatusCode, e.Message)
}

// IsNotFound возвращает true, если ошибка — отсутствие ресурса.
func IsNotFound(err error) bool {
	var perr *PlatformError
	if !errors.As(err, &perr) {
		return false
	}
	return perr.StatusCode == http.StatusNotFound || perr.Code == "404"
}

// IsBadRequest возвращает true, если платформа отклонила запрос.
func IsBadRequest(err error) bool {
	var perr *PlatformError
	if !errors.As(err, &perr) {
		return false
	}
	return perr.StatusCode == http.StatusBadRequest || perr.Code == "400"
}

// IsUnauthorized возвращает true при ошибке аутентификации.
func IsUnauthorized(err error) bool {
	var perr *PlatformError
	if !errors.As(err, &perr) {
		return false
	}
	return perr.StatusCode == http.StatusUnauthorized
}
