package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Third-party API errors
var (
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrInvalidAPIKey      = errors.New("invalid API key")
	ErrConfigMissing      = errors.New("configuration missing")
)

func NewServiceUnavailableError(service string, statusCode int, body string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrServiceUnavailable,
		Details:    fmt.Sprintf("%s returned status %d: %s", service, statusCode, Truncate(body, maxDiagnosticLength)),
	}
}

func NewInvalidAPIKeyError(service string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrInvalidAPIKey,
		Details:    fmt.Sprintf("%s rejected the configured API key", service),
	}
}

func NewConfigMissingError(name string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigMissing,
		Details:    fmt.Sprintf("%s is not set", name),
		Field:      name,
	}
}

func IsServiceUnavailableError(err error) bool {
	return errors.Is(err, ErrServiceUnavailable)
}

func IsInvalidAPIKeyError(err error) bool {
	return errors.Is(err, ErrInvalidAPIKey)
}

func IsConfigMissingError(err error) bool {
	return errors.Is(err, ErrConfigMissing)
}
