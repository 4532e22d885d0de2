package errs

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// Persistence errors. Every gateway failure wraps exactly one of these.
var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrWriteFailed        = errors.New("write failed")
	ErrQueryFailed        = errors.New("database query failed")
)

// NewStorageUnavailableError reports that the store could not be reached while
// performing operation.
func NewStorageUnavailableError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrStorageUnavailable,
		Details:    fmt.Sprintf("Unable to reach database during %s", operation),
		Cause:      cause,
	}
}

// NewWriteFailedError reports a rejected or failed insert into collection.
func NewWriteFailedError(collection string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrWriteFailed,
		Details:    fmt.Sprintf("Failed to insert into %s", collection),
		Cause:      cause,
	}
}

// NewQueryFailedError reports a read failure that is not a connectivity problem.
func NewQueryFailedError(collection string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrQueryFailed,
		Details:    fmt.Sprintf("Failed to read from %s", collection),
		Cause:      cause,
	}
}

// IsConnectivityError reports whether cause looks like the store being
// unreachable rather than the store rejecting the operation.
func IsConnectivityError(cause error) bool {
	if cause == nil {
		return false
	}
	if errors.Is(cause, ErrStorageUnavailable) ||
		errors.Is(cause, context.DeadlineExceeded) ||
		errors.Is(cause, context.Canceled) {
		return true
	}
	var netErr net.Error
	if errors.As(cause, &netErr) {
		return true
	}
	msg := strings.ToLower(cause.Error())
	for _, marker := range []string{"connection refused", "connection reset", "no such host", "broken pipe", "server selection", "database is closed", "failed to connect"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// NewDatabaseError classifies cause into the persistence taxonomy. operation is
// either "insert" or "fetch".
func NewDatabaseError(operation, collection string, cause error) *ApiErr {
	if IsConnectivityError(cause) {
		return NewStorageUnavailableError(operation, cause)
	}
	if operation == "insert" {
		return NewWriteFailedError(collection, cause)
	}
	return NewQueryFailedError(collection, cause)
}

func IsStorageUnavailable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}
