package errs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestNewDatabaseError_Classification(t *testing.T) {
	testCases := []struct {
		name       string
		operation  string
		cause      error
		wantIs     error
		wantStatus int
	}{
		{"deadline on insert", "insert", context.DeadlineExceeded, ErrStorageUnavailable, http.StatusServiceUnavailable},
		{"refused on fetch", "fetch", errors.New("dial tcp 127.0.0.1:27017: connect: connection refused"), ErrStorageUnavailable, http.StatusServiceUnavailable},
		{"duplicate on insert", "insert", errors.New("duplicate key value violates unique constraint"), ErrWriteFailed, http.StatusInternalServerError},
		{"bad query on fetch", "fetch", errors.New("no such column: body"), ErrQueryFailed, http.StatusInternalServerError},
		{"wrapped unavailable", "insert", fmt.Errorf("open: %w", ErrStorageUnavailable), ErrStorageUnavailable, http.StatusServiceUnavailable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := NewDatabaseError(tc.operation, "inquiry", tc.cause)
			if !errors.Is(err, tc.wantIs) {
				t.Fatalf("NewDatabaseError(%q) = %v, want errors.Is %v", tc.operation, err, tc.wantIs)
			}
			if err.StatusCode != tc.wantStatus {
				t.Errorf("StatusCode = %d, want %d", err.StatusCode, tc.wantStatus)
			}
			if err.Cause != tc.cause {
				t.Errorf("Cause = %v, want %v", err.Cause, tc.cause)
			}
		})
	}
}

func TestApiErr_GetFullError(t *testing.T) {
	inner := NewWriteFailedError("inquiry", errors.New("disk full"))
	outer := NewInternalErrorWithCause("create inquiry", inner)

	got := outer.GetFullError()
	for _, want := range []string{"internal server error", "create inquiry", "write failed", "disk full"} {
		if !strings.Contains(got, want) {
			t.Errorf("GetFullError() = %q, missing %q", got, want)
		}
	}
}

func TestValidationError(t *testing.T) {
	verr := &ValidationError{}
	if verr.OrNil() != nil {
		t.Fatal("empty ValidationError should collapse to nil")
	}

	verr.Add("name", RuleMinLength, "must be at least 2 characters")
	verr.Add("email", RuleEmail, "must be a valid email address")

	err := verr.OrNil()
	if err == nil {
		t.Fatal("OrNil() = nil with violations recorded")
	}
	if !IsValidationError(err) {
		t.Error("IsValidationError should match")
	}
	if got := verr.Fields(); len(got) != 2 || got[0] != "name" || got[1] != "email" {
		t.Errorf("Fields() = %v, want [name email]", got)
	}
	if !verr.HasField("email") || verr.HasField("message") {
		t.Error("HasField returned the wrong answer")
	}
	if verr.StatusCode() != http.StatusBadRequest {
		t.Errorf("StatusCode() = %d, want 400", verr.StatusCode())
	}
	if !strings.Contains(err.Error(), "name: must be at least 2 characters") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestTruncate(t *testing.T) {
	testCases := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncate me", 8, "truncate..."},
		{"héllo wörld", 5, "héllo..."},
		{"anything", 0, ""},
	}
	for _, tc := range testCases {
		if got := Truncate(tc.in, tc.n); got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.n, got, tc.want)
		}
	}
}

func TestIsConnectivityError(t *testing.T) {
	if IsConnectivityError(nil) {
		t.Error("nil should not be a connectivity error")
	}
	if IsConnectivityError(errors.New("constraint failed")) {
		t.Error("constraint failure should not be a connectivity error")
	}
	if !IsConnectivityError(errors.New("server selection error: context deadline exceeded")) {
		t.Error("server selection failure should be a connectivity error")
	}
}

func TestRoutingErrors(t *testing.T) {
	notFound := NewNotFoundError("route /api/nope")
	if notFound.StatusCode != http.StatusNotFound || !errors.Is(notFound, ErrNotFound) {
		t.Errorf("NewNotFoundError = %d %v", notFound.StatusCode, notFound)
	}

	notAllowed := NewMethodNotAllowedError(http.MethodDelete, "/api/inquiries")
	if notAllowed.StatusCode != http.StatusMethodNotAllowed || !errors.Is(notAllowed, ErrMethodNotAllowed) {
		t.Errorf("NewMethodNotAllowedError = %d %v", notAllowed.StatusCode, notAllowed)
	}
	if !strings.Contains(notAllowed.Error(), "DELETE") {
		t.Errorf("Error() = %q, want the method named", notAllowed.Error())
	}
}
