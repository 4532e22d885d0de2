package database

import (
	"context"

	"github.com/rpupo63/hospitality-studio-backend/models"
)

const (
	// DefaultFetchLimit applies when a caller asks for zero or a negative number of records.
	DefaultFetchLimit = 20
	// MaxReportedCollections caps the collection names a health check returns.
	MaxReportedCollections = 10
	// healthErrorLength bounds error strings placed in a HealthStatus.
	healthErrorLength = 50
)

// Gateway inserts and reads documents in named collections, independent of
// the storage technology behind it. Identifiers crossing this interface are
// always opaque strings. Implementations are safe for concurrent use.
type Gateway interface {
	// Insert stores record in collection and returns its new identifier.
	// Errors wrap errs.ErrStorageUnavailable or errs.ErrWriteFailed.
	Insert(ctx context.Context, collection string, record models.Document) (string, error)
	// FetchRecent returns up to limit documents, newest first. A missing or
	// empty collection yields an empty slice. Errors wrap
	// errs.ErrStorageUnavailable or errs.ErrQueryFailed.
	FetchRecent(ctx context.Context, collection string, limit int) ([]models.Document, error)
	// HealthCheck never fails; each stage reports its own state.
	HealthCheck(ctx context.Context) HealthStatus
	Close(ctx context.Context) error
}

// HealthStatus describes the store as seen from this process. Configured,
// Reachable and CollectionsListed are reported independently.
type HealthStatus struct {
	Backend           string   `json:"backend"`
	Configured        bool     `json:"configured"`
	Reachable         bool     `json:"reachable"`
	DatabaseName      string   `json:"database_name,omitempty"`
	CollectionsListed bool     `json:"collections_listed"`
	Collections       []string `json:"collections"`
	ConnectError      string   `json:"connect_error,omitempty"`
	CollectionsError  string   `json:"collections_error,omitempty"`
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultFetchLimit
	}
	return limit
}

func capCollections(names []string) []string {
	if len(names) > MaxReportedCollections {
		names = names[:MaxReportedCollections]
	}
	if names == nil {
		return []string{}
	}
	return names
}
