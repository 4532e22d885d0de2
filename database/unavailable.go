package database

import (
	"context"
	"errors"

	"github.com/rpupo63/hospitality-studio-backend/errs"
	"github.com/rpupo63/hospitality-studio-backend/models"
)

var errNotConfigured = errors.New("DATABASE_URL is not set")

// unavailableGateway stands in for a store that could not be opened at
// startup, so the process keeps serving and the failure shows up in health.
type unavailableGateway struct {
	backend    string
	configured bool
	cause      error
}

func newUnavailableGateway(backend string, configured bool, cause error) *unavailableGateway {
	if cause == nil {
		cause = errNotConfigured
	}
	return &unavailableGateway{backend: backend, configured: configured, cause: cause}
}

func (g *unavailableGateway) Insert(_ context.Context, _ string, _ models.Document) (string, error) {
	return "", errs.NewStorageUnavailableError("insert", g.cause)
}

func (g *unavailableGateway) FetchRecent(_ context.Context, _ string, _ int) ([]models.Document, error) {
	return nil, errs.NewStorageUnavailableError("fetch", g.cause)
}

func (g *unavailableGateway) HealthCheck(_ context.Context) HealthStatus {
	return HealthStatus{
		Backend:      g.backend,
		Configured:   g.configured,
		Collections:  []string{},
		ConnectError: errs.Truncate(g.cause.Error(), healthErrorLength),
	}
}

func (g *unavailableGateway) Close(context.Context) error {
	return nil
}
