package database

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/hospitality-studio-backend/errs"
	"github.com/rpupo63/hospitality-studio-backend/models"
)

// MemoryGateway keeps documents in process memory. It backs `memory://` for
// local development and stands in for a real store in tests.
type MemoryGateway struct {
	mu          sync.RWMutex
	collections map[string][]models.Document
	closed      bool
	now         func() time.Time
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{
		collections: make(map[string][]models.Document),
		now:         time.Now,
	}
}

func (g *MemoryGateway) Insert(ctx context.Context, collection string, record models.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errs.NewStorageUnavailableError("insert", err)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return "", errs.NewWriteFailedError(collection, err)
	}

	doc := record.WithTimestamps(g.now())
	doc[models.IDField] = id.String()

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return "", errs.NewStorageUnavailableError("insert", errMemoryClosed)
	}
	g.collections[collection] = append(g.collections[collection], doc)
	return id.String(), nil
}

func (g *MemoryGateway) FetchRecent(ctx context.Context, collection string, limit int) ([]models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewStorageUnavailableError("fetch", err)
	}
	limit = normalizeLimit(limit)

	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.closed {
		return nil, errs.NewStorageUnavailableError("fetch", errMemoryClosed)
	}

	docs := g.collections[collection]
	out := make([]models.Document, 0, min(limit, len(docs)))
	for i := len(docs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, docs[i].Clone())
	}
	return out, nil
}

func (g *MemoryGateway) HealthCheck(context.Context) HealthStatus {
	g.mu.RLock()
	defer g.mu.RUnlock()

	status := HealthStatus{
		Backend:      "memory",
		Configured:   true,
		DatabaseName: "memory",
		Collections:  []string{},
	}
	if g.closed {
		status.ConnectError = errMemoryClosed.Error()
		return status
	}
	status.Reachable = true
	status.CollectionsListed = true

	names := make([]string, 0, len(g.collections))
	for name := range g.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	status.Collections = capCollections(names)
	return status
}

func (g *MemoryGateway) Close(context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	return nil
}

var errMemoryClosed = errors.New("memory gateway is closed")
