package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultConnectTimeout = 5 * time.Second

// Options selects and configures the store behind a Gateway.
type Options struct {
	// URL picks the adapter by scheme: mongodb://, mongodb+srv://,
	// postgres://, postgresql://, sqlite:// or memory://.
	URL string
	// Name is the logical database name; required for MongoDB.
	Name           string
	ConnectTimeout time.Duration
}

// Open always returns a usable Gateway. When the store cannot be opened the
// returned gateway fails every operation with errs.ErrStorageUnavailable and
// reports the cause through HealthCheck.
func Open(ctx context.Context, opts Options) Gateway {
	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	url := strings.TrimSpace(opts.URL)
	backend := Backend(url)
	logger := log.With().Str("component", "database").Str("backend", backend).Logger()

	if url == "" {
		logger.Warn().Msg("DATABASE_URL not set; inquiries cannot be stored")
		return newUnavailableGateway("", false, nil)
	}

	var (
		gw  Gateway
		err error
	)
	switch backend {
	case "mongodb":
		gw, err = openMongo(ctx, url, opts.Name, timeout)
	case "postgres":
		gw, err = openPostgres(url)
	case "sqlite":
		gw, err = openSQLite(SQLitePath(url))
	case "memory":
		gw = NewMemoryGateway()
	default:
		err = fmt.Errorf("unsupported DATABASE_URL scheme in %q", redactURL(url))
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to open database")
		return newUnavailableGateway(backend, true, err)
	}

	logger.Info().Msg("Database gateway ready")
	return gw
}

// openMongo and friends return the Gateway interface so a nil adapter never
// ends up wrapped in a non-nil interface value.
func openMongo(ctx context.Context, url, name string, timeout time.Duration) (Gateway, error) {
	g, err := OpenMongo(ctx, url, name, timeout)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func openPostgres(url string) (Gateway, error) {
	g, err := OpenPostgres(url)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func openSQLite(path string) (Gateway, error) {
	g, err := OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Backend names the adapter a DATABASE_URL selects, or "unknown".
func Backend(url string) string {
	switch {
	case url == "":
		return ""
	case strings.HasPrefix(url, "mongodb://"), strings.HasPrefix(url, "mongodb+srv://"):
		return "mongodb"
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return "postgres"
	case strings.HasPrefix(url, "sqlite:"):
		return "sqlite"
	case strings.HasPrefix(url, "memory:"):
		return "memory"
	default:
		return "unknown"
	}
}

// SQLitePath extracts the file path from a sqlite URL.
// sqlite:///./studio.db -> ./studio.db, sqlite://:memory: -> :memory:
func SQLitePath(url string) string {
	switch {
	case strings.HasPrefix(url, "sqlite:///"):
		return url[len("sqlite:///"):]
	case strings.HasPrefix(url, "sqlite://"):
		return url[len("sqlite://"):]
	default:
		return strings.TrimPrefix(url, "sqlite:")
	}
}

// redactURL drops credentials so a URL can be logged.
func redactURL(url string) string {
	scheme, rest, ok := strings.Cut(url, "://")
	if !ok {
		return "<redacted>"
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		rest = rest[at+1:]
	}
	return scheme + "://" + rest
}
