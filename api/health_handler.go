package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rpupo63/hospitality-studio-backend/config"
	"github.com/rpupo63/hospitality-studio-backend/database"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const healthCheckTimeout = 5 * time.Second

type healthHandler struct {
	responder   Responder
	logger      zerolog.Logger
	db          database.Database
	env         map[string]string
	startupTime time.Time
}

func newHealthHandler(db database.Database, env map[string]string, startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		db:          db,
		env:         env,
		startupTime: startupTime,
	}
}

func (h healthHandler) root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, messageResponse{Message: "Hospitality Design Studio Backend Running"})
	}
}

// health always answers 200; store problems are reported as fields.
func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		status := h.db.HealthCheck(ctx)
		if !status.Reachable {
			h.logger.Warn().Str("connectError", status.ConnectError).Msg("store not reachable")
		}

		h.responder.WriteJSON(w, HealthResponse{
			Backend:          "running",
			Database:         databaseState(status),
			ConnectionStatus: connectionStatus(status),
			DatabaseURL:      presence(h.env, "DATABASE_URL"),
			DatabaseName:     presence(h.env, "DATABASE_NAME"),
			Collections:      status.Collections,
			Store:            status,
			Uptime:           time.Since(h.startupTime).Round(time.Second).String(),
		})
	}
}

func databaseState(s database.HealthStatus) string {
	switch {
	case !s.Configured:
		return "not configured"
	case !s.Reachable:
		return "unavailable"
	case !s.CollectionsListed:
		return "connected with errors"
	default:
		return "connected"
	}
}

func connectionStatus(s database.HealthStatus) string {
	if s.Reachable {
		return "Connected"
	}
	return "Not Connected"
}

func presence(env map[string]string, key string) string {
	if config.IsSet(env, key) {
		return "set"
	}
	return "not set"
}
