package api

import (
	"github.com/rpupo63/hospitality-studio-backend/database"
	"github.com/rpupo63/hospitality-studio-backend/errs"
	"github.com/rpupo63/hospitality-studio-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	inquiryHandler inquiryHandler
	healthHandler  healthHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Ok         bool                  `json:"ok"`
	Error      string                `json:"error"`
	Message    string                `json:"message,omitempty"`
	Status     string                `json:"status"`
	Field      string                `json:"field,omitempty"`
	Details    string                `json:"details,omitempty"`
	Cause      string                `json:"cause,omitempty"`
	Violations []errs.FieldViolation `json:"violations,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type createInquiryResponse struct {
	Ok bool   `json:"ok"`
	ID string `json:"id"`
}

type listInquiriesResponse struct {
	Ok    bool              `json:"ok"`
	Items []models.Document `json:"items"`
}

// HealthResponse is the diagnostics descriptor served on /health and /test.
// database_url and database_name only report whether the variable is set.
type HealthResponse struct {
	Backend          string                `json:"backend"`
	Database         string                `json:"database"`
	ConnectionStatus string                `json:"connection_status"`
	DatabaseURL      string                `json:"database_url"`
	DatabaseName     string                `json:"database_name"`
	Collections      []string              `json:"collections"`
	Store            database.HealthStatus `json:"store"`
	Uptime           string                `json:"uptime"`
}
