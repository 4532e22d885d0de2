package api

import (
	"time"

	"github.com/rpupo63/hospitality-studio-backend/database"
	"github.com/rpupo63/hospitality-studio-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, notifier services.InquiryNotifier, env map[string]string, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		inquiryHandler: newInquiryHandler(db.InquiryRepo(), notifier),
		healthHandler:  newHealthHandler(db, env, startupTime),
	}
}
