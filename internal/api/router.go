// ABOUTME: HTTP routing for the portfolio assistant service
// ABOUTME: Wires middleware and endpoints onto a gorilla/mux router
package api

import (
	"github.com/gorilla/mux"
)

// NewRouter creates and configures the HTTP router
func NewRouter(handler *Handler) *mux.Router {
	r := mux.NewRouter()

	// Apply middleware
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)
	r.Use(corsMiddleware)

	// Register routes
	r.HandleFunc("/api/chat", handler.HandleChat).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/chat", handler.HandleChatInfo).Methods("GET")
	r.HandleFunc("/api/contact", handler.HandleContact).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/log-visit", handler.HandleLogVisit).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/admin/visits", handler.HandleAdminVisits).Methods("GET")
	r.HandleFunc("/api/admin/visits", handler.HandleAdminPurgeVisits).Methods("DELETE")
	r.HandleFunc("/api/health", handler.HandleHealth).Methods("GET")

	return r
}
