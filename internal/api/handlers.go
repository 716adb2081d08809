// ABOUTME: HTTP handlers for chat, contact, visit logging, and admin views
// ABOUTME: Maps orchestrator sentinel errors onto HTTP status codes
package api

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/sushinbandha/portfolio-assistant/internal/core"
	"github.com/sushinbandha/portfolio-assistant/internal/models"
	"github.com/sushinbandha/portfolio-assistant/internal/storage/sqlite"
)

// Handler holds the dependencies for HTTP handlers
type Handler struct {
	assistant   *core.Assistant
	visits      *sqlite.VisitStore
	contacts    *sqlite.ContactStore
	owner       string
	adminToken  string
	rateLimit   int
	excludedIPs map[string]bool
}

// HandlerConfig carries the handler's policy settings
type HandlerConfig struct {
	Owner       string
	AdminToken  string
	RateLimit   int
	ExcludedIPs []string
}

// NewHandler creates a new Handler. visits and contacts may be nil when the
// analytics database is not configured; the affected endpoints then report
// the feature as unavailable.
func NewHandler(assistant *core.Assistant, visits *sqlite.VisitStore, contacts *sqlite.ContactStore, cfg HandlerConfig) *Handler {
	excluded := make(map[string]bool, len(cfg.ExcludedIPs))
	for _, ip := range cfg.ExcludedIPs {
		excluded[ip] = true
	}
	return &Handler{
		assistant:   assistant,
		visits:      visits,
		contacts:    contacts,
		owner:       cfg.Owner,
		adminToken:  cfg.AdminToken,
		rateLimit:   cfg.RateLimit,
		excludedIPs: excluded,
	}
}

type chatRequest struct {
	Messages []models.Message `json:"messages"`
}

// HandleChat handles POST /api/chat
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid message format")
		return
	}

	reply, err := h.assistant.Answer(r.Context(), ClientIP(r), req.Messages)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrRateLimited):
			sendError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again in an hour.")
		case errors.Is(err, core.ErrInvalidInput):
			sendError(w, http.StatusBadRequest, "Invalid message format")
		case errors.Is(err, core.ErrUnavailable):
			sendError(w, http.StatusServiceUnavailable, "Chat is temporarily unavailable. Please try again later.")
		default:
			log.Printf("chat error: %v", err)
			sendError(w, http.StatusInternalServerError, "Failed to process your message. Please try again.")
		}
		return
	}

	w.Header().Set("X-Rate-Limit-Remaining", strconv.Itoa(reply.Remaining))
	sendJSON(w, http.StatusOK, reply)
}

// HandleChatInfo handles GET /api/chat with a service descriptor
func (h *Handler) HandleChatInfo(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"name":        fmt.Sprintf("%s Portfolio Chat API", h.owner),
		"version":     "1.0.0",
		"description": "RAG-powered assistant for portfolio inquiries",
		"rateLimit":   fmt.Sprintf("%d requests per hour", h.rateLimit),
	})
}

// HandleContact handles POST /api/contact
func (h *Handler) HandleContact(w http.ResponseWriter, r *http.Request) {
	if h.contacts == nil {
		sendError(w, http.StatusServiceUnavailable, "Contact form is not configured. Please contact the administrator.")
		return
	}

	var sub models.ContactSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	sub.ID = 0
	sub.IPAddress = ClientIP(r)
	sub.UserAgent = r.UserAgent()
	sub.SubmittedAt = time.Time{}

	if err := sub.Validate(); err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.contacts.Save(&sub); err != nil {
		log.Printf("contact save error: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to send message. Please try again.")
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Message received successfully",
	})
}

type logVisitRequest struct {
	PageURL  string `json:"pageUrl"`
	Referrer string `json:"referrer"`
}

// HandleLogVisit handles POST /api/log-visit. Excluded IPs and crawlers get a
// 200 with logged=false so clients never retry.
func (h *Handler) HandleLogVisit(w http.ResponseWriter, r *http.Request) {
	ip := ClientIP(r)
	if h.excludedIPs[ip] {
		sendJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Visit not logged (excluded IP)",
			"logged":  false,
		})
		return
	}

	userAgent := r.UserAgent()
	if IsBot(userAgent) {
		sendJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Visit not logged (bot detected)",
			"logged":  false,
		})
		return
	}

	if h.visits == nil {
		sendJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Analytics not configured",
			"logged":  false,
		})
		return
	}

	// Body is optional; an empty or malformed one just drops the page fields
	var req logVisitRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	agent := ParseUserAgent(userAgent)
	visit := models.Visit{
		IPAddress:      ip,
		UserAgent:      userAgent,
		BrowserName:    agent.BrowserName,
		BrowserVersion: agent.BrowserVersion,
		OSName:         agent.OSName,
		DeviceType:     agent.DeviceType,
		PageURL:        req.PageURL,
		Referrer:       req.Referrer,
	}
	if err := h.visits.Record(&visit); err != nil {
		log.Printf("visit logging error: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to log visit")
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Visit logged successfully",
		"logged":  true,
	})
}

// HandleAdminVisits handles GET /api/admin/visits
func (h *Handler) HandleAdminVisits(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		sendError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if h.visits == nil {
		sendError(w, http.StatusServiceUnavailable, "Analytics not configured")
		return
	}

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	visits, err := h.visits.Recent(limit)
	if err != nil {
		log.Printf("visit query error: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to fetch visits")
		return
	}
	stats, err := h.visits.Stats()
	if err != nil {
		log.Printf("visit stats error: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to fetch visits")
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"count":  len(visits),
		"visits": visits,
		"stats":  stats,
	})
}

// HandleAdminPurgeVisits handles DELETE /api/admin/visits
func (h *Handler) HandleAdminPurgeVisits(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		sendError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if h.visits == nil {
		sendError(w, http.StatusServiceUnavailable, "Analytics not configured")
		return
	}

	days := 30
	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}

	removed, err := h.visits.DeleteOlderThan(time.Now().UTC().AddDate(0, 0, -days))
	if err != nil {
		log.Printf("visit purge error: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to purge visits")
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"removed": removed,
	})
}

// HandleHealth handles GET /api/health
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// authorized checks the admin bearer token in constant time
func (h *Handler) authorized(r *http.Request) bool {
	if h.adminToken == "" {
		return false
	}
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || auth[:len(prefix)] != prefix {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(auth[len(prefix):]), []byte(h.adminToken)) == 1
}

func sendJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func sendError(w http.ResponseWriter, status int, message string) {
	sendJSON(w, status, map[string]string{"error": message})
}
