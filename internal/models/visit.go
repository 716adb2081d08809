// ABOUTME: Visit log model for site analytics
// ABOUTME: Captures IP, geolocation, and parsed user-agent details per page view
package models

import "time"

// Visit is one logged page view
type Visit struct {
	ID             int64     `json:"id"`
	IPAddress      string    `json:"ip_address"`
	Country        string    `json:"country,omitempty"`
	Region         string    `json:"region,omitempty"`
	City           string    `json:"city,omitempty"`
	Timezone       string    `json:"timezone,omitempty"`
	UserAgent      string    `json:"user_agent,omitempty"`
	BrowserName    string    `json:"browser_name,omitempty"`
	BrowserVersion string    `json:"browser_version,omitempty"`
	OSName         string    `json:"os_name,omitempty"`
	DeviceType     string    `json:"device_type,omitempty"`
	PageURL        string    `json:"page_url,omitempty"`
	Referrer       string    `json:"referrer,omitempty"`
	VisitedAt      time.Time `json:"visited_at"`
}

// VisitStats summarizes the visit log for the admin view
type VisitStats struct {
	TotalVisits  int64 `json:"total_visits"`
	UniqueIPs    int64 `json:"unique_ips"`
	VisitsLast24 int64 `json:"visits_last_24h"`
}
