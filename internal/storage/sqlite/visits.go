// ABOUTME: Visit log storage operations for SQLite
// ABOUTME: Records page views and serves the admin listing, stats, and purge
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sushinbandha/portfolio-assistant/internal/models"
)

// VisitStore handles visit log persistence
type VisitStore struct {
	db *DB
}

// NewVisitStore creates a new VisitStore
func NewVisitStore(db *DB) *VisitStore {
	return &VisitStore{db: db}
}

// Record inserts a visit and sets its assigned ID
func (s *VisitStore) Record(visit *models.Visit) error {
	if visit.VisitedAt.IsZero() {
		visit.VisitedAt = time.Now().UTC()
	}

	result, err := s.db.Exec(`
		INSERT INTO visit_logs (ip_address, country, region, city, timezone,
			user_agent, browser_name, browser_version, os_name, device_type,
			page_url, referrer, visited_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, visit.IPAddress, visit.Country, visit.Region, visit.City, visit.Timezone,
		visit.UserAgent, visit.BrowserName, visit.BrowserVersion, visit.OSName,
		visit.DeviceType, visit.PageURL, visit.Referrer, visit.VisitedAt)
	if err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}

	visit.ID, err = result.LastInsertId()
	return err
}

// Recent returns up to limit visits, newest first
func (s *VisitStore) Recent(limit int) ([]models.Visit, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.Query(`
		SELECT id, ip_address, country, region, city, timezone,
			user_agent, browser_name, browser_version, os_name, device_type,
			page_url, referrer, visited_at
		FROM visit_logs
		ORDER BY visited_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query visits: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var visits []models.Visit
	for rows.Next() {
		visit, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		visits = append(visits, visit)
	}
	return visits, rows.Err()
}

// Stats summarizes the visit log
func (s *VisitStore) Stats() (*models.VisitStats, error) {
	stats := &models.VisitStats{}

	err := s.db.QueryRow(`SELECT COUNT(*), COUNT(DISTINCT ip_address) FROM visit_logs`).
		Scan(&stats.TotalVisits, &stats.UniqueIPs)
	if err != nil {
		return nil, fmt.Errorf("failed to compute visit stats: %w", err)
	}

	cutoff := time.Now().UTC().Add(-24 * time.Hour)
	err = s.db.QueryRow(`SELECT COUNT(*) FROM visit_logs WHERE visited_at >= ?`, cutoff).
		Scan(&stats.VisitsLast24)
	if err != nil {
		return nil, fmt.Errorf("failed to compute recent visit count: %w", err)
	}

	return stats, nil
}

// DeleteOlderThan purges visits before the cutoff and returns the count removed
func (s *VisitStore) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM visit_logs WHERE visited_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old visits: %w", err)
	}
	return result.RowsAffected()
}

func scanVisit(rows *sql.Rows) (models.Visit, error) {
	var (
		visit          models.Visit
		country        sql.NullString
		region         sql.NullString
		city           sql.NullString
		timezone       sql.NullString
		userAgent      sql.NullString
		browserName    sql.NullString
		browserVersion sql.NullString
		osName         sql.NullString
		deviceType     sql.NullString
		pageURL        sql.NullString
		referrer       sql.NullString
	)

	err := rows.Scan(&visit.ID, &visit.IPAddress, &country, &region, &city,
		&timezone, &userAgent, &browserName, &browserVersion, &osName,
		&deviceType, &pageURL, &referrer, &visit.VisitedAt)
	if err != nil {
		return visit, fmt.Errorf("failed to scan visit: %w", err)
	}

	visit.Country = country.String
	visit.Region = region.String
	visit.City = city.String
	visit.Timezone = timezone.String
	visit.UserAgent = userAgent.String
	visit.BrowserName = browserName.String
	visit.BrowserVersion = browserVersion.String
	visit.OSName = osName.String
	visit.DeviceType = deviceType.String
	visit.PageURL = pageURL.String
	visit.Referrer = referrer.String
	return visit, nil
}
