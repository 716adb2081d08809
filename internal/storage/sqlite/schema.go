// ABOUTME: SQLite database schema for site analytics storage
// ABOUTME: Creates visit log and contact submission tables with indexes
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Visit logs table (one row per page view)
CREATE TABLE IF NOT EXISTS visit_logs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    ip_address TEXT NOT NULL,
    country TEXT,
    region TEXT,
    city TEXT,
    timezone TEXT,
    user_agent TEXT,
    browser_name TEXT,
    browser_version TEXT,
    os_name TEXT,
    device_type TEXT,
    page_url TEXT,
    referrer TEXT,
    visited_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Contact form submissions
CREATE TABLE IF NOT EXISTS contact_submissions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    subject TEXT NOT NULL,
    message TEXT NOT NULL,
    ip_address TEXT,
    user_agent TEXT,
    submitted_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Indexes for visit_logs
CREATE INDEX IF NOT EXISTS idx_visit_visited_at ON visit_logs(visited_at DESC);
CREATE INDEX IF NOT EXISTS idx_visit_ip ON visit_logs(ip_address);
CREATE INDEX IF NOT EXISTS idx_visit_country ON visit_logs(country);
CREATE INDEX IF NOT EXISTS idx_visit_device ON visit_logs(device_type);
CREATE INDEX IF NOT EXISTS idx_visit_browser ON visit_logs(browser_name);

-- Indexes for contact_submissions
CREATE INDEX IF NOT EXISTS idx_contact_submitted_at ON contact_submissions(submitted_at DESC);
CREATE INDEX IF NOT EXISTS idx_contact_email ON contact_submissions(email);
CREATE INDEX IF NOT EXISTS idx_contact_ip ON contact_submissions(ip_address);
`
