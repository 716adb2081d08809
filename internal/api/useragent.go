// ABOUTME: Lightweight user-agent classification for visit logging
// ABOUTME: Extracts browser, OS, and device class; flags known crawlers
package api

import (
	"regexp"
	"strings"
)

// botPatterns are substrings of user agents excluded from visit logging
var botPatterns = []string{
	"bot",
	"crawler",
	"spider",
	"googlebot",
	"bingbot",
	"yahoo",
	"facebookexternalhit",
	"linkedinbot",
	"twitterbot",
	"slurp",
	"baidu",
	"yandex",
}

var (
	browserPattern = regexp.MustCompile(`(?i)(Chrome|Safari|Firefox|Edge|Opera|IE)/([^\s]+)`)
	osPattern      = regexp.MustCompile(`(?i)(Windows|Mac|Linux|Android|iOS|iPhone|iPad)`)
	mobilePattern  = regexp.MustCompile(`(?i)(Mobile|Android|iPhone|iPad)`)
)

// AgentInfo is the parsed subset of a user-agent string worth storing
type AgentInfo struct {
	BrowserName    string
	BrowserVersion string
	OSName         string
	DeviceType     string
}

// ParseUserAgent does a coarse classification, enough for visit analytics
func ParseUserAgent(userAgent string) AgentInfo {
	info := AgentInfo{
		BrowserName: "Unknown",
		OSName:      "Unknown",
		DeviceType:  "Desktop",
	}

	if m := browserPattern.FindStringSubmatch(userAgent); m != nil {
		info.BrowserName = m[1]
		info.BrowserVersion = m[2]
	}
	if m := osPattern.FindStringSubmatch(userAgent); m != nil {
		info.OSName = m[1]
	}
	if mobilePattern.MatchString(userAgent) {
		info.DeviceType = "Mobile"
	}
	return info
}

// IsBot reports whether the user agent matches a known crawler pattern
func IsBot(userAgent string) bool {
	lower := strings.ToLower(userAgent)
	for _, pattern := range botPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}
