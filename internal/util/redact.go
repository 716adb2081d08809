// ABOUTME: Redaction helper for logging configuration problems
// ABOUTME: Keeps API keys and tokens out of operator-facing log lines
package util

// Redact masks a secret for log output, keeping a short prefix so an
// operator can tell which credential is configured without exposing it.
func Redact(secret string) string {
	if secret == "" {
		return "(unset)"
	}
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "****"
}
