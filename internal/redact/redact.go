// Package redact removes personal data from strings before they are logged.
// Error messages can echo request content, and patient records carry emails,
// phone numbers and profile URLs that must never reach the logs.
package redact

import "regexp"

// Placeholders substituted for each kind of redacted value.
const (
	RedactedEmailPlaceholder = "[REDACTED_EMAIL]"
	RedactedURLPlaceholder   = "[REDACTED_URL]"
	RedactedPhonePlaceholder = "[REDACTED_PHONE]"
	RedactedPathPlaceholder  = "[REDACTED_PATH]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// rules run in order; URLs go first so an address embedded in a URL is
// replaced as a whole.
var rules = []rule{
	{regexp.MustCompile(`(?i)\b(?:https?|ftp)://[^\s"'<>]+`), RedactedURLPlaceholder},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), RedactedEmailPlaceholder},
	{regexp.MustCompile(`\+?\d(?:[ .-]?\d){6,14}`), RedactedPhonePlaceholder},
	{regexp.MustCompile(`(/[\w.-]+){2,}`), RedactedPathPlaceholder},
	{regexp.MustCompile(`[A-Za-z]:\\[^\\\s]+(\\[^\\\s]+)+`), RedactedPathPlaceholder},
}

// String redacts personal data from the input string.
func String(input string) string {
	if input == "" {
		return input
	}
	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts personal data from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
