// Package redact removes credentials from strings before they are logged or
// returned in error responses. Database URLs, provider API keys and
// key-bearing query parameters are the usual offenders in this service:
// driver and SDK errors tend to echo the DSN or the request URL.
package redact

import (
	"log/slog"
	"regexp"
)

// Redaction placeholders
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	KeyPlaceholder        = "[REDACTED_KEY]"
	StackPlaceholder      = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules are applied in order; earlier rules see the original text.
var rules = []rule{
	{
		pattern:     regexp.MustCompile(`(?i)\b(postgres|postgresql)://[^@\s/]+@`),
		replacement: "${1}://" + CredentialPlaceholder + "@",
	},
	{
		pattern:     regexp.MustCompile(`AIza[0-9A-Za-z_\-]{35}`),
		replacement: KeyPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`sk-ant-[0-9A-Za-z_\-]{8,}`),
		replacement: KeyPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)([?&](?:key|api_key|token)=)[^&\s"']+`),
		replacement: "${1}" + KeyPlaceholder,
	},
	{
		pattern: regexp.MustCompile(
			`(?i)\b(x-api-key|x-goog-api-key|api[_-]?key|password|secret|authorization)(["']?\s*[:=]\s*["']?)(?:bearer\s+)?[^\s"'&,]{3,}`,
		),
		replacement: "${1}${2}" + CredentialPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`goroutine \d+ \[[^\]]*\]:[\s\S]*`),
		replacement: StackPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// ErrorAttr returns the redacted error as the conventional "error" log attribute.
func ErrorAttr(err error) slog.Attr {
	return slog.String("error", Error(err))
}
