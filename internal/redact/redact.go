// Package redact provides utilities for redacting credentials from strings
// before they are logged or returned in error responses. Backend SDK errors
// can echo request URLs, headers, or connection strings, so every error that
// leaves the generation pipeline passes through here first.
package redact

import (
	"regexp"
)

// Constants for redaction placeholders
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules are applied in order. Specific token shapes come before the generic
// key=value rule so the placeholder names the kind of secret.
var rules = []rule{
	// Connection strings keep scheme and host but lose user info.
	{
		pattern:     regexp.MustCompile(`(?i)\b(postgres(?:ql)?|mysql|redis|mongodb)://[^@\s/]+@`),
		replacement: "${1}://" + RedactedCredentialPlaceholder + "@",
	},
	{
		pattern:     regexp.MustCompile(`(?i)\bBearer\s+[A-Za-z0-9._~+/=-]{8,}`),
		replacement: "Bearer " + RedactedCredentialPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
		replacement: RedactedJWTPlaceholder,
	},
	// OpenAI and DeepSeek style keys.
	{
		pattern:     regexp.MustCompile(`\bsk-[A-Za-z0-9_-]{8,}`),
		replacement: RedactedKeyPlaceholder,
	},
	// Google API keys.
	{
		pattern:     regexp.MustCompile(`\bAIza[0-9A-Za-z_-]{20,}`),
		replacement: RedactedKeyPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\b(api[_-]?key|key|token|secret|password|jwt_secret)(["']?\s*[:=]\s*["']?)[^\s"'&,]{6,}`),
		replacement: "${1}${2}" + RedactedKeyPlaceholder,
	},
}

// String redacts sensitive information from the input string
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

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
