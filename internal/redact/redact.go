// Package redact removes sensitive fragments from strings before they are
// logged or returned to clients: connection credentials, passwords, JWTs,
// password hashes, SQL text and filesystem paths.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedHashPlaceholder       = "[REDACTED_HASH]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules are applied in order; earlier rules see the raw input.
var rules = []rule{
	{
		pattern:     regexp.MustCompile(`(?i)\b(postgres(?:ql)?|mysql|redis)://[^@\s/]+@`),
		replacement: "${1}://" + RedactedCredentialPlaceholder + "@",
	},
	{
		pattern:     regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`),
		replacement: RedactedJWTPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`\$2[aby]?\$\d{2}\$[./A-Za-z0-9]{53}`),
		replacement: RedactedHashPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)(password|passwd|pwd|secret)(\s*[=:]\s*)['"]?[^'"&\s,]+['"]?`),
		replacement: "${1}${2}" + RedactedCredentialPlaceholder,
	},
	{
		pattern: regexp.MustCompile(
			`(?i)\b(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)\b[\s\w,*().$]+\b(FROM|INTO|SET|TABLE)\b[\s\w,*()='"$.]*`,
		),
		replacement: RedactedSQLPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(/[\w.-]+){2,}`),
		replacement: RedactedPathPlaceholder,
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
