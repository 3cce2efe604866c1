// Package redact scans message content for sensitive patterns and
// replaces every match with a non-reversible placeholder token. Each
// pattern kind has exactly one placeholder and one reason label; reasons
// are reported once per kind that fired, in evaluation order.
package redact

import (
	"regexp"

	"github.com/gzhole/modelgate/internal/message"
)

type pattern struct {
	re          *regexp.Regexp
	placeholder string
	reason      string
}

// Evaluation order is fixed and significant: every pattern is applied
// globally to a fragment before the next one runs.
var sensitivePatterns = []pattern{
	{
		re:          regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`),
		placeholder: "[REDACTED_EMAIL]",
		reason:      "email address",
	},
	{
		// 10 digits, ungrouped or grouped area-exchange-line by - or .
		re:          regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`),
		placeholder: "[REDACTED_PHONE]",
		reason:      "phone number",
	},
	{
		re:          regexp.MustCompile(`\bEMP\d{4,}\b`),
		placeholder: "[REDACTED_EMPLOYEE_ID]",
		reason:      "employee ID",
	},
	{
		re:          regexp.MustCompile(`\b\d{4}[ -]?\d{4}[ -]?\d{4}[ -]?\d{4}\b`),
		placeholder: "[REDACTED_CARD]",
		reason:      "payment card number",
	},
	{
		re:          regexp.MustCompile(`\bPROJ-[A-Za-z0-9]+\b`),
		placeholder: "[REDACTED_PROJECT]",
		reason:      "internal project codeword",
	},
}

// Redact returns a sanitized copy of msg. The input is never mutated.
// redacted is true iff at least one replacement occurred anywhere in the
// message; reasons holds one label per pattern kind that fired, in
// evaluation order, deduplicated across fragments.
func Redact(msg message.Message) (out message.Message, redacted bool, reasons []string) {
	out = msg.Clone()
	fired := make([]bool, len(sensitivePatterns))

	for i, frag := range out {
		if !frag.IsText() {
			continue
		}
		text := frag.Text
		for p, pat := range sensitivePatterns {
			if !pat.re.MatchString(text) {
				continue
			}
			text = pat.re.ReplaceAllString(text, pat.placeholder)
			fired[p] = true
			redacted = true
		}
		out[i].Text = text
	}

	for p, hit := range fired {
		if hit {
			reasons = append(reasons, sensitivePatterns[p].reason)
		}
	}
	return out, redacted, reasons
}

// RedactText is a convenience over Redact for plain strings.
func RedactText(s string) (string, bool, []string) {
	out, redacted, reasons := Redact(message.New(s))
	return out.JoinedText(" "), redacted, reasons
}

// ContainsSensitive reports whether s matches any sensitive pattern.
// Used by the guardrail validator on the response path, where detection
// matters but replacement does not.
func ContainsSensitive(s string) (bool, string) {
	for _, pat := range sensitivePatterns {
		if pat.re.MatchString(s) {
			return true, pat.reason
		}
	}
	return false, ""
}
