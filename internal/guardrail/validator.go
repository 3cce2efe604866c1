// Package guardrail inspects generated responses for policy violations
// before they reach the user.
package guardrail

import (
	"fmt"

	"github.com/gzhole/modelgate/internal/message"
	"github.com/gzhole/modelgate/internal/redact"
	"github.com/gzhole/modelgate/internal/risk"
)

// Decision is the validator's verdict on a generated response.
type Decision string

const (
	DecisionApproved Decision = "APPROVED"
	DecisionBlocked  Decision = "BLOCKED"
	DecisionFlagged  Decision = "FLAGGED_FOR_REVIEW"
)

// Validate inspects a response against the risk level carried over from
// the request phase. The leak scan is unconditional and takes precedence
// over everything else; a clean response from a high-risk request is
// flagged for human review rather than blocked. The response is never
// mutated.
func Validate(response message.Message, level risk.Level) (Decision, string) {
	text := response.JoinedText(" ")
	if text == "" {
		return DecisionApproved, ""
	}

	if leaked, kind := redact.ContainsSensitive(text); leaked {
		return DecisionBlocked, fmt.Sprintf("sensitive data detected in output (%s)", kind)
	}

	if level == risk.High {
		return DecisionFlagged, "high-risk category requires human review"
	}

	return DecisionApproved, ""
}
