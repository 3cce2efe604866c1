// Package pipeline implements the governance interception layer placed
// between the host assistant and the model backend. Every outbound
// request passes through InterceptRequest (redaction, risk
// classification, policy gate) and every completed response through
// InterceptResponse (guardrail validation, audit).
package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gzhole/modelgate/internal/audit"
	"github.com/gzhole/modelgate/internal/guardrail"
	"github.com/gzhole/modelgate/internal/message"
	"github.com/gzhole/modelgate/internal/policy"
	"github.com/gzhole/modelgate/internal/redact"
	"github.com/gzhole/modelgate/internal/risk"
)

// Transaction tracks one request/response pair through both pipeline
// phases. It is created by InterceptRequest, mutated in place through
// InterceptResponse, and owned by the orchestrator for its lifetime.
type Transaction struct {
	ID        string
	UserID    string
	CreatedAt time.Time

	Input message.Message
	// RedactedInput is what actually goes to the model and into the
	// audit trail. Equal to Input when redaction is disabled or found
	// nothing.
	RedactedInput message.Message
	WasRedacted   bool

	RiskLevel    risk.Level
	RiskCategory string

	ModelVersion string
	ModelParams  map[string]any

	Response *message.Message
	Decision guardrail.Decision

	// Justification accumulates across phases and is never overwritten.
	Justification string
}

func (t *Transaction) appendJustification(s string) {
	if s == "" {
		return
	}
	if t.Justification == "" {
		t.Justification = s
		return
	}
	t.Justification += "; " + s
}

func (t *Transaction) auditEntry() audit.Entry {
	output := audit.OutputAbsent
	if t.Response != nil {
		output = audit.OutputPresent
	}
	return audit.Entry{
		Timestamp:         t.CreatedAt.UTC().Format(time.RFC3339),
		UserID:            t.UserID,
		RequestID:         t.ID,
		RiskLevel:         t.RiskLevel,
		RiskCategory:      t.RiskCategory,
		ModelVersion:      t.ModelVersion,
		ModelParams:       t.ModelParams,
		GuardrailDecision: string(t.Decision),
		Justification:     t.Justification,
		InputRedacted:     t.RedactedInput,
		Output:            output,
	}
}

// RequestOutcome is the request-phase gate result. Proceed false with
// RequiresApproval true means the caller should obtain human approval
// and re-drive the request phase with approval granted; Proceed false
// otherwise is a terminal denial described by Reason.
type RequestOutcome struct {
	Tx               *Transaction
	Proceed          bool
	RequiresApproval bool
	Reason           string
}

// ResponseOutcome is the response-phase result. When the decision is
// FLAGGED_FOR_REVIEW, Response carries the annotated copy with the
// governance banner prepended; otherwise it is the response as given.
type ResponseOutcome struct {
	Response message.Message
	Proceed  bool
	Decision guardrail.Decision
	Reason   string
}

// Orchestrator sequences the interception pipeline. It holds no mutable
// state across calls beyond the read-only policy and the sink, so it is
// safe for concurrent use from any number of caller goroutines.
type Orchestrator struct {
	policy     policy.Policy
	classifier *risk.Classifier
	sink       audit.Sink
	userID     string

	now   func() time.Time
	newID func() string
}

// Option overrides orchestrator internals, primarily for tests.
type Option func(*Orchestrator)

func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(o *Orchestrator) { o.newID = newID }
}

func New(pol policy.Policy, sink audit.Sink, userID string, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		policy:     pol,
		classifier: risk.NewClassifier(),
		sink:       sink,
		userID:     userID,
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Policy returns the orchestrator's active policy (for inspection).
func (o *Orchestrator) Policy() policy.Policy {
	return o.policy
}

// InterceptRequest runs the request phase: redaction, classification,
// then the policy gate. A hard policy block is the only request-phase
// outcome that writes an audit entry; the approval branch writes nothing
// until the caller re-drives the phase and the transaction completes.
// The error return is reserved for primary audit failures
// (errors.Is(err, audit.ErrWrite)); policy denials are data.
func (o *Orchestrator) InterceptRequest(msg message.Message, modelID string, params map[string]any, approvalGranted bool) (*RequestOutcome, error) {
	tx := &Transaction{
		ID:            o.newID(),
		UserID:        o.userID,
		CreatedAt:     o.now(),
		Input:         msg,
		RedactedInput: msg,
		ModelVersion:  modelID,
		ModelParams:   params,
	}

	if o.policy.PIIRedaction {
		redacted, wasRedacted, reasons := redact.Redact(msg)
		tx.RedactedInput = redacted
		tx.WasRedacted = wasRedacted
		if wasRedacted {
			tx.appendJustification("PII Redacted: " + strings.Join(reasons, ", "))
		}
	}

	tx.RiskLevel, tx.RiskCategory = o.classifier.Classify(tx.RedactedInput)

	if o.policy.BlockHighRisk && tx.RiskLevel == risk.High {
		tx.Decision = guardrail.DecisionBlocked
		tx.appendJustification(fmt.Sprintf("blocked by policy: high-risk request (%s)", tx.RiskCategory))
		outcome := &RequestOutcome{
			Tx:     tx,
			Reason: fmt.Sprintf("request blocked: %s is classified high risk", tx.RiskCategory),
		}
		if err := o.sink.Log(tx.auditEntry()); err != nil {
			return outcome, err
		}
		return outcome, nil
	}

	if o.policy.RequireApprovalHighRisk && tx.RiskLevel == risk.High && !approvalGranted {
		return &RequestOutcome{
			Tx:               tx,
			RequiresApproval: true,
			Reason:           fmt.Sprintf("high-risk request (%s) requires approval", tx.RiskCategory),
		}, nil
	}

	if approvalGranted && tx.RiskLevel == risk.High {
		tx.appendJustification("human approval granted")
	}

	return &RequestOutcome{Tx: tx, Proceed: true}, nil
}

// InterceptResponse runs the response phase: guardrail validation, then
// the unconditional audit write, then the decision. Every completed
// transaction produces exactly one entry here.
func (o *Orchestrator) InterceptResponse(tx *Transaction, response message.Message) (*ResponseOutcome, error) {
	tx.Response = &response

	decision, reason := guardrail.Validate(response, tx.RiskLevel)
	tx.Decision = decision
	tx.appendJustification(reason)

	err := o.sink.Log(tx.auditEntry())

	outcome := &ResponseOutcome{
		Response: response,
		Decision: decision,
		Reason:   reason,
	}

	switch decision {
	case guardrail.DecisionBlocked:
		outcome.Proceed = false
	case guardrail.DecisionFlagged:
		outcome.Proceed = true
		outcome.Response = withReviewBanner(response, tx.RiskCategory)
	default:
		outcome.Proceed = true
	}

	return outcome, err
}

// withReviewBanner prepends the human-review notice onto the first text
// fragment, or inserts a new leading fragment when the response starts
// with a non-text payload. Streamed output cannot be retracted once
// shown, so flagged responses are annotated rather than withheld.
func withReviewBanner(response message.Message, category string) message.Message {
	banner := fmt.Sprintf("⚠ GOVERNANCE NOTICE: this response relates to a high-risk topic (%s) and has been flagged for human review.\n\n", category)

	out := response.Clone()
	if len(out) > 0 && out[0].IsText() {
		out[0].Text = banner + out[0].Text
		return out
	}
	return append(message.Message{message.Text(banner)}, out...)
}
