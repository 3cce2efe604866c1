package redact

import (
	"reflect"
	"strings"
	"testing"

	"github.com/gzhole/modelgate/internal/message"
)

func TestRedact_Email(t *testing.T) {
	tests := []struct {
		input    string
		contains string
	}{
		{"my email is jane.doe@example.com", "[REDACTED_EMAIL]"},
		{"contact a@b.co or c@d.org today", "[REDACTED_EMAIL]"},
		{"Email: admin+alerts@corp.example.io", "[REDACTED_EMAIL]"},
	}

	for _, tt := range tests {
		out, redacted, reasons := Redact(message.New(tt.input))
		text := out.JoinedText(" ")
		if !strings.Contains(text, tt.contains) {
			t.Errorf("Redact(%q) = %q, expected to contain %q", tt.input, text, tt.contains)
		}
		if strings.Contains(text, "@") {
			t.Errorf("Redact(%q) = %q, raw address survived", tt.input, text)
		}
		if !redacted {
			t.Errorf("Redact(%q): redacted = false, want true", tt.input)
		}
		if len(reasons) != 1 || reasons[0] != "email address" {
			t.Errorf("Redact(%q) reasons = %v, want [email address]", tt.input, reasons)
		}
	}
}

func TestRedact_AllMatchesReplaced(t *testing.T) {
	out, _, _ := Redact(message.New("a@b.com then c@d.com then e@f.com"))
	text := out.JoinedText(" ")
	if got := strings.Count(text, "[REDACTED_EMAIL]"); got != 3 {
		t.Errorf("expected 3 email placeholders, got %d in %q", got, text)
	}
}

func TestRedact_PhoneFormats(t *testing.T) {
	tests := []string{
		"call me at 5551234567",
		"call me at 555-123-4567",
		"call me at 555.123.4567",
	}

	for _, input := range tests {
		out, redacted, _ := Redact(message.New(input))
		text := out.JoinedText(" ")
		if !redacted || !strings.Contains(text, "[REDACTED_PHONE]") {
			t.Errorf("Redact(%q) = %q, expected phone placeholder", input, text)
		}
	}
}

func TestRedact_EmployeeID(t *testing.T) {
	out, redacted, reasons := Redact(message.New("ask EMP00423 about the badge"))
	text := out.JoinedText(" ")
	if !redacted || !strings.Contains(text, "[REDACTED_EMPLOYEE_ID]") {
		t.Errorf("employee id not redacted: %q", text)
	}
	if len(reasons) != 1 || reasons[0] != "employee ID" {
		t.Errorf("reasons = %v, want [employee ID]", reasons)
	}

	// Too few digits must not match.
	out, redacted, _ = Redact(message.New("room EMP123 is free"))
	if redacted {
		t.Errorf("EMP123 should not be treated as an employee id: %q", out.JoinedText(" "))
	}
}

func TestRedact_PaymentCard(t *testing.T) {
	tests := []string{
		"card 4111111111111111 expires soon",
		"card 4111-1111-1111-1111 expires soon",
		"card 4111 1111 1111 1111 expires soon",
	}

	for _, input := range tests {
		out, redacted, _ := Redact(message.New(input))
		text := out.JoinedText(" ")
		if !redacted || !strings.Contains(text, "[REDACTED_CARD]") {
			t.Errorf("Redact(%q) = %q, expected card placeholder", input, text)
		}
	}
}

func TestRedact_ProjectCodeword(t *testing.T) {
	out, _, reasons := Redact(message.New("status of PROJ-Titan7 please"))
	text := out.JoinedText(" ")
	if !strings.Contains(text, "[REDACTED_PROJECT]") {
		t.Errorf("codeword not redacted: %q", text)
	}
	if len(reasons) != 1 || reasons[0] != "internal project codeword" {
		t.Errorf("reasons = %v", reasons)
	}
}

func TestRedact_MultipleKinds_ReasonOrder(t *testing.T) {
	// Reasons come back in pattern evaluation order regardless of where
	// the matches sit in the text.
	input := "PROJ-Atlas docs went to jane@example.com, card 4111 1111 1111 1111"
	_, _, reasons := Redact(message.New(input))

	want := []string{"email address", "payment card number", "internal project codeword"}
	if !reflect.DeepEqual(reasons, want) {
		t.Errorf("reasons = %v, want %v", reasons, want)
	}
}

func TestRedact_ReasonsDeduplicated(t *testing.T) {
	_, _, reasons := Redact(message.Message{
		message.Text("a@b.com"),
		message.Text("c@d.com"),
	})
	if len(reasons) != 1 {
		t.Errorf("reasons = %v, want a single deduplicated label", reasons)
	}
}

func TestRedact_CleanMessageUnchanged(t *testing.T) {
	msg := message.Message{
		message.Text("hello world"),
		message.Payload("attachment://img-1"),
		message.Text("no sensitive content here"),
	}

	out, redacted, reasons := Redact(msg)
	if redacted {
		t.Error("redacted = true for clean message")
	}
	if len(reasons) != 0 {
		t.Errorf("reasons = %v, want none", reasons)
	}
	if !reflect.DeepEqual(out, msg) {
		t.Errorf("clean message modified: %#v", out)
	}
}

func TestRedact_InputNotMutated(t *testing.T) {
	msg := message.New("write to jane@example.com")
	original := msg.JoinedText(" ")

	Redact(msg)

	if msg.JoinedText(" ") != original {
		t.Error("input message was mutated")
	}
}

func TestRedact_NonTextFragmentsPassThrough(t *testing.T) {
	msg := message.Message{
		message.Payload("attachment://contains@looks-like.email"),
		message.Text("ping ops@corp.com"),
	}

	out, _, _ := Redact(msg)
	if out[0].PayloadRef != "attachment://contains@looks-like.email" {
		t.Errorf("payload fragment modified: %#v", out[0])
	}
	if !strings.Contains(out[1].Text, "[REDACTED_EMAIL]") {
		t.Errorf("text fragment not redacted: %q", out[1].Text)
	}
}

func TestRedact_Idempotent(t *testing.T) {
	once, _, _ := Redact(message.New("reach me at jane@example.com or 555-123-4567"))

	twice, redacted, _ := Redact(once)
	if redacted {
		t.Error("second pass reported redactions over placeholder-only text")
	}
	if !reflect.DeepEqual(twice, once) {
		t.Errorf("second pass changed the message: %q vs %q",
			twice.JoinedText(" "), once.JoinedText(" "))
	}
}

func TestContainsSensitive(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"looks fine to me", false},
		{"leak to eve@attacker.example", true},
		{"EMP99999 was promoted", true},
	}

	for _, tt := range tests {
		got, _ := ContainsSensitive(tt.input)
		if got != tt.want {
			t.Errorf("ContainsSensitive(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
