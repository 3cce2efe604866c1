package risk

import (
	"encoding/json"
	"testing"

	"github.com/gzhole/modelgate/internal/message"
)

func TestClassify(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		input        string
		wantLevel    Level
		wantCategory string
	}{
		{"hello world", Low, "General"},
		{"I need to fire an employee", High, "HR Decision"},
		{"this document is confidential", High, "Proprietary Information"},
		{"should I invest my bonus in index funds", High, "Financial Advice"},
		{"what does this symptom mean", High, "Medical Advice"},
		{"help me draft a release announcement", Low, "General"},
	}

	for _, tt := range tests {
		level, category := c.Classify(message.New(tt.input))
		if level != tt.wantLevel || category != tt.wantCategory {
			t.Errorf("Classify(%q) = (%s, %q), want (%s, %q)",
				tt.input, level, category, tt.wantLevel, tt.wantCategory)
		}
	}
}

func TestClassify_CaseFolded(t *testing.T) {
	c := NewClassifier()

	level, category := c.Classify(message.New("This Is CONFIDENTIAL material"))
	if level != High || category != "Proprietary Information" {
		t.Errorf("got (%s, %q), case folding broken", level, category)
	}
}

func TestClassify_FirstRuleWins(t *testing.T) {
	c := NewClassifier()

	// Both proprietary and HR keywords present; proprietary is evaluated
	// first so it must win.
	level, category := c.Classify(message.New("confidential plan to fire the team"))
	if level != High || category != "Proprietary Information" {
		t.Errorf("got (%s, %q), want first matching rule to win", level, category)
	}
}

func TestClassify_ScansAllFragments(t *testing.T) {
	c := NewClassifier()

	msg := message.Message{
		message.Text("please review"),
		message.Payload("attachment://doc-1"),
		message.Text("the layoff list"),
	}
	level, category := c.Classify(msg)
	if level != High || category != "HR Decision" {
		t.Errorf("got (%s, %q), want HR Decision from later fragment", level, category)
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{Low, "LOW"},
		{Medium, "MEDIUM"},
		{High, "HIGH"},
		{Critical, "CRITICAL"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, l := range []Level{Low, Medium, High, Critical} {
		parsed, err := ParseLevel(l.String())
		if err != nil || parsed != l {
			t.Errorf("ParseLevel(%q) = (%v, %v), want (%v, nil)", l.String(), parsed, err, l)
		}
	}

	if _, err := ParseLevel("SEVERE"); err == nil {
		t.Error("ParseLevel(SEVERE) should fail")
	}
}

func TestLevelJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(High)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"HIGH"` {
		t.Errorf("marshal = %s, want \"HIGH\"", data)
	}

	var l Level
	if err := json.Unmarshal(data, &l); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if l != High {
		t.Errorf("round trip = %v, want High", l)
	}
}
