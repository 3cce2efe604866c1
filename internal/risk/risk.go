// Package risk assigns a coarse risk level and category label to a
// message. Classification is a fixed, ordered keyword-rule table rather
// than a statistical model, so every decision is reproducible from the
// table alone.
package risk

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gzhole/modelgate/internal/message"
)

// Level is an ordered risk classification. The classifier currently only
// produces Low and High; Medium and Critical exist for policy forward
// compatibility.
type Level int

const (
	Low Level = iota
	Medium
	High
	Critical
)

func (l Level) String() string {
	switch l {
	case Low:
		return "LOW"
	case Medium:
		return "MEDIUM"
	case High:
		return "HIGH"
	case Critical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts the wire token back into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LOW":
		return Low, nil
	case "MEDIUM":
		return Medium, nil
	case "HIGH":
		return High, nil
	case "CRITICAL":
		return Critical, nil
	}
	return Low, fmt.Errorf("unknown risk level %q", s)
}

func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *Level) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseLevel(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// GeneralCategory is the category reported when no rule matches.
const GeneralCategory = "General"

type rule struct {
	keywords []string
	category string
}

// Rule order is significant: the first rule with any keyword present in
// the scan buffer wins.
var rules = []rule{
	{
		keywords: []string{"confidential", "proprietary", "trade secret", "internal only", "do not distribute"},
		category: "Proprietary Information",
	},
	{
		keywords: []string{"fire", "terminate employment", "layoff", "lay off", "demote", "disciplinary action", "performance review"},
		category: "HR Decision",
	},
	{
		keywords: []string{"financial advice", "invest", "stock tip", "portfolio", "tax strategy"},
		category: "Financial Advice",
	},
	{
		keywords: []string{"medical advice", "diagnosis", "symptom", "prescription", "treatment plan"},
		category: "Medical Advice",
	},
}

type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify scans the message's concatenated, case-folded text against the
// rule table. Any keyword hit yields High and the rule's category; no hit
// yields Low / General.
func (c *Classifier) Classify(msg message.Message) (Level, string) {
	buffer := strings.ToLower(msg.JoinedText(" "))

	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(buffer, kw) {
				return High, r.category
			}
		}
	}
	return Low, GeneralCategory
}
