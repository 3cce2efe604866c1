// Package message defines the content model exchanged with the model
// backend. A Message is an ordered list of fragments; each fragment is
// either free text or a reference to a non-text payload (image, file
// attachment). Every pipeline stage preserves fragment order and leaves
// non-text fragments untouched.
package message

import "strings"

type FragmentKind string

const (
	KindText    FragmentKind = "text"
	KindPayload FragmentKind = "payload"
)

type Fragment struct {
	Kind FragmentKind `json:"kind"`
	// Text holds the fragment content when Kind is "text".
	Text string `json:"text,omitempty"`
	// PayloadRef is an opaque reference (URI, attachment id) when Kind is
	// "payload". The pipeline never dereferences it.
	PayloadRef string `json:"payload_ref,omitempty"`
}

func (f Fragment) IsText() bool {
	return f.Kind == KindText
}

type Message []Fragment

// Text returns a text fragment.
func Text(s string) Fragment {
	return Fragment{Kind: KindText, Text: s}
}

// Payload returns a non-text fragment holding an opaque reference.
func Payload(ref string) Fragment {
	return Fragment{Kind: KindPayload, PayloadRef: ref}
}

// New builds a single-fragment text message.
func New(s string) Message {
	return Message{Text(s)}
}

// Clone returns an independent copy. Fragments are value types, so a
// shallow slice copy is sufficient.
func (m Message) Clone() Message {
	if m == nil {
		return nil
	}
	out := make(Message, len(m))
	copy(out, m)
	return out
}

// JoinedText concatenates all text fragments with sep, skipping non-text
// fragments. Used to build scan buffers.
func (m Message) JoinedText(sep string) string {
	var parts []string
	for _, f := range m {
		if f.IsText() {
			parts = append(parts, f.Text)
		}
	}
	return strings.Join(parts, sep)
}

// HasText reports whether the message carries any non-empty text content.
func (m Message) HasText() bool {
	for _, f := range m {
		if f.IsText() && f.Text != "" {
			return true
		}
	}
	return false
}
