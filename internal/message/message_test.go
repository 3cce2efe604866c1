package message

import (
	"reflect"
	"testing"
)

func TestJoinedText(t *testing.T) {
	msg := Message{
		Text("hello"),
		Payload("attachment://img-1"),
		Text("world"),
	}

	if got := msg.JoinedText(" "); got != "hello world" {
		t.Errorf("JoinedText = %q, want %q", got, "hello world")
	}
}

func TestJoinedText_Empty(t *testing.T) {
	if got := (Message{}).JoinedText(" "); got != "" {
		t.Errorf("JoinedText of empty message = %q", got)
	}
	if got := (Message{Payload("ref")}).JoinedText(" "); got != "" {
		t.Errorf("JoinedText of payload-only message = %q", got)
	}
}

func TestClone_Independent(t *testing.T) {
	msg := Message{Text("original")}
	clone := msg.Clone()

	clone[0].Text = "changed"

	if msg[0].Text != "original" {
		t.Error("mutating the clone changed the original")
	}
	if !reflect.DeepEqual(msg.Clone(), msg) {
		t.Error("clone is not equal to its source")
	}
}

func TestHasText(t *testing.T) {
	tests := []struct {
		msg  Message
		want bool
	}{
		{nil, false},
		{Message{}, false},
		{Message{Payload("ref")}, false},
		{Message{Text("")}, false},
		{Message{Payload("ref"), Text("hi")}, true},
	}

	for _, tt := range tests {
		if got := tt.msg.HasText(); got != tt.want {
			t.Errorf("HasText(%#v) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}
