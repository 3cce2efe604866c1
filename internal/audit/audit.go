// Package audit persists one structured record per governance
// transaction. The primary sink is an append-only JSONL file; durability
// of that write is a hard requirement. A secondary exporter may forward
// entries elsewhere on a best-effort basis.
package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/gzhole/modelgate/internal/message"
	"github.com/gzhole/modelgate/internal/risk"
)

// ErrWrite marks a failed primary audit write. Callers distinguish it
// with errors.Is because a transaction that cannot be recorded must not
// proceed silently.
var ErrWrite = errors.New("audit write failed")

// Markers recorded in the Output field. The raw model output is never
// persisted here; it is subject to a separate retention policy.
const (
	OutputPresent = "[output captured]"
	OutputAbsent  = "[no output]"
)

// Entry is the serialized projection of one transaction.
type Entry struct {
	Timestamp         string          `json:"timestamp"`
	UserID            string          `json:"userId"`
	RequestID         string          `json:"requestId"`
	RiskLevel         risk.Level      `json:"riskLevel"`
	RiskCategory      string          `json:"riskCategory"`
	ModelVersion      string          `json:"modelVersion"`
	ModelParams       map[string]any  `json:"modelParams"`
	GuardrailDecision string          `json:"guardrailDecision,omitempty"`
	Justification     string          `json:"justification"`
	InputRedacted     message.Message `json:"inputRedacted"`
	Output            string          `json:"output"`
}

// Sink records entries durably.
type Sink interface {
	Log(Entry) error
}

// FileSink appends one JSON line per entry to a single growing file.
// Safe for concurrent use: each Log call performs one atomic whole-line
// append under the mutex.
type FileSink struct {
	file *os.File
	mu   sync.Mutex
}

func NewFileSink(path string) (*FileSink, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return &FileSink{file: file}, nil
}

func (s *FileSink) Log(entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	data = append(data, '\n')
	if _, err := s.file.Write(data); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

func (s *FileSink) Close() error {
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}

// ReadEntries parses an audit log file back into entries. Malformed
// lines are skipped so a partially corrupted log remains inspectable.
func ReadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []Entry
	for _, line := range splitLines(data) {
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func splitLines(data []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i, b := range data {
		if b == '\n' {
			lines = append(lines, data[start:i])
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, data[start:])
	}
	return lines
}
