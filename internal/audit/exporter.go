package audit

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// Exporter forwards entries to a secondary destination. Export is
// fire-and-forget: implementations must never block the caller or
// surface failures back into the pipeline.
type Exporter interface {
	Export(Entry)
}

// HTTPExporter POSTs each entry as a JSON body to a configured endpoint.
// Failures are logged for operator visibility and otherwise swallowed,
// so audit-trail availability never depends on network reachability.
type HTTPExporter struct {
	endpoint string
	client   *http.Client
}

func NewHTTPExporter(endpoint string) *HTTPExporter {
	return &HTTPExporter{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

func (e *HTTPExporter) Export(entry Entry) {
	go func() {
		body, err := json.Marshal(entry)
		if err != nil {
			log.Printf("audit export: marshal failed: %v", err)
			return
		}

		resp, err := e.client.Post(e.endpoint, "application/json", bytes.NewReader(body))
		if err != nil {
			log.Printf("audit export: POST %s failed: %v", e.endpoint, err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			log.Printf("audit export: POST %s returned %s", e.endpoint, resp.Status)
		}
	}()
}

// WithExport composes a primary sink with a best-effort exporter. The
// primary write runs first and its error propagates; the export outcome
// is never awaited.
func WithExport(primary Sink, exporter Exporter) Sink {
	return &exportingSink{primary: primary, exporter: exporter}
}

type exportingSink struct {
	primary  Sink
	exporter Exporter
}

func (s *exportingSink) Log(entry Entry) error {
	if err := s.primary.Log(entry); err != nil {
		return err
	}
	if s.exporter != nil {
		s.exporter.Export(entry)
	}
	return nil
}
