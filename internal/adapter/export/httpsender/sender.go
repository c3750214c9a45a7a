// Package httpsender transmits serialized snapshots to the collector's
// ingest endpoint.
package httpsender

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/klauspost/compress/gzip"

	"github.com/Dyls123/RustStatsExporter/internal/app/ports"
)

const apiKeyHeader = "X-API-Key"

type Sender struct {
	URL    string
	APIKey string
	// Gzip compresses the request body and sets Content-Encoding. Snapshots
	// for a busy server repeat the same counter keys per player, so the
	// payload compresses well.
	Gzip   bool
	Client *http.Client
}

func (s *Sender) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return http.DefaultClient
}

// Send posts the payload. Any non-2xx status, timeout or transport error is
// a failed cycle; no retry happens here.
func (s *Sender) Send(ctx context.Context, payload []byte) error {
	body := payload
	if s.Gzip {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(payload); err != nil {
			return fmt.Errorf("compress payload: %w", err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("compress payload: %w", err)
		}
		body = buf.Bytes()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.Gzip {
		req.Header.Set("Content-Encoding", "gzip")
	}
	if s.APIKey != "" {
		req.Header.Set(apiKeyHeader, s.APIKey)
	}

	resp, err := s.client().Do(req)
	if err != nil {
		return fmt.Errorf("post snapshot: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("collector rejected snapshot: %s", resp.Status)
	}
	return nil
}

var _ ports.SnapshotSender = (*Sender)(nil)
