package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ac_remote_control/internal/logger"
)

// DefaultTimeout bounds a single command round trip.
const DefaultTimeout = 3 * time.Second

// RESTSender posts commands to the device endpoint.
type RESTSender struct {
	url    string
	creds  Credentials
	client *http.Client
	log    *logger.Logger
}

func NewRESTSender(url string, creds Credentials, timeout time.Duration, log *logger.Logger) *RESTSender {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RESTSender{
		url:    url,
		creds:  creds,
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

var _ Sender = (*RESTSender)(nil)

// Send posts p and reports success for any 2xx response.
func (s *RESTSender) Send(ctx context.Context, p Payload) bool {
	s.log.Infow("rest_command_sending", "url", s.url, "payload", p)
	if err := s.post(ctx, p); err != nil {
		s.log.Warnw("rest_command_failed", "url", s.url, "err", err)
		return false
	}
	return true
}

func (s *RESTSender) post(ctx context.Context, p Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(s.creds.Username, s.creds.Password)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", s.url, err)
	}
	defer resp.Body.Close()
	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
