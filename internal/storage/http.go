package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout is the default download timeout.
const DefaultTimeout = 30 * time.Second

// HTTPStore reads objects from a Supabase-style storage API:
// GET <base>/storage/v1/object/<bucket>/<path>.
type HTTPStore struct {
	BaseURL    string
	Bucket     string
	ServiceKey string
	Client     *http.Client
}

// NewHTTPStore creates a store for one bucket.
func NewHTTPStore(baseURL, bucket, serviceKey string) *HTTPStore {
	return &HTTPStore{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Bucket:     bucket,
		ServiceKey: serviceKey,
		Client:     &http.Client{Timeout: DefaultTimeout},
	}
}

// ObjectURL returns the download URL for path, escaping each segment.
func (s *HTTPStore) ObjectURL(path string) string {
	segments := strings.Split(strings.TrimLeft(path, "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return fmt.Sprintf("%s/storage/v1/object/%s/%s", s.BaseURL, url.PathEscape(s.Bucket), strings.Join(segments, "/"))
}

// Download retrieves the object at path.
func (s *HTTPStore) Download(ctx context.Context, path string) ([]byte, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &Error{Path: path, Message: "empty path"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.ObjectURL(path), nil)
	if err != nil {
		return nil, &Error{Path: path, Message: "failed to create request", Cause: err}
	}
	if s.ServiceKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.ServiceKey)
		req.Header.Set("apikey", s.ServiceKey)
	}

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{Path: path, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &Error{Path: path, Message: "HTTP status 404", Cause: ErrNotFound}
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &Error{Path: path, Message: fmt.Sprintf("HTTP status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxObjectBytes+1))
	if err != nil {
		return nil, &Error{Path: path, Message: "failed to read response body", Cause: err}
	}
	if len(data) > MaxObjectBytes {
		return nil, &Error{Path: path, Message: fmt.Sprintf("object exceeds %d bytes", MaxObjectBytes)}
	}

	log.Printf("[storage] downloaded %s (%d bytes)", path, len(data))
	return data, nil
}
