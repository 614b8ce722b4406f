package corezoid

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/petrijr/corezoid/pkg/api"
)

// Transport performs the network exchange for one envelope. The core
// treats it as an opaque, possibly blocking call; retry policy belongs
// to the caller or to a wrapping Transport, never to the client.
//
// Implementations return *api.TransportError on network failure,
// timeout, or a non-2xx status.
type Transport interface {
	Send(ctx context.Context, url string, body []byte, header http.Header) ([]byte, error)
}

// HTTPTransport is the default Transport: a plain HTTP POST using
// net/http with a per-request timeout.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport returns an HTTPTransport whose requests time out
// after the given duration.
func NewHTTPTransport(timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		client: &http.Client{Timeout: timeout},
	}
}

func (t *HTTPTransport) Send(ctx context.Context, url string, body []byte, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &api.TransportError{URL: url, Err: err}
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &api.TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &api.TransportError{URL: url, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &api.TransportError{URL: url, StatusCode: resp.StatusCode}
	}
	return raw, nil
}
