// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the backend clients.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Doer is the minimal HTTP client interface used by the backend clients.
// *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ErrAllMirrorsFailed is returned by GetWithFallback when every mirror
// answered HTTP 500 and none failed at the transport level.
var ErrAllMirrorsFailed = errors.New("all mirrors returned HTTP 500")

// maxErrorBody bounds how much of a failed response body a StatusError keeps.
const maxErrorBody = 4096

// StatusError reports a non-success HTTP status from a backend.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// NewStatusError builds a StatusError from resp, keeping the head of the
// body for diagnostics. It does not close the body.
func NewStatusError(resp *http.Response) *StatusError {
	e := &StatusError{StatusCode: resp.StatusCode}
	if resp.Request != nil && resp.Request.URL != nil {
		e.URL = resp.Request.URL.Redacted()
	}
	if resp.Body != nil {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		e.Body = string(data)
	}
	return e
}

// StatusCode extracts the HTTP status from err if it wraps a StatusError.
func StatusCode(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode, true
	}
	return 0, false
}

// GetWithFallback issues GET base+path?params against each mirror in order
// and returns the first response whose status is not 500. A transport
// error also moves on to the next mirror. Any other status, including 4xx
// and 5xx other than 500, is returned to the caller without fallback.
//
// When every mirror fails, the last transport error is returned if there
// was one; otherwise ErrAllMirrorsFailed. The caller owns the body of a
// returned response.
func GetWithFallback(ctx context.Context, client Doer, mirrors []string, path string, params url.Values, header http.Header) (*http.Response, error) {
	if len(mirrors) == 0 {
		return nil, fmt.Errorf("no mirrors configured")
	}

	var lastErr error
	for _, base := range mirrors {
		reqURL := strings.TrimRight(base, "/") + path
		if len(params) > 0 {
			reqURL += "?" + params.Encode()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		for k, v := range header {
			req.Header[k] = v
		}

		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusInternalServerError {
			return resp, nil
		}

		// Drain and close the 500 before trying the next mirror.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrAllMirrorsFailed
}
