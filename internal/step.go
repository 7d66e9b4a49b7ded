package internal

import (
	"context"
	"eghl/entity"
	"fmt"
	"github.com/pkg/errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultMaxBodyBytes = 1 << 20

// HTTPDoer is the transport used for gateway round-trips; *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient returns the default gateway transport with timeouts and connection pooling.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}

// StepExecutor performs one form POST of the redirect chain. It never retries.
type StepExecutor struct {
	client       HTTPDoer
	maxBodyBytes int64
}

func NewStepExecutor(client HTTPDoer, maxBodyBytes int64) *StepExecutor {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &StepExecutor{client: client, maxBodyBytes: maxBodyBytes}
}

// Post submits fields to target and returns the raw response body.
func (s *StepExecutor) Post(ctx context.Context, target string, fields entity.Fields) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(fields.Encode()))
	if err != nil {
		return "", transportError("create http request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", transportError("request timeout or cancelled", errors.Wrap(ctx.Err(), target))
		}
		return "", transportError("post request", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(response.Body)

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return "", transportError(fmt.Sprintf("unexpected http status %d", response.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, s.maxBodyBytes+1))
	if err != nil {
		return "", transportError("read response body", err)
	}
	if int64(len(body)) > s.maxBodyBytes {
		return "", transportError(fmt.Sprintf("response body exceeds %d bytes", s.maxBodyBytes), nil)
	}
	return string(body), nil
}

// resolveAction resolves a form action against the URL of the page that carried it.
func resolveAction(base, action string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", errors.Wrap(err, "parse step url")
	}
	actionURL, err := url.Parse(strings.TrimSpace(action))
	if err != nil {
		return "", errors.Wrap(err, "parse form action")
	}
	resolved := baseURL.ResolveReference(actionURL)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", errors.Errorf("unsupported action scheme %q", resolved.Scheme)
	}
	return resolved.String(), nil
}
