// Package remote talks to an external hotel/reservation HTTP API. There is no
// retry and no client timeout: the caller's context bounds every call.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"hotel_booking/internal/adapters/observability"
)

const service = "hotel_api"

var ErrNotFound = errors.New("remote: not found")

// StatusError is any non-2xx answer other than 404.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string { return fmt.Sprintf("remote: http %d", e.Code) }

type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
	sem  *semaphore.Weighted
}

// New builds a client for base (no trailing slash needed). rps limits the
// request rate and maxInFlight caps concurrent calls.
func New(base string, rps, maxInFlight int) *Client {
	if rps <= 0 {
		rps = 10
	}
	if maxInFlight <= 0 {
		maxInFlight = 4
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
		sem:  semaphore.NewWeighted(int64(maxInFlight)),
	}
}

// do sends body (if any) as JSON and decodes a 2xx answer into out (if any).
// endpoint is the metrics label.
func (c *Client) do(ctx context.Context, method, endpoint, path string, body, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer c.sem.Release(1)

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("remote: encode %s: %w", endpoint, err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "hotel-booking/1.0")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal(service, endpoint, 0, time.Since(start))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	defer resp.Body.Close()
	observability.ObserveExternal(service, endpoint, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		// read a small error body for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	case out == nil || resp.StatusCode == http.StatusNoContent:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("remote: decode %s: %w", endpoint, err)
	}
	return nil
}
