// Package http provides an HTTP-based implementation of
// docdrift.LinkValidator: bounded-concurrency reachability probes with a
// lightweight HEAD check, a GET fallback, and retry on network failures.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/murogrande/docdrift"
)

// Defaults. The concurrency bound exists to avoid overwhelming target
// servers and to bound local resource usage, not for correctness.
const (
	DefaultProbeTimeout = 10 * time.Second
	DefaultConcurrency  = 5
	DefaultDomainRPS    = 4.0
)

// A desktop browser User-Agent. Several documentation hosts reject
// obvious programmatic clients outright.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultRetryDelays returns the backoff delays applied to network-level
// probe failures before an error verdict is given: 1s, 2s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second}
}

// Compile-time interface verification.
var _ docdrift.LinkValidator = (*Validator)(nil)

// Validator probes external links over HTTP. Verdicts are cached per URL
// for the lifetime of the Validator, so a URL referenced from many
// artifacts is probed once per run.
type Validator struct {
	client      *http.Client
	timeout     time.Duration
	concurrency int
	retryDelays []time.Duration
	userAgent   string
	skipDomains map[string]struct{}
	limiter     *domainLimiter

	// cache is written only between probe batches; concurrent probes
	// within a batch target distinct URLs and report through a channel,
	// so no locking is needed.
	cache map[string]docdrift.LinkVerdict
}

// Option configures a Validator.
type Option func(*Validator)

// WithTimeout sets the per-probe timeout.
func WithTimeout(d time.Duration) Option {
	return func(v *Validator) { v.timeout = d }
}

// WithConcurrency bounds the number of concurrently in-flight probes.
// A bound of 1 degrades to sequential probing on the same code path.
func WithConcurrency(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.concurrency = n
		}
	}
}

// WithRetryDelays sets the backoff delays for network-failure retries.
// Pass an empty slice to disable retries.
func WithRetryDelays(delays []time.Duration) Option {
	return func(v *Validator) { v.retryDelays = delays }
}

// WithSkipDomains supplies hosts that must not be probed at all, e.g.
// login-walled workspaces. Skipped URLs receive no verdict.
func WithSkipDomains(domains []string) Option {
	return func(v *Validator) {
		for _, d := range domains {
			v.skipDomains[d] = struct{}{}
		}
	}
}

// WithDomainRPS sets the per-domain probe rate.
func WithDomainRPS(rps float64) Option {
	return func(v *Validator) {
		if rps > 0 {
			v.limiter = newDomainLimiter(rps)
		}
	}
}

// WithTransport overrides the HTTP transport, for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(v *Validator) { v.client.Transport = rt }
}

// NewValidator creates a Validator.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{
		client:      &http.Client{},
		timeout:     DefaultProbeTimeout,
		concurrency: DefaultConcurrency,
		retryDelays: DefaultRetryDelays(),
		userAgent:   defaultUserAgent,
		skipDomains: make(map[string]struct{}),
		limiter:     newDomainLimiter(DefaultDomainRPS),
		cache:       make(map[string]docdrift.LinkVerdict),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate implements docdrift.LinkValidator. The URL set is deduplicated
// before dispatch; at most the configured number of probes are in flight
// at once, and one probe's failure never aborts its siblings. The
// returned mapping is complete when Validate returns: callers never see
// partial results.
func (v *Validator) Validate(ctx context.Context, urls []string) map[string]docdrift.LinkVerdict {
	out := make(map[string]docdrift.LinkVerdict)
	var pending []string
	queued := make(map[string]struct{})

	for _, u := range urls {
		if verdict, ok := v.cache[u]; ok {
			out[u] = verdict
			continue
		}
		if _, dup := queued[u]; dup {
			continue
		}
		if v.skip(u) {
			continue
		}
		queued[u] = struct{}{}
		pending = append(pending, u)
	}
	if len(pending) == 0 {
		return out
	}

	resultCh := make(chan docdrift.LinkVerdict, len(pending))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.concurrency)
	for _, u := range pending {
		g.Go(func() error {
			resultCh <- v.probe(gctx, u)
			return nil
		})
	}
	_ = g.Wait()
	close(resultCh)

	for verdict := range resultCh {
		v.cache[verdict.URL] = verdict
		out[verdict.URL] = verdict
	}
	return out
}

func (v *Validator) skip(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	_, ok := v.skipDomains[parsed.Host]
	return ok
}

// probe checks one URL, retrying network-level failures with backoff.
// HTTP responses, whatever the status, are authoritative and are not
// retried.
func (v *Validator) probe(ctx context.Context, rawURL string) docdrift.LinkVerdict {
	if parsed, err := url.Parse(rawURL); err == nil {
		if err := v.limiter.wait(ctx, parsed.Host); err != nil {
			return docdrift.LinkVerdict{URL: rawURL, Status: docdrift.LinkError, Reason: err.Error()}
		}
	}

	var lastErr error
	for attempt := 0; ; attempt++ {
		status, err := v.request(ctx, rawURL)
		if err == nil {
			return verdictFor(rawURL, status)
		}
		lastErr = err

		if attempt >= len(v.retryDelays) {
			break
		}
		select {
		case <-ctx.Done():
			return docdrift.LinkVerdict{URL: rawURL, Status: docdrift.LinkError, Reason: ctx.Err().Error()}
		case <-time.After(v.retryDelays[attempt]):
		}
	}
	return docdrift.LinkVerdict{URL: rawURL, Status: docdrift.LinkError, Reason: lastErr.Error()}
}

// request issues the HEAD probe and falls back to GET when the server
// rejects the method itself.
func (v *Validator) request(ctx context.Context, rawURL string) (int, error) {
	status, err := v.do(ctx, http.MethodHead, rawURL)
	if err != nil {
		return 0, err
	}
	if status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented {
		return v.do(ctx, http.MethodGet, rawURL)
	}
	return status, nil
}

func (v *Validator) do(ctx context.Context, method, rawURL string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", v.userAgent)

	resp, err := v.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	return resp.StatusCode, nil
}

// verdictFor applies the status-code policy: 2xx/3xx ok; 403 and 429 ok
// (the link is reachable, the response indicates bot-blocking, not
// absence); everything else broken.
func verdictFor(rawURL string, status int) docdrift.LinkVerdict {
	verdict := docdrift.LinkVerdict{URL: rawURL, StatusCode: status}
	switch {
	case status >= 200 && status < 400:
		verdict.Status = docdrift.LinkOK
	case status == http.StatusForbidden || status == http.StatusTooManyRequests:
		verdict.Status = docdrift.LinkOK
	default:
		verdict.Status = docdrift.LinkBroken
		verdict.Reason = fmt.Sprintf("HTTP %d", status)
	}
	return verdict
}
