package rpc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"net"
	"strings"
	"syscall"
	"time"

	"github.com/goran-ethernal/BlockIndexor/pkg/config"
)

const (
	reasonConnection    = "connection"
	reasonNetwork       = "network"
	reasonTimeout       = "timeout"
	reasonRateLimited   = "rate_limited"
	reasonUnavailable   = "unavailable"
	reasonPoolExhausted = "pool_exhausted"

	jitterFraction = 0.25
)

// transientMarkers maps lowercase fragments of node and transport error
// messages to the reason they are retried under. First match wins.
var transientMarkers = []struct {
	reason    string
	fragments []string
}{
	{reasonTimeout, []string{"timeout", "deadline exceeded"}},
	{reasonRateLimited, []string{"429", "too many requests", "rate limit"}},
	{reasonUnavailable, []string{"502", "503", "504", "bad gateway", "service unavailable"}},
	{reasonPoolExhausted, []string{"connection pool", "no available connection"}},
}

// transientReason returns why err is worth another attempt, or "" when
// retrying cannot change the outcome.
func transientReason(err error) string {
	if err == nil || IsNotFoundError(err) {
		return ""
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) {
		return reasonConnection
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return reasonTimeout
		}
		return reasonNetwork
	}

	msg := strings.ToLower(err.Error())
	for _, group := range transientMarkers {
		for _, fragment := range group.fragments {
			if strings.Contains(msg, fragment) {
				return group.reason
			}
		}
	}

	return ""
}

func retryableError(err error) bool {
	return transientReason(err) != ""
}

// backoffPolicy computes the wait between attempts: exponential growth from
// InitialBackoff, capped at MaxBackoff, spread by jitter.
type backoffPolicy struct {
	cfg *config.RetryConfig
	// rand returns a value in [0, 1); 0.5 yields the undisturbed delay
	rand func() float64
}

func newBackoffPolicy(cfg *config.RetryConfig) backoffPolicy {
	return backoffPolicy{cfg: cfg, rand: rand.Float64}
}

// delay returns the wait before the given retry (1 for the first retry).
func (p backoffPolicy) delay(retry int) time.Duration {
	if retry < 1 {
		return 0
	}

	d := float64(p.cfg.InitialBackoff.Duration) * math.Pow(p.cfg.BackoffMultiplier, float64(retry-1))
	d = math.Min(d, float64(p.cfg.MaxBackoff.Duration))
	d *= 1 + (2*p.rand()-1)*jitterFraction

	return time.Duration(math.Max(d, 0))
}

// retryWithBackoff runs fn until it succeeds, fails permanently, runs out of
// attempts or ctx ends. A nil cfg runs fn exactly once.
func retryWithBackoff(ctx context.Context, cfg *config.RetryConfig, method string, fn func() error) error {
	if cfg == nil {
		return fn()
	}
	return runWithPolicy(ctx, cfg.MaxAttempts, newBackoffPolicy(cfg), method, fn)
}

func runWithPolicy(ctx context.Context, maxAttempts int, policy backoffPolicy, method string, fn func() error) error {
	maxAttempts = max(maxAttempts, 1)

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: cancelled before attempt %d: %w", method, attempt, err)
		}

		err := fn()
		if err == nil {
			return nil
		}

		reason := transientReason(err)
		if reason == "" {
			return err
		}
		if attempt == maxAttempts {
			return fmt.Errorf("%s: gave up after %d attempts: %w", method, attempt, err)
		}

		RPCRetryInc(method, reason)

		timer := time.NewTimer(policy.delay(attempt))
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%s: cancelled while backing off (%s): %w", method, reason, ctx.Err())
		}
	}
}
