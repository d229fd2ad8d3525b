package deferredid

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/extradoc/extradoc/internal/reqgen"
	gapi "google.golang.org/api/googleapi"
)

const (
	maxRetries = 5
	baseDelay  = 1 * time.Second
	maxDelay   = 30 * time.Second
)

// BatchExecutor applies one already-resolved batch and returns its replies,
// keyed by request index — the seam an engine embedder supplies (this
// package has no transport of its own).
type BatchExecutor func(ctx context.Context, batch []*reqgen.Record) (BatchReply, error)

// ExecuteWithRetry calls exec and retries on transient Google API errors
// (429 rate limit, 500/502/503 transient server) with exponential backoff
// and jitter, matching the window a reconcile caller should tolerate
// between batches.
func ExecuteWithRetry(ctx context.Context, exec func() error) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := exec()
		if err == nil {
			return nil
		}
		lastErr = err

		if !isRetryableError(err) {
			return err
		}
		if attempt == maxRetries {
			return fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
		}

		delay := baseDelay * time.Duration(1<<uint(attempt))
		if delay > maxDelay {
			delay = maxDelay
		}
		var randBuf [8]byte
		_, _ = rand.Read(randBuf[:])
		halfDelay := int64(delay / 2)
		var jitter time.Duration
		if halfDelay > 0 {
			jitter = time.Duration(binary.LittleEndian.Uint64(randBuf[:]) % uint64(halfDelay))
		}
		delay = delay/2 + jitter

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return lastErr
}

// ApplyAndResolve drives a full batch plan to completion: for each batch
// it resolves placeholders against replies collected so far, hands the
// resolved batch to apply (retrying transient failures), and folds the
// reply into the set the next batch resolves against. Empty batches (all
// their records were placeholder-only and every id they would have
// created was skipped, or the batch legitimately has nothing to send)
// still contribute an empty BatchReply so request indices in later
// batches keep lining up with their target batch's reply slice.
func ApplyAndResolve(ctx context.Context, batches [][]*reqgen.Record, apply BatchExecutor) ([]BatchReply, error) {
	replies := make([]BatchReply, 0, len(batches))
	for i, batch := range batches {
		resolved, err := Resolve(batch, replies)
		if err != nil {
			return nil, fmt.Errorf("resolve batch %d: %w", i, err)
		}
		if len(resolved) == 0 {
			replies = append(replies, BatchReply{})
			continue
		}

		var reply BatchReply
		err = ExecuteWithRetry(ctx, func() error {
			var applyErr error
			reply, applyErr = apply(ctx, resolved)
			return applyErr
		})
		if err != nil {
			return nil, fmt.Errorf("apply batch %d: %w", i, err)
		}
		replies = append(replies, reply)
	}
	return replies, nil
}

// isRetryableError returns true for transient Google API errors that are
// safe to retry with exponential backoff.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *gapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429, 500, 502, 503:
			return true
		}
	}
	errStr := err.Error()
	return strings.Contains(errStr, "rateLimitExceeded") || strings.Contains(errStr, "429")
}
