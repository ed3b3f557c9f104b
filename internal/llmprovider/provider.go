// Package llmprovider defines the answer-generation provider contract and a
// deterministic mock implementation used by tests and local development.
package llmprovider

import (
	"context"
	"errors"
)

// ErrTransient marks a provider failure the caller should retry once before
// surfacing a hard-external error.
var ErrTransient = errors.New("llmprovider: transient failure")

// Provider generates a completion from a system directive and a user block.
// Implementations must never return an empty string alongside a nil error.
type Provider interface {
	Complete(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error)
}

// CompleteWithRetry calls p.Complete once, and on a transient error retries
// exactly once before giving up. Non-transient errors are not retried.
func CompleteWithRetry(ctx context.Context, p Provider, system, user string, maxTokens int, temperature float64) (string, error) {
	answer, err := p.Complete(ctx, system, user, maxTokens, temperature)
	if err == nil {
		return answer, nil
	}
	if !errors.Is(err, ErrTransient) {
		return "", err
	}
	return p.Complete(ctx, system, user, maxTokens, temperature)
}
