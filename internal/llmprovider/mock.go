package llmprovider

import (
	"context"
	"fmt"
	"strings"
)

// MockProvider is the explicit, opt-in non-production fallback for answer
// generation: it never calls out to a real model, and instead builds a
// deterministic answer skeleton from the user block so that tests and local
// development can exercise the assembler without network access.
type MockProvider struct{}

// NewMockProvider builds a MockProvider.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// Complete builds a deterministic response addressing every sub-question
// found in user: each line beginning with "Q:" is a sub-question and gets an
// answer line numbered by its position among the sub-questions ("1.", "2.",
// ...). All other lines are ignored.
func (m *MockProvider) Complete(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", ErrTransient, ctx.Err())
	default:
	}

	var b strings.Builder
	n := 0
	for _, line := range strings.Split(user, "\n") {
		if !strings.HasPrefix(strings.TrimSpace(line), "Q:") {
			continue
		}
		n++
		fmt.Fprintf(&b, "%d. Based on the provided context, %s\n", n, strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "Q:")))
	}

	if b.Len() == 0 {
		b.WriteString("Based on the provided context, here is the answer.")
	}

	answer := b.String()
	if len(answer) > maxTokens*4 {
		answer = answer[:maxTokens*4]
	}
	return strings.TrimSpace(answer), nil
}
