package vision

import (
	"context"
	"errors"
	"geo-forensics-service/internal/domain"
	"geo-forensics-service/internal/ports"
	"time"
)

// Retrying retries retryable transport failures (throttling, 5xx, network)
// using exponential backoff while respecting context cancellation.
// Refusals and unparseable replies are never retried.
type Retrying struct {
	next     ports.VisionModel
	attempts int
	backoff  time.Duration
}

func NewRetrying(next ports.VisionModel, attempts int, backoff time.Duration) *Retrying {
	if attempts < 1 {
		attempts = 1
	}
	return &Retrying{next: next, attempts: attempts, backoff: backoff}
}

func (r *Retrying) Generate(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	backoff := r.backoff

	var lastErr error

	for attempt := 1; attempt <= r.attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := r.next.Generate(ctx, prompt, image, mimeType)
		if err == nil {
			return text, nil
		}
		lastErr = err

		var te *domain.TransportError
		if !errors.As(err, &te) || !te.Retryable || attempt == r.attempts {
			return "", lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return "", lastErr
}
