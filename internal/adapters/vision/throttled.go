package vision

import (
	"context"
	"fmt"
	"geo-forensics-service/internal/ports"
	"time"

	"golang.org/x/time/rate"
)

// Throttled spaces calls to the wrapped model by at least the cooldown.
// The limiter is shared by every caller, so concurrent batches against the
// same provider are serialized through it as well.
type Throttled struct {
	next    ports.VisionModel
	limiter *rate.Limiter
}

func NewThrottled(next ports.VisionModel, cooldown time.Duration) *Throttled {
	limit := rate.Inf
	if cooldown > 0 {
		limit = rate.Every(cooldown)
	}
	return &Throttled{next: next, limiter: rate.NewLimiter(limit, 1)}
}

func (t *Throttled) Generate(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("vision cooldown: %w", err)
	}
	return t.next.Generate(ctx, prompt, image, mimeType)
}
