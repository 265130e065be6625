package ports

import "context"

// Contract for a vision-capable language model.
type VisionModel interface {
	// Send one instruction and one image, returning the model's free-form text reply.
	// Implementations return domain.ErrModelRefusal when the provider blocks the request.
	Generate(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}
