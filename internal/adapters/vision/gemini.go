package vision

import (
	"context"
	"errors"
	"fmt"
	"geo-forensics-service/internal/domain"
	"geo-forensics-service/internal/platform/obs"
	"net"
	"strings"

	"google.golang.org/genai"
)

// GeminiModel implements ports.VisionModel on the Gemini API.
// It performs exactly one GenerateContent call per Generate; throttling and
// retries are layered on top with Throttled and Retrying.
type GeminiModel struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

func NewGeminiModel(ctx context.Context, apiKey string, model string) (*GeminiModel, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &domain.ConfigError{Key: "GEMINI_API_KEY"}
	}
	if strings.TrimSpace(model) == "" {
		return nil, &domain.ConfigError{Key: "GEMINI_MODEL"}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiModel{
		client: client,
		model:  model,
		// Low temperature keeps the reply close to the requested JSON shape.
		config: &genai.GenerateContentConfig{
			Temperature:     genai.Ptr(float32(0.2)),
			MaxOutputTokens: int32(2048),
		},
	}, nil
}

func (g *GeminiModel) Generate(
	ctx context.Context,
	prompt string,
	image []byte,
	mimeType string,
) (_ string, err error) {
	defer obs.Time(ctx, "gemini.Generate")(&err)

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(image, mimeType),
		}, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, g.config)
	if err != nil {
		return "", classify(err)
	}

	if reason := refusalReason(resp); reason != "" {
		return "", fmt.Errorf("gemini %s: %w", reason, domain.ErrModelRefusal)
	}

	return resp.Text(), nil
}

// refusalReason reports why Gemini blocked the prompt or the answer, or "".
func refusalReason(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	if pf := resp.PromptFeedback; pf != nil && pf.BlockReason != "" {
		return "prompt blocked: " + string(pf.BlockReason)
	}
	for _, c := range resp.Candidates {
		if c == nil {
			continue
		}
		switch c.FinishReason {
		case genai.FinishReasonSafety,
			genai.FinishReasonProhibitedContent,
			genai.FinishReasonBlocklist,
			genai.FinishReasonSPII:
			return "answer blocked: " + string(c.FinishReason)
		}
	}
	return ""
}

// classify wraps a client error as a TransportError, marking throttling,
// server errors, and network failures as retryable.
func classify(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	code := 0
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Code
	case errors.As(err, &apiErrPtr):
		code = apiErrPtr.Code
	}

	retry := false
	switch code {
	case 429, 500, 502, 503, 504:
		retry = true
	}

	var netErr net.Error
	if !retry && errors.As(err, &netErr) {
		retry = true
	}

	return &domain.TransportError{Op: "gemini generate content", Err: err, Retryable: retry}
}
