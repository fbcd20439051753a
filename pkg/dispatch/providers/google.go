package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"compliance_tui/pkg/config"
	"compliance_tui/pkg/dispatch"
	"compliance_tui/pkg/response"

	"google.golang.org/genai"
)

const (
	googleDefaultModel   = "gemini-2.5-flash"
	googleDefaultTimeout = 60
)

func init() {
	dispatch.RegisterResponder(dispatch.ResponderInfo{
		Type:        dispatch.ResponderGoogle,
		Name:        "Google Gemini",
		Description: "Structured answers generated by a Gemini model",
		RequiresKey: true,
	}, NewGoogleResponder)
}

type googleModelsClient interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var newGoogleClient = func(ctx context.Context, cfg *genai.ClientConfig) (*genai.Client, error) {
	return genai.NewClient(ctx, cfg)
}

// GoogleResponder asks a Gemini model for a structured response.
type GoogleResponder struct {
	models      googleModelsClient
	model       string
	temperature float64
	maxTokens   int
	timeout     time.Duration
}

// NewGoogleResponder creates a Google responder from config.
func NewGoogleResponder(cfg config.Config) (dispatch.Responder, error) {
	providerCfg := cfg.Google

	apiKey := strings.TrimSpace(providerCfg.APIKey)
	if apiKey == "" {
		slog.Debug("google_responder_missing_key")
		return nil, fmt.Errorf("google api_key is required")
	}

	model := strings.TrimSpace(providerCfg.Model)
	if model == "" {
		model = googleDefaultModel
	}

	timeoutSeconds := providerCfg.APITimeoutSeconds
	if timeoutSeconds <= 0 {
		timeoutSeconds = googleDefaultTimeout
	}

	client, err := newGoogleClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create google client: %w", err)
	}

	slog.Debug("google_responder_ready",
		"model", model,
		"timeout_seconds", timeoutSeconds,
	)
	return &GoogleResponder{
		models:      client.Models,
		model:       model,
		temperature: providerCfg.Temperature,
		maxTokens:   providerCfg.MaxTokens,
		timeout:     time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

// Respond requests JSON output and decodes it.
func (p *GoogleResponder) Respond(ctx context.Context, query string) (response.Structured, error) {
	callCtx, cancel := p.withTimeout(ctx)
	defer cancel()

	contents := []*genai.Content{
		{Role: genai.RoleUser, Parts: []*genai.Part{{Text: query}}},
	}
	resp, err := p.models.GenerateContent(callCtx, p.model, contents, p.buildConfig())
	if err != nil {
		return response.Structured{}, googleError(callCtx, err)
	}
	return decodeModelOutput(extractVisibleText(resp))
}

func (p *GoogleResponder) buildConfig() *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr(float32(p.temperature)),
	}
	if p.maxTokens > 0 {
		cfg.MaxOutputTokens = int32(p.maxTokens)
	}
	return cfg
}

func (p *GoogleResponder) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline || p.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, p.timeout)
}

// extractVisibleText joins the text parts of the first candidate, skipping
// thought parts.
func extractVisibleText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

func googleError(ctx context.Context, err error) error {
	if de := dispatch.ContextError(ctx); de != nil {
		return de
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		kind := dispatch.ErrStatus
		if apiErr.Code == http.StatusRequestTimeout || apiErr.Code == http.StatusGatewayTimeout {
			kind = dispatch.ErrTimeout
		}
		return &dispatch.Error{Kind: kind, Status: apiErr.Code, Message: apiErr.Message, Err: err}
	}
	return &dispatch.Error{Kind: dispatch.ErrTransport, Err: err}
}

var _ dispatch.Responder = (*GoogleResponder)(nil)
