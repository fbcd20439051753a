package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"compliance_tui/pkg/config"
	"compliance_tui/pkg/dispatch"
	"compliance_tui/pkg/response"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

const (
	openAIDefaultAPIURL  = "https://api.openai.com/v1"
	openAIDefaultModel   = "gpt-4o-mini"
	openAIDefaultTimeout = 60
)

func init() {
	dispatch.RegisterResponder(dispatch.ResponderInfo{
		Type:        dispatch.ResponderOpenAI,
		Name:        "OpenAI",
		Description: "Structured answers generated by an OpenAI chat model",
		RequiresKey: true,
	}, NewOpenAIResponder)
}

// OpenAIResponder asks an OpenAI chat model for a structured response.
type OpenAIResponder struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int
}

// NewOpenAIResponder creates an OpenAI responder from config.
func NewOpenAIResponder(cfg config.Config) (dispatch.Responder, error) {
	return newOpenAIResponder(cfg.OpenAI, nil)
}

func newOpenAIResponder(cfg config.LLMConfig, httpClient *http.Client) (*OpenAIResponder, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("openai api_key is required")
	}

	apiURL := strings.TrimSpace(cfg.BaseURL)
	if apiURL == "" {
		apiURL = openAIDefaultAPIURL
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = openAIDefaultModel
	}

	timeout := cfg.APITimeoutSeconds
	if timeout <= 0 {
		timeout = openAIDefaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(timeout) * time.Second}
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(apiURL),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	)

	return &OpenAIResponder{
		client:      client,
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// Respond requests a JSON object completion and decodes it.
func (p *OpenAIResponder) Respond(ctx context.Context, query string) (response.Structured, error) {
	resp, err := p.client.Chat.Completions.New(ctx, p.buildParams(query))
	if err != nil {
		return response.Structured{}, openAIError(ctx, err)
	}
	if len(resp.Choices) == 0 {
		return response.Structured{}, &dispatch.Error{Kind: dispatch.ErrDecode, Message: "completion has no choices"}
	}
	return decodeModelOutput(resp.Choices[0].Message.Content)
}

func (p *OpenAIResponder) buildParams(query string) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(query),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}
	if p.temperature > 0 {
		params.Temperature = openai.Float(p.temperature)
	}
	if p.maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(p.maxTokens))
	}
	return params
}

func openAIError(ctx context.Context, err error) error {
	if de := dispatch.ContextError(ctx); de != nil {
		return de
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		kind := dispatch.ErrStatus
		if apiErr.StatusCode == http.StatusRequestTimeout || apiErr.StatusCode == http.StatusGatewayTimeout {
			kind = dispatch.ErrTimeout
		}
		return &dispatch.Error{Kind: kind, Status: apiErr.StatusCode, Message: apiErr.Message, Err: err}
	}
	return &dispatch.Error{Kind: dispatch.ErrTransport, Err: err}
}

var _ dispatch.Responder = (*OpenAIResponder)(nil)
