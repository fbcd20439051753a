package providers

import (
	"errors"
	"strings"

	"compliance_tui/pkg/dispatch"
	"compliance_tui/pkg/response"
)

// systemPrompt asks a model for exactly one structured response object.
const systemPrompt = `You are the backend of a compliance case and alert management console.
Answer the user's request with exactly one JSON object and nothing else:
{"type": <kind>, "content": <payload>}

Kinds and payload shapes:
- "text": {"summary", "text"}
- "text-with-links": {"summary", "text", "links": [{"title", "url", "description"}]}
- "table": {"summary", "headers": [string], "rows": [[string]]} with one cell per header in every row
- "report": {"summary", "sections": [{"title", and at most one of "content": string, "items": [string], "metrics": [{"label", "value"}]}]}
- "alert": {"summary", "alerts": [{"id", "severity": "critical"|"high"|"medium", "title", "description", "timestamp", "affectedSystems": [string], "recommendedActions": [string]}]}
- "dashboard": {"summary", "metrics": [{"label", "value", "change", "trend": "up"|"down"}], "charts": [{"title", "type", "data": [number] or [{"label", "value", "color"}], "labels": [string]}], "recentActivity": [{"action", "time"}]}
- "metrics": {"summary", "metrics": [{"label", "value", "change", "trend": "up"|"down", "description"}]}

Keep "summary" to one short headline. Use "text" when no other kind fits.`

// decodeModelOutput parses a model reply into a structured response. Models
// sometimes wrap JSON in a Markdown fence, so one is stripped if present.
func decodeModelOutput(raw string) (response.Structured, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return response.Structured{}, &dispatch.Error{Kind: dispatch.ErrDecode, Message: "model returned an empty reply"}
	}
	text = stripCodeFence(text)

	res, err := response.Parse([]byte(text))
	if err != nil {
		kind := dispatch.ErrDecode
		if errors.Is(err, response.ErrInvalid) {
			kind = dispatch.ErrMalformed
		}
		return response.Structured{}, &dispatch.Error{Kind: kind, Message: "model reply is not a valid response", Err: err}
	}
	return res, nil
}

func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
