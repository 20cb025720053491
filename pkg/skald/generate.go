package skald

import (
	"context"
	"net/http"
)

// GenerateRequest holds parameters for document generation. Rules and
// Filters are optional and omitted from the wire when absent.
type GenerateRequest struct {
	Prompt  string   `json:"prompt"`
	Rules   []string `json:"rules,omitempty"`
	Filters []Filter `json:"filters,omitempty"`
}

// generatePayload is the wire body for /api/v1/generate. As with chat,
// the stream flag is owned by the client.
type generatePayload struct {
	Prompt  string   `json:"prompt"`
	Stream  bool     `json:"stream"`
	Rules   []string `json:"rules,omitempty"`
	Filters []Filter `json:"filters,omitempty"`
}

// GenerateResponse mirrors ChatResponse with generated document text in
// place of a conversational answer.
type GenerateResponse = ChatResponse

// Generate produces a document grounded in the knowledge base in a single
// response.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	payload := generatePayload{
		Prompt:  req.Prompt,
		Stream:  false,
		Rules:   req.Rules,
		Filters: req.Filters,
	}

	var out GenerateResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/generate", nil, payload, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// GenerateStream produces a document as a lazy sequence of StreamEvents.
// The caller owns the returned Stream and should defer Close.
func (c *Client) GenerateStream(ctx context.Context, req GenerateRequest) (*Stream, error) {
	payload := generatePayload{
		Prompt:  req.Prompt,
		Stream:  true,
		Rules:   req.Rules,
		Filters: req.Filters,
	}

	return c.doStream(ctx, "/api/v1/generate", payload)
}
