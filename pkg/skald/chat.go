package skald

import (
	"context"
	"encoding/json"
	"net/http"
)

// ChatRequest holds parameters for a retrieval-augmented chat turn.
// Filters are optional and omitted from the wire when absent.
type ChatRequest struct {
	Query   string   `json:"query"`
	Filters []Filter `json:"filters,omitempty"`
}

// chatPayload is the wire body for /api/v1/chat. The stream flag is owned
// by the client: Chat forces false, ChatStream forces true.
type chatPayload struct {
	Query   string   `json:"query"`
	Stream  bool     `json:"stream"`
	Filters []Filter `json:"filters,omitempty"`
}

// ChatResponse is the complete answer for a non-streaming chat call.
// IntermediateSteps preserves the server's retrieval trace verbatim.
type ChatResponse struct {
	OK                bool            `json:"ok"`
	Response          string          `json:"response"`
	IntermediateSteps json.RawMessage `json:"intermediate_steps,omitempty"`
}

// Chat answers a query over the knowledge base in a single response.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	payload := chatPayload{
		Query:   req.Query,
		Stream:  false,
		Filters: req.Filters,
	}

	var out ChatResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/chat", nil, payload, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// ChatStream answers a query as a lazy sequence of StreamEvents. The
// caller owns the returned Stream and should defer Close.
func (c *Client) ChatStream(ctx context.Context, req ChatRequest) (*Stream, error) {
	payload := chatPayload{
		Query:   req.Query,
		Stream:  true,
		Filters: req.Filters,
	}

	return c.doStream(ctx, "/api/v1/chat", payload)
}
