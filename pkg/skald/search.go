package skald

import (
	"context"
	"net/http"
)

// SearchMethod selects the server-side matching strategy.
type SearchMethod string

const (
	// SearchMethodChunkVector ranks memo chunks by embedding distance to
	// the query.
	SearchMethodChunkVector SearchMethod = "chunk_vector_search"

	// SearchMethodTitleContains matches memos whose title contains the
	// query text.
	SearchMethodTitleContains SearchMethod = "title_contains"

	// SearchMethodTitleStartsWith matches memos whose title starts with
	// the query text.
	SearchMethodTitleStartsWith SearchMethod = "title_startswith"
)

// SearchRequest holds search parameters. Limit and Filters are optional
// and omitted from the wire when zero.
type SearchRequest struct {
	Query   string       `json:"query"`
	Method  SearchMethod `json:"method"`
	Limit   int          `json:"limit,omitempty"`
	Filters []Filter     `json:"filters,omitempty"`
}

// SearchResult is one match record, in server ranking order.
type SearchResult struct {
	MemoUUID    string         `json:"memo_uuid,omitempty"`
	ReferenceID string         `json:"reference_id,omitempty"`
	Title       string         `json:"title,omitempty"`
	Content     string         `json:"content,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`

	// Distance is populated only for chunk_vector_search; the server
	// sends null for title matches and the client passes that through
	// untouched.
	Distance *float64 `json:"distance"`
}

// Search runs a query against the knowledge base and returns the ordered
// match records.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]SearchResult, error) {
	var results []SearchResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/search", nil, req, &results); err != nil {
		return nil, err
	}

	return results, nil
}
