package skald

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// CreateMemoRequest holds parameters for a new memo. Title and Content are
// required by the server; everything else is optional.
type CreateMemoRequest struct {
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	ReferenceID string         `json:"reference_id,omitempty"`
	Summary     string         `json:"summary,omitempty"`
	Metadata    map[string]any `json:"metadata"`
	Tags        []string       `json:"tags,omitempty"`
	Source      string         `json:"source,omitempty"`
}

// CreateMemoResponse is the server acknowledgement for a created memo.
type CreateMemoResponse struct {
	OK bool `json:"ok"`
}

// UpdateMemoRequest is a partial field set for PATCH. Nil fields are
// omitted from the wire entirely; the server leaves them untouched. The
// body is sent as-is, with no client-side merge.
type UpdateMemoRequest struct {
	Title    *string        `json:"title,omitempty"`
	Content  *string        `json:"content,omitempty"`
	Summary  *string        `json:"summary,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Tags     []string       `json:"tags,omitempty"`
	Source   *string        `json:"source,omitempty"`
}

// ListMemosRequest holds optional pagination parameters for ListMemos.
// Zero values are omitted from the query string.
type ListMemosRequest struct {
	Page     int
	PageSize int
}

// MemoPage is one page of memos with the server's pagination envelope.
// Next and Previous are nil on the last and first page respectively.
type MemoPage struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []Memo  `json:"results"`
}

// CreateMemo stores a new memo. A nil Metadata is sent as an empty mapping
// rather than null; an explicitly provided mapping passes through
// unchanged.
func (c *Client) CreateMemo(ctx context.Context, req CreateMemoRequest) (*CreateMemoResponse, error) {
	if req.Metadata == nil {
		req.Metadata = map[string]any{}
	}

	var out CreateMemoResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/memo", nil, req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// GetMemo fetches a single memo by id. An empty idType means
// IDTypeMemoUUID; anything outside the two known id types fails with
// ErrInvalidIDType before any network call.
func (c *Client) GetMemo(ctx context.Context, id string, idType IDType) (*Memo, error) {
	path, query, err := c.memoPath(id, idType)
	if err != nil {
		return nil, err
	}

	var out Memo
	if err := c.do(ctx, http.MethodGet, path, query, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// ListMemos fetches one page of memos.
func (c *Client) ListMemos(ctx context.Context, req ListMemosRequest) (*MemoPage, error) {
	query := url.Values{}
	if req.Page > 0 {
		query.Set("page", strconv.Itoa(req.Page))
	}
	if req.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(req.PageSize))
	}

	var out MemoPage
	if err := c.do(ctx, http.MethodGet, "/api/v1/memo", query, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// UpdateMemo patches the given fields of a memo and returns the updated
// record. Id handling matches GetMemo.
func (c *Client) UpdateMemo(ctx context.Context, id string, req UpdateMemoRequest, idType IDType) (*Memo, error) {
	path, query, err := c.memoPath(id, idType)
	if err != nil {
		return nil, err
	}

	var out Memo
	if err := c.do(ctx, http.MethodPatch, path, query, req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// DeleteMemo removes a memo. Id handling matches GetMemo; the server
// answers with no payload.
func (c *Client) DeleteMemo(ctx context.Context, id string, idType IDType) error {
	path, query, err := c.memoPath(id, idType)
	if err != nil {
		return err
	}

	return c.do(ctx, http.MethodDelete, path, query, nil, nil)
}
