package skald

import "time"

// IDType selects how a memo id is interpreted by single-memo endpoints.
type IDType string

const (
	// IDTypeMemoUUID addresses a memo by its server-assigned UUID. This is
	// the server default; an empty IDType resolves to it.
	IDTypeMemoUUID IDType = "memo_uuid"

	// IDTypeReferenceID addresses a memo by the caller-assigned reference
	// id supplied at creation.
	IDTypeReferenceID IDType = "reference_id"
)

// Memo is the core content resource stored and indexed by Skald. Its
// lifecycle is fully owned by the remote service; the client never caches
// or transforms it beyond JSON (de)serialization.
type Memo struct {
	MemoUUID    string         `json:"memo_uuid,omitempty"`
	ReferenceID string         `json:"reference_id,omitempty"`
	Title       string         `json:"title"`
	Content     string         `json:"content,omitempty"`
	Summary     string         `json:"summary,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Tags        []MemoTag      `json:"tags,omitempty"`
	Chunks      []MemoChunk    `json:"chunks,omitempty"`
	Source      string         `json:"source,omitempty"`
	CreatedAt   time.Time      `json:"created_at,omitzero"`
	UpdatedAt   time.Time      `json:"updated_at,omitzero"`
}

// MemoTag is a label attached to a memo by the service.
type MemoTag struct {
	UUID string `json:"uuid,omitempty"`
	Name string `json:"name"`
}

// MemoChunk is a sub-segment of a memo's content used for fine-grained
// semantic search.
type MemoChunk struct {
	UUID       string `json:"uuid,omitempty"`
	Content    string `json:"content"`
	ChunkIndex int    `json:"chunk_index,omitempty"`
}

// FilterOperator is the comparison applied by a Filter.
type FilterOperator string

const (
	FilterOpEq         FilterOperator = "eq"
	FilterOpNeq        FilterOperator = "neq"
	FilterOpContains   FilterOperator = "contains"
	FilterOpStartsWith FilterOperator = "startswith"
	FilterOpEndsWith   FilterOperator = "endswith"
	FilterOpIn         FilterOperator = "in"
	FilterOpNotIn      FilterOperator = "not_in"
)

// FilterType selects whether a filter targets a native memo field or a key
// in the caller-defined metadata mapping.
type FilterType string

const (
	FilterTypeNativeField    FilterType = "native_field"
	FilterTypeCustomMetadata FilterType = "custom_metadata"
)

// Filter narrows which memos are considered by search, chat and generate.
// Multiple filters combine with AND semantics on the server; the client
// performs no validation of its own.
type Filter struct {
	Field    string         `json:"field"`
	Operator FilterOperator `json:"operator"`

	// Value is a string for scalar operators or a list of strings for
	// in/not_in. The union is passed through to the wire as-is.
	Value any `json:"value"`

	FilterType FilterType `json:"filter_type,omitempty"`
}

// StreamEvent type tags, as emitted on the chat/generate SSE wire.
const (
	StreamEventToken = "token"
	StreamEventDone  = "done"
)

// StreamEvent is a single decoded event from a streaming chat or generate
// response: either a token fragment or the terminal done marker.
type StreamEvent struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
}
