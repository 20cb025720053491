// Package sse provides a minimal, purpose-built pull reader for the
// Skald API's server-sent event streams. The Skald server emits one
// complete frame per line in the form:
//
//	data: {json}\n
//
// interleaved with ": ping" keep-alive comment lines and blank lines.
// Multi-line data accumulation from the general SSE specification does
// not occur on this wire, so the reader deals in single-line frames.
//
// This package intentionally does NOT provide SSE writer or server
// capabilities.
package sse

// Event is a single data frame extracted from the stream.
type Event struct {
	// Data is the payload following the "data: " prefix, with the line
	// terminator stripped.
	Data string
}
