package skald

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/useskald/skald-go/pkg/sse"
)

// Stream is a lazily-decoded, finite, non-restartable sequence of
// StreamEvents read from a streaming chat or generate response.
//
// Reads are strictly sequential with at most one outstanding read; a
// Stream is single-consumer and must not be used from multiple
// goroutines. Independent streams share nothing, so concurrent calls on
// the same Client do not interfere.
//
// The stream closes itself once a done event or end-of-data is reached,
// but callers should still defer Close so the connection is released when
// iteration is abandoned early or an error unwinds out of the loop:
//
//	stream, err := client.ChatStream(ctx, req)
//	if err != nil { ... }
//	defer stream.Close()
//	for {
//		event, err := stream.Next()
//		if err != nil { ... }
//		if event == nil {
//			break
//		}
//		...
//	}
type Stream struct {
	body   io.ReadCloser
	frames *sse.Reader
	done   bool

	closeOnce sync.Once
	closeErr  error
}

func newStream(body io.ReadCloser) *Stream {
	return &Stream{
		body:   body,
		frames: sse.NewReader(body),
	}
}

// Next returns the next event, in the exact order its frame appeared on
// the wire, or nil, nil once the sequence ends. The sequence ends
// immediately after a done event (no further bytes are read even if more
// remain) or when the server closes the stream without one.
//
// Frames whose payload is not valid JSON are silently dropped so a single
// malformed frame cannot abort the stream.
func (s *Stream) Next() (*StreamEvent, error) {
	if s.done {
		return nil, nil
	}

	for {
		frame, err := s.frames.Next()
		if err != nil {
			s.done = true
			_ = s.Close()
			return nil, &TransportError{Err: err}
		}

		if frame == nil {
			// End of data without a done event: the sequence simply ends.
			s.done = true
			_ = s.Close()
			return nil, nil
		}

		var event StreamEvent
		if err := json.Unmarshal([]byte(frame.Data), &event); err != nil {
			continue
		}

		if event.Type == StreamEventDone {
			s.done = true
			_ = s.Close()
		}

		return &event, nil
	}
}

// Close releases the underlying connection. It is idempotent; the body is
// closed exactly once no matter how the stream terminates.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.body.Close()
	})
	return s.closeErr
}
