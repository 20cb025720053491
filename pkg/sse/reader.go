package sse

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// dataPrefix marks payload-bearing lines on the Skald wire.
const dataPrefix = "data: "

// Reader extracts data frames from a byte stream of newline-delimited SSE
// lines. It buffers incomplete lines internally, so how the source splits
// its chunks (even mid-line or mid-rune) never affects the frames produced.
// Reads are strictly sequential with one outstanding read at a time; a
// Reader is not safe for concurrent use.
type Reader struct {
	src *bufio.Reader
	eof bool
}

// NewReader returns a Reader over src. The Reader does not close src;
// stream lifetime belongs to the caller.
func NewReader(src io.Reader) *Reader {
	return &Reader{
		src: bufio.NewReaderSize(src, 64*1024),
	}
}

// Next returns the next data frame in byte-stream order, blocking until a
// complete line is available. Blank lines, comment lines such as ": ping"
// and any other non-data line are skipped. Next returns nil, nil once the
// source is exhausted; a trailing fragment with no line terminator is
// discarded rather than emitted as a frame.
func (r *Reader) Next() (*Event, error) {
	if r.eof {
		return nil, nil
	}

	for {
		line, err := r.src.ReadString('\n')
		if err != nil {
			r.eof = true
			if errors.Is(err, io.EOF) {
				return nil, nil
			}
			return nil, err
		}

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		if payload, ok := strings.CutPrefix(line, dataPrefix); ok {
			return &Event{Data: payload}, nil
		}
	}
}
