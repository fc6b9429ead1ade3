// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// maxLineSize bounds a single NDJSON line.
const maxLineSize = 1 << 20

// =============================================================================
// PULL STREAM
// =============================================================================

// PullStream reads the newline-delimited JSON progress events of /api/pull.
// It is lazy and cannot be restarted: each event is decoded on Next.
type PullStream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	done    bool
}

// NewPullStream wraps a response body.
func NewPullStream(body io.ReadCloser) *PullStream {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &PullStream{body: body, scanner: scanner}
}

// Next returns the next progress event. It returns io.EOF once the stream is
// exhausted, and a *ClientError if the server reported a failure.
func (s *PullStream) Next() (PullProgress, error) {
	if s.done {
		return PullProgress{}, io.EOF
	}

	for s.scanner.Scan() {
		line := bytes.TrimSpace(s.scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var p PullProgress
		if err := json.Unmarshal(line, &p); err != nil {
			// Skip malformed lines
			continue
		}
		if p.Error != "" {
			s.done = true
			return p, &ClientError{Type: ErrTypeInvalidResponse, Message: p.Error}
		}
		return p, nil
	}

	s.done = true
	if err := s.scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return PullProgress{}, &ClientError{Type: ErrTypeConnection, Message: "pull stream interrupted", Cause: err}
	}
	return PullProgress{}, io.EOF
}

// Close releases the underlying response body.
func (s *PullStream) Close() error {
	s.done = true
	return s.body.Close()
}
