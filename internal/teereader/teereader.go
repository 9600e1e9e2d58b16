// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package teereader

import (
	"bytes"
	"io"
	"strings"
	"sync"
)

// DefaultMaxCapture is the default number of bytes kept by a Reader.
const DefaultMaxCapture = 1024 * 1024

const ellipsis = "..."

// Reader wraps an io.Reader, keeping up to max bytes of what passes
// through and the last complete line. It is safe to query while another
// goroutine reads.
type Reader struct {
	src      io.Reader
	max      int
	captured bytes.Buffer
	seen     int
	lastLine string
	partial  []byte
	mu       sync.RWMutex
}

// New wraps r. A max of zero or less uses DefaultMaxCapture.
func New(r io.Reader, max int) *Reader {
	if max <= 0 {
		max = DefaultMaxCapture
	}

	return &Reader{src: r, max: max}
}

// Read implements io.Reader.
func (t *Reader) Read(p []byte) (int, error) {
	n, err := t.src.Read(p)
	if n > 0 {
		t.mu.Lock()
		t.observe(p[:n])
		t.mu.Unlock()
	}

	return n, err //nolint:wrapcheck
}

// observe must be called with the lock held.
func (t *Reader) observe(chunk []byte) {
	if room := t.max - t.captured.Len(); room > 0 {
		t.captured.Write(chunk[:min(room, len(chunk))])
	}

	t.seen += len(chunk)

	t.partial = append(t.partial, chunk...)

	if idx := bytes.LastIndexByte(t.partial, '\n'); idx >= 0 {
		complete := t.partial[:idx]
		if prev := bytes.LastIndexByte(complete, '\n'); prev >= 0 {
			complete = complete[prev+1:]
		}

		t.lastLine = strings.TrimRight(string(complete), "\r")
		t.partial = append(t.partial[:0], t.partial[idx+1:]...)
	}

	// Output without line breaks keeps only its last max bytes.
	if over := len(t.partial) - t.max; over > 0 {
		t.partial = append(t.partial[:0], t.partial[over:]...)
	}
}

// LastLine returns the last complete line read, without its line ending.
// A maxLen above the length of the ellipsis truncates longer lines.
func (t *Reader) LastLine(maxLen int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	line := t.lastLine
	if maxLen > len(ellipsis) && len(line) > maxLen {
		line = line[:maxLen-len(ellipsis)] + ellipsis
	}

	return line
}

// Partial returns up to the last max bytes read after the last line break.
func (t *Reader) Partial() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return string(t.partial)
}

// Bytes returns a copy of the captured output.
func (t *Reader) Bytes() []byte {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return bytes.Clone(t.captured.Bytes())
}

// Truncated reports whether output beyond the capture limit was discarded.
func (t *Reader) Truncated() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.seen > t.max
}
