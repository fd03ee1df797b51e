package output

import (
	"context"
	"strings"
	"sync"
)

// Buffer is the append-only, ordered output log of one service. Appends
// never reorder or drop earlier lines. It is safe for concurrent use.
type Buffer struct {
	mu      sync.RWMutex
	lines   []string
	changed chan struct{}
}

// NewBuffer creates an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{changed: make(chan struct{})}
}

// Append adds one line to the end of the buffer and wakes any followers.
func (b *Buffer) Append(line string) {
	b.mu.Lock()
	b.lines = append(b.lines, line)
	close(b.changed)
	b.changed = make(chan struct{})
	b.mu.Unlock()
}

// AppendText splits text on newlines and appends each line. A single trailing
// newline does not produce an empty line.
func (b *Buffer) AppendText(text string) {
	text = strings.TrimRight(text, "\r\n")
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		b.Append(strings.TrimSuffix(line, "\r"))
	}
}

// Lines returns a copy of every line appended so far.
func (b *Buffer) Lines() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Len returns the number of lines appended so far.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// Since returns a copy of the lines from index n onwards.
func (b *Buffer) Since(n int) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if n < 0 {
		n = 0
	}
	if n >= len(b.lines) {
		return nil
	}
	out := make([]string, len(b.lines)-n)
	copy(out, b.lines[n:])
	return out
}

// String joins the buffer with newlines.
func (b *Buffer) String() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.lines, "\n")
}

// Follow delivers every line, starting from the first, in order on the
// returned channel until ctx is done. Followers never block writers.
func (b *Buffer) Follow(ctx context.Context) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		next := 0
		for {
			b.mu.RLock()
			pending := b.lines[next:len(b.lines):len(b.lines)]
			wait := b.changed
			b.mu.RUnlock()

			for _, line := range pending {
				select {
				case ch <- line:
					next++
				case <-ctx.Done():
					return
				}
			}
			if len(pending) > 0 {
				continue
			}

			select {
			case <-wait:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}
