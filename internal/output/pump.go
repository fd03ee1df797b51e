package output

import (
	"bufio"
	"io"
	"strings"
)

const maxLineSize = 1024 * 1024

// Sink receives pumped lines.
type Sink interface {
	Append(line string)
}

// Pump copies r into sink line by line, in order, until EOF. A read error
// ends the copy; the remainder of r is still drained so the writing process
// never blocks on a full pipe.
type Pump struct {
	done chan struct{}
	err  error
}

// StartPump begins pumping r into sink on a new goroutine.
func StartPump(r io.Reader, sink Sink) *Pump {
	p := &Pump{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			sink.Append(strings.TrimSuffix(scanner.Text(), "\r"))
		}
		if err := scanner.Err(); err != nil {
			p.err = err
			_, _ = io.Copy(io.Discard, r)
		}
	}()
	return p
}

// Done is closed when the stream has been fully consumed.
func (p *Pump) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the stream has been fully consumed and returns the read
// error, if any.
func (p *Pump) Wait() error {
	<-p.done
	return p.err
}
