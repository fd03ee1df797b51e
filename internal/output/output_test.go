package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer_AppendAndRead(t *testing.T) {
	b := NewBuffer()
	assert.Equal(t, 0, b.Len())
	assert.Empty(t, b.Lines())

	b.Append("one")
	b.AppendText("two\r\nthree\n")
	b.AppendText("")

	assert.Equal(t, []string{"one", "two", "three"}, b.Lines())
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, []string{"three"}, b.Since(2))
	assert.Nil(t, b.Since(3))
	assert.Equal(t, "one\ntwo\nthree", b.String())

	// Snapshots are copies.
	lines := b.Lines()
	lines[0] = "mutated"
	assert.Equal(t, "one", b.Lines()[0])
}

func TestBuffer_ConcurrentAppendsKeepPerWriterOrder(t *testing.T) {
	b := NewBuffer()
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				b.Append(fmt.Sprintf("%d:%d", w, i))
			}
		}(w)
	}
	wg.Wait()

	require.Equal(t, 400, b.Len())
	last := map[string]int{}
	for _, line := range b.Lines() {
		parts := strings.SplitN(line, ":", 2)
		var i int
		_, err := fmt.Sscanf(parts[1], "%d", &i)
		require.NoError(t, err)
		prev, seen := last[parts[0]]
		if seen {
			assert.Greater(t, i, prev)
		}
		last[parts[0]] = i
	}
}

func TestBuffer_Follow(t *testing.T) {
	b := NewBuffer()
	b.Append("before")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := b.Follow(ctx)

	go func() {
		b.Append("after-1")
		b.Append("after-2")
	}()

	var got []string
	timeout := time.After(2 * time.Second)
	for len(got) < 3 {
		select {
		case line := <-ch:
			got = append(got, line)
		case <-timeout:
			t.Fatalf("timed out, got %v", got)
		}
	}
	assert.Equal(t, []string{"before", "after-1", "after-2"}, got)

	cancel()
	select {
	case _, ok := <-ch:
		for ok {
			_, ok = <-ch
		}
	case <-time.After(2 * time.Second):
		t.Fatal("follow channel not closed after cancel")
	}
}

func TestPump(t *testing.T) {
	b := NewBuffer()
	p := StartPump(strings.NewReader("alpha\r\nbeta\ngamma"), b)
	require.NoError(t, p.Wait())
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, b.Lines())

	select {
	case <-p.Done():
	default:
		t.Fatal("done channel should be closed")
	}
}

type failingReader struct {
	r   io.Reader
	err error
}

func (f *failingReader) Read(p []byte) (int, error) {
	n, err := f.r.Read(p)
	if err == io.EOF {
		return n, f.err
	}
	return n, err
}

func TestPump_ReadError(t *testing.T) {
	boom := errors.New("pipe broke")
	b := NewBuffer()
	p := StartPump(&failingReader{r: strings.NewReader("first\nsecond"), err: boom}, b)

	err := p.Wait()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"first"}, b.Lines()[:1])
}
