package shell

import (
	"fmt"
	"io"
	"sync"

	"github.com/jedib0t/go-pretty/v6/text"
)

// console is the user-facing writer shared by commands and background
// printers. Writes are serialized so lines never interleave.
type console struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
}

func (c *console) setWriter(w io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.w = w
}

// Line prints one formatted line.
func (c *console) Line(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, format+"\n", args...)
}

// Raw prints text as is.
func (c *console) Raw(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	io.WriteString(c.w, s)
}

// Error prints a highlighted error line.
func (c *console) Error(format string, args ...interface{}) {
	c.Line("%s", c.paint(text.FgHiRed, fmt.Sprintf(format, args...)))
}

// Success prints a highlighted confirmation line.
func (c *console) Success(format string, args ...interface{}) {
	c.Line("%s", c.paint(text.FgHiGreen, fmt.Sprintf(format, args...)))
}

func (c *console) paint(color text.Color, s string) string {
	if !c.color {
		return s
	}
	return color.Sprint(s)
}
