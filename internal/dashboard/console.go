package dashboard

import (
	"io"
	"sync"
)

// Console is the single terminal writer shared by the menu, the prompts and
// background event output, so their writes never interleave.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.w.Write(p)
}

// Close lets promptui use the console as its Stdout. The underlying writer is left open.
func (c *Console) Close() error {
	return nil
}

// Do runs fn with exclusive access to the underlying writer, for output made
// of several writes such as a table.
func (c *Console) Do(fn func(w io.Writer) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return fn(c.w)
}
