package runtime

import (
	"io"
	"sync"
)

// An [io.Reader] that signals EOF on a channel.
//
// Exec streams command output through fifos that outlive the process; the
// done channel tells the caller when the stream has actually drained. It is
// closed exactly once, on the first [io.EOF], so multiple goroutines may
// wait on it.
type doneReader struct {
	r    io.Reader
	done chan struct{}
	once sync.Once
}

// Wraps a reader with EOF signalling.
func newDoneReader(r io.Reader) *doneReader {
	return &doneReader{r: r, done: make(chan struct{})}
}

// Delegates to the underlying reader, closing the done channel on the first
// [io.EOF]. Other errors leave the channel open.
func (d *doneReader) Read(p []byte) (int, error) {
	n, err := d.r.Read(p)
	if err == io.EOF {
		d.once.Do(func() { close(d.done) })
	}
	return n, err
}
