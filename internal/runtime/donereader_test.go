package runtime

import (
	"io"
	"strings"
	"testing"
)

func TestDoneReaderSignalsEOF(t *testing.T) {
	dr := newDoneReader(strings.NewReader("payload"))

	select {
	case <-dr.done:
		t.Fatal("done closed before EOF")
	default:
	}

	if _, err := io.ReadAll(dr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case <-dr.done:
	default:
		t.Fatal("done not closed after EOF")
	}

	// A second read past EOF must not panic on the closed channel.
	buf := make([]byte, 1)
	if _, err := dr.Read(buf); err != io.EOF {
		t.Fatalf("err = %v, want io.EOF", err)
	}
}
