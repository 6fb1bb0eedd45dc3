package utf8stream

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var roundtripTexts = []string{
	"",
	"Hello World",
	"you and me 你和我",
	"a😀ב\nz",
	"Grüße, Jürgen ❤ \U0010FFFF \u0080 ߿ ࠀ � \U00010000",
	strings.Repeat("ﬁ𝄞é", 100),
}

func TestRoundtripIndependentOfChunking(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "utf8stream")
	defer teardown()
	//
	readers := map[string]func(string) io.Reader{
		"strings.Reader": func(s string) io.Reader { return strings.NewReader(s) },
		"one-byte":       func(s string) io.Reader { return iotest.OneByteReader(strings.NewReader(s)) },
		"half":           func(s string) io.Reader { return iotest.HalfReader(strings.NewReader(s)) },
		"data-err":       func(s string) io.Reader { return iotest.DataErrReader(strings.NewReader(s)) },
		"lazy":           func(s string) io.Reader { return &lazyReader{r: strings.NewReader(s)} },
	}
	for name, mk := range readers {
		for _, text := range roundtripTexts {
			s := NewReader(mk(text))
			var got []rune
			for r, err := range s.All() {
				if err != nil {
					t.Fatalf("%s: unexpected error decoding %q: %v", name, text, err)
				}
				got = append(got, r)
			}
			if string(got) != text {
				t.Fatalf("%s: round trip failed: got %q, want %q", name, string(got), text)
			}
			if len(got) != len([]rune(text)) {
				t.Fatalf("%s: decoded %d runes, want %d", name, len(got), len([]rune(text)))
			}
		}
	}
}

// lazyReader answers every other Read with (0, nil).
type lazyReader struct {
	r    io.Reader
	idle bool
}

func (lr *lazyReader) Read(p []byte) (int, error) {
	lr.idle = !lr.idle
	if lr.idle {
		return 0, nil
	}
	if len(p) > 1 {
		p = p[:1]
	}
	return lr.r.Read(p)
}

// stuckReader never makes progress.
type stuckReader struct{}

func (stuckReader) Read(p []byte) (int, error) { return 0, nil }

func TestNewCursorUsesByteReader(t *testing.T) {
	br := bytes.NewReader([]byte("x"))
	if c := NewCursor(br); c != ByteCursor(br) {
		t.Fatalf("expected io.ByteReader to be used as cursor directly")
	}
	c := NewCursor(iotest.OneByteReader(br))
	if _, ok := c.(*readerCursor); !ok {
		t.Fatalf("expected plain reader to be wrapped, got %T", c)
	}
}

func TestReaderCursorNoProgress(t *testing.T) {
	c := NewCursor(stuckReader{})
	if _, err := c.ReadByte(); err != io.ErrNoProgress {
		t.Fatalf("expected io.ErrNoProgress, got %v", err)
	}
}

func TestReaderCursorPassesErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "utf8stream")
	defer teardown()
	//
	r := io.MultiReader(strings.NewReader("ab"), iotest.ErrReader(errBoom))
	s := NewReader(iotest.OneByteReader(r))
	for _, want := range "ab" {
		if r, err := s.Next(); err != nil || r != want {
			t.Fatalf("expected %q, got %q/%v", want, r, err)
		}
	}
	if _, err := s.Next(); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected wrapped I/O error, got %v", err)
	}
}

func TestStringCursor(t *testing.T) {
	c := StringCursor("ok")
	for _, want := range []byte("ok") {
		b, err := c.ReadByte()
		if err != nil || b != want {
			t.Fatalf("expected %q, got %q/%v", want, b, err)
		}
	}
	if _, err := c.ReadByte(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}
