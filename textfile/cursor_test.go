package textfile

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/utf8stream"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "text.txt")
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatal(err.Error())
	}
	return name
}

func TestCursorReadsWholeFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textfile")
	defer teardown()
	//
	content := strings.Repeat("Lorem ipsum dolor sit amet, 你和我 😀\n", 200)
	name := writeFile(t, content)
	for _, fragSize := range []int64{0, 1, 7, 64, 4096} {
		c, err := Open(name, fragSize)
		if err != nil {
			t.Fatal(err.Error())
		}
		if c.Size() != int64(len(content)) {
			t.Errorf("size is %d, want %d", c.Size(), len(content))
		}
		var sb strings.Builder
		for {
			b, err := c.ReadByte()
			if err == io.EOF {
				break
			} else if err != nil {
				t.Fatalf("fragment size %d: unexpected error %v", fragSize, err)
			}
			sb.WriteByte(b)
		}
		if sb.String() != content {
			t.Fatalf("fragment size %d: content mismatch", fragSize)
		}
		if _, err := c.ReadByte(); err != io.EOF {
			t.Fatalf("expected io.EOF to persist, got %v", err)
		}
		if err := c.Close(); err != nil {
			t.Fatalf("close failed: %v", err)
		}
	}
}

func TestCursorDecodesAcrossFragments(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textfile", "utf8stream")
	defer teardown()
	//
	name := writeFile(t, "Hello \xF0\x90\x80World 😀")
	c, err := Open(name, 3)
	if err != nil {
		t.Fatal(err.Error())
	}
	defer c.Close()
	s := utf8stream.New(c)
	var runes []rune
	var errs []error
	for r, err := range s.All() {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		runes = append(runes, r)
	}
	if string(runes) != "Hello World 😀" {
		t.Errorf("unexpected text %q", string(runes))
	}
	if len(errs) != 1 || errs[0].Error() != "invalid utf-8 sequence [0xf0, 0x90, 0x80]" {
		t.Errorf("unexpected errors %v", errs)
	}
}

func TestCursorEmptyFile(t *testing.T) {
	name := writeFile(t, "")
	c, err := Open(name, 0)
	if err != nil {
		t.Fatal(err.Error())
	}
	defer c.Close()
	if _, err := c.ReadByte(); err != io.EOF {
		t.Fatalf("expected io.EOF for empty file, got %v", err)
	}
}

func TestCursorClose(t *testing.T) {
	name := writeFile(t, strings.Repeat("x", 100000))
	c, err := Open(name, 16)
	if err != nil {
		t.Fatal(err.Error())
	}
	if _, err := c.ReadByte(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	time.Sleep(100 * time.Millisecond) // let the loader fill the prefetch buffer
	closed := make(chan error, 1)
	go func() { closed <- c.Close() }()
	select {
	case err := <-closed:
		if err != nil {
			t.Fatalf("close failed: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("close did not return while the loader was blocked")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second close should be a no-op, got %v", err)
	}
	if _, err := c.ReadByte(); !errors.Is(err, utf8stream.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestOpenRejectsDirectories(t *testing.T) {
	if _, err := Open(t.TempDir(), 0); err == nil {
		t.Fatalf("expected error opening a directory")
	}
	if _, err := Open(filepath.Join(t.TempDir(), "missing"), 0); err == nil {
		t.Fatalf("expected error opening a missing file")
	}
}
