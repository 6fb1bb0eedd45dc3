package utf8stream

import (
	"errors"
	"io"
	"testing"
	"unicode/utf8"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// unit is a decoded rune or an error, for comparing stream output.
type unit struct {
	r   rune
	err error
}

func ch(r rune) unit { return unit{r: r} }

func bad(b ...byte) unit { return unit{err: decodeError(b)} }

// decodeAll drains s up to end-of-stream. It fails on I/O errors.
func decodeAll(t *testing.T, s *Stream) []unit {
	t.Helper()
	var units []unit
	for i := 0; i < 10000; i++ {
		r, err := s.Next()
		if err == io.EOF {
			return units
		}
		var ioerr *IOError
		if errors.As(err, &ioerr) {
			t.Fatalf("unexpected I/O error: %v", err)
		}
		units = append(units, unit{r: r, err: err})
	}
	t.Fatalf("stream did not terminate")
	return nil
}

func checkUnits(t *testing.T, got, want []unit) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("decoded %d units %v, want %d units %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unit[%d]=%v, want %v", i, got[i], want[i])
		}
	}
}

// scriptCursor replays a fixed sequence of bytes and errors and counts reads.
type scriptCursor struct {
	steps []step
	reads int
}

type step struct {
	b   byte
	err error
}

func script(steps ...step) *scriptCursor {
	return &scriptCursor{steps: steps}
}

func bytesOf(b ...byte) []step {
	steps := make([]step, len(b))
	for i := range b {
		steps[i] = step{b: b[i]}
	}
	return steps
}

func (sc *scriptCursor) ReadByte() (byte, error) {
	sc.reads++
	if len(sc.steps) == 0 {
		return 0, io.EOF
	}
	st := sc.steps[0]
	sc.steps = sc.steps[1:]
	return st.b, st.err
}

var errBoom = errors.New("boom")

func TestASCIIPassthrough(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "utf8stream")
	defer teardown()
	//
	input := make([]byte, 0x80)
	want := make([]unit, 0x80)
	for i := range input {
		input[i] = byte(i)
		want[i] = ch(rune(i))
	}
	checkUnits(t, decodeAll(t, New(BytesCursor(input))), want)
}

func TestHelloWorldResync(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "utf8stream")
	defer teardown()
	//
	s := New(BytesCursor([]byte("Hello \xF0\x90\x80World")))
	want := []unit{
		ch('H'), ch('e'), ch('l'), ch('l'), ch('o'), ch(' '),
		bad(0xF0, 0x90, 0x80),
		ch('W'), ch('o'), ch('r'), ch('l'), ch('d'),
	}
	checkUnits(t, decodeAll(t, s), want)
	if s.Offset() != 15 {
		t.Errorf("offset after end of input is %d, want 15", s.Offset())
	}
}

func TestTruncatedAtEOF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "utf8stream")
	defer teardown()
	//
	cursor := script(bytesOf(0xF0, 0x90)...)
	s := New(cursor)
	_, err := s.Next()
	if err != decodeError([]byte{0xF0, 0x90}) {
		t.Fatalf("expected decode error [0xf0, 0x90], got %v", err)
	}
	reads := cursor.reads
	for i := 0; i < 3; i++ {
		if _, err = s.Next(); err != io.EOF {
			t.Fatalf("call %d after truncation: expected io.EOF, got %v", i, err)
		}
	}
	if cursor.reads != reads {
		t.Errorf("exhausted stream should not read from cursor again")
	}
}

func TestMalformedContinuation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "utf8stream")
	defer teardown()
	//
	for _, tc := range []struct {
		name  string
		input []byte
		want  []unit
	}{
		{"E0 needs A0-BF", []byte{0xE0, 0x41}, []unit{bad(0xE0), ch('A')}},
		{"overlong 2-byte", []byte{0xC0, 0x80}, []unit{bad(0xC0), bad(0x80)}},
		{"overlong 3-byte", []byte{0xE0, 0x9F, 0xBF}, []unit{bad(0xE0), bad(0x9F), bad(0xBF)}},
		{"surrogate", []byte{0xED, 0xA0, 0x80}, []unit{bad(0xED), bad(0xA0), bad(0x80)}},
		{"beyond U+10FFFF", []byte{0xF4, 0x90, 0x80, 0x80}, []unit{bad(0xF4), bad(0x90), bad(0x80), bad(0x80)}},
		{"overlong 4-byte", []byte{0xF0, 0x8F, 0xBF, 0xBF}, []unit{bad(0xF0), bad(0x8F), bad(0xBF), bad(0xBF)}},
		{"bad third byte", []byte{0xE2, 0x82, 0x41}, []unit{bad(0xE2, 0x82), ch('A')}},
		{"bad fourth byte", []byte{0xF0, 0x9F, 0x98, 0x41}, []unit{bad(0xF0, 0x9F, 0x98), ch('A')}},
		{"restaged lead", []byte{0xE2, 0xC3, 0xA4}, []unit{bad(0xE2), ch('ä')}},
		{"restaged truncated lead", []byte{0xC3, 0xF0, 0x9F}, []unit{bad(0xC3), bad(0xF0, 0x9F)}},
		{"truncated 2-byte", []byte{'a', 0xC3}, []unit{ch('a'), bad(0xC3)}},
		{"truncated 4-byte", []byte{0xF0, 0x9F, 0x98}, []unit{bad(0xF0, 0x9F, 0x98)}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			checkUnits(t, decodeAll(t, New(BytesCursor(tc.input))), tc.want)
		})
	}
}

func TestInvalidLeadBytesNoLookahead(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "utf8stream")
	defer teardown()
	//
	for b := 0; b <= 0xFF; b++ {
		if !(b >= 0x80 && b <= 0xC1) && b < 0xF5 {
			continue
		}
		cursor := script(bytesOf(byte(b), 0x80, 0x80, 0x80)...)
		s := New(cursor)
		_, err := s.Next()
		if err != decodeError([]byte{byte(b)}) {
			t.Fatalf("lead 0x%x: expected 1-byte decode error, got %v", b, err)
		}
		if cursor.reads != 1 {
			t.Fatalf("lead 0x%x: stream read %d bytes, want 1", b, cursor.reads)
		}
	}
}

func TestEndOfStreamIsSticky(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "utf8stream")
	defer teardown()
	//
	cursor := script()
	s := New(cursor)
	for i := 0; i < 5; i++ {
		if _, err := s.Next(); err != io.EOF {
			t.Fatalf("call %d: expected io.EOF, got %v", i, err)
		}
	}
	if cursor.reads != 1 {
		t.Errorf("cursor was read %d times after exhaustion, want 1", cursor.reads)
	}
}

func TestAgreesWithUTF8Package(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "utf8stream")
	defer teardown()
	//
	// every combination of lead and first continuation byte, padded with
	// valid continuation bytes
	for lead := 0; lead <= 0xFF; lead++ {
		for second := 0; second <= 0xFF; second++ {
			input := []byte{byte(lead), byte(second), 0x80, 0x80}
			wantR, wantN := utf8.DecodeRune(input)
			s := New(BytesCursor(input))
			r, err := s.Next()
			if wantR == utf8.RuneError && wantN == 1 {
				var derr DecodeError
				if !errors.As(err, &derr) {
					t.Fatalf("% x: expected decode error, got %U", input, r)
				}
				continue
			}
			if err != nil {
				t.Fatalf("% x: expected %U, got error %v", input, wantR, err)
			}
			if r != wantR || s.Offset() != int64(wantN) {
				t.Fatalf("% x: got %U/%d, want %U/%d", input, r, s.Offset(), wantR, wantN)
			}
		}
	}
}

func TestIOErrorIsDistinct(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "utf8stream")
	defer teardown()
	//
	cursor := script(step{b: 'a'}, step{err: errBoom}, step{b: 0xE2}, step{err: errBoom}, step{b: 'b'})
	s := New(cursor)
	if r, err := s.Next(); err != nil || r != 'a' {
		t.Fatalf("expected 'a', got %q/%v", r, err)
	}
	_, err := s.Next()
	var ioerr *IOError
	if !errors.As(err, &ioerr) || !errors.Is(err, errBoom) {
		t.Fatalf("expected I/O error wrapping errBoom, got %v", err)
	}
	var derr DecodeError
	if errors.As(err, &derr) {
		t.Fatalf("I/O error must not be a decode error")
	}
	// failure in the middle of a sequence drops the lead byte
	_, err = s.Next()
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected I/O error mid-sequence, got %v", err)
	}
	if r, err := s.Next(); err != nil || r != 'b' {
		t.Fatalf("expected decoding to continue with 'b', got %q/%v", r, err)
	}
	if _, err := s.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if s.Offset() != 3 {
		t.Errorf("offset is %d, want 3", s.Offset())
	}
}

func TestNilCursor(t *testing.T) {
	var s *Stream
	if _, err := s.Next(); err != ErrIllegalArguments {
		t.Fatalf("expected ErrIllegalArguments for nil stream, got %v", err)
	}
	if _, err := New(nil).Next(); err != ErrIllegalArguments {
		t.Fatalf("expected ErrIllegalArguments for nil cursor, got %v", err)
	}
}
