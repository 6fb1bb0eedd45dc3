package report

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
	"github.com/npillmayer/utf8stream"
)

// Finding is a malformed UTF-8 sequence found by Scan.
type Finding struct {
	Offset int64 // byte offset of the first invalid byte
	Line   int   // 1-based line number
	Column int   // 1-based display column
	Err    utf8stream.DecodeError
}

func (f Finding) String() string {
	return fmt.Sprintf("%d:%d: offset 0x%x: %v", f.Line, f.Column, f.Offset, f.Err)
}

// Report summarizes a scan of an input.
type Report struct {
	Name      string    // name of the input, e.g. a file name
	Bytes     int64     // number of bytes scanned
	Runes     int64     // number of valid runes
	Lines     int       // number of lines, counting an unterminated last line
	Invalid   int       // number of malformed sequences
	Findings  []Finding // details of malformed sequences, see WithLimit
	Truncated bool      // Findings were limited
}

// Valid reports whether the input is valid UTF-8 throughout.
func (rep *Report) Valid() bool {
	return rep.Invalid == 0
}

// Option configures a scan.
type Option func(*scanner)

// WithContext sets the context for measuring the display width of graphemes.
// The default is uax11.LatinContext.
func WithContext(ctx *uax11.Context) Option {
	return func(sc *scanner) {
		if ctx != nil {
			sc.context = ctx
		}
	}
}

// WithLimit limits the number of findings recorded. Malformed sequences beyond
// the limit are still counted. A limit <= 0 means no limit.
func WithLimit(n int) Option {
	return func(sc *scanner) {
		sc.limit = n
	}
}

type scanner struct {
	context *uax11.Context
	limit   int
	column  int    // display width of the measured part of the current line
	segment []rune // runes following column, not yet measured
}

// maxSegment bounds the runes held back for measuring. Longer runs of
// non-ASCII text are measured in pieces, split before a base character.
const maxSegment = 64

var setupGraphemes sync.Once

// Scan decodes s up to end-of-stream and reports all malformed sequences.
//
// An I/O failure stops the scan. The report for the bytes read so far is
// returned along with the error.
func Scan(name string, s *utf8stream.Stream, opts ...Option) (*Report, error) {
	if s == nil {
		return nil, utf8stream.ErrIllegalArguments
	}
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	sc := &scanner{context: uax11.LatinContext}
	for _, opt := range opts {
		opt(sc)
	}
	rep := &Report{Name: name}
	lineStart := true
	for {
		offset := s.Offset()
		r, err := s.Next()
		if err == io.EOF {
			break
		}
		var derr utf8stream.DecodeError
		if errors.As(err, &derr) {
			if lineStart {
				rep.Lines++
				lineStart = false
			}
			rep.Invalid++
			if sc.limit > 0 && len(rep.Findings) >= sc.limit {
				rep.Truncated = true
			} else {
				rep.Findings = append(rep.Findings, Finding{
					Offset: offset,
					Line:   rep.Lines,
					Column: sc.position(),
					Err:    derr,
				})
			}
			sc.invalid()
			continue
		} else if err != nil {
			rep.Bytes = s.Offset()
			tracer().Errorf("scan of %s stopped at offset %d: %v", name, offset, err)
			return rep, fmt.Errorf("report: scanning %s: %w", name, err)
		}
		rep.Runes++
		if lineStart {
			rep.Lines++
			lineStart = false
		}
		if r == '\n' {
			sc.newline()
			lineStart = true
		} else {
			sc.add(r)
		}
	}
	rep.Bytes = s.Offset()
	tracer().Infof("%s: %d bytes, %d runes, %d lines, %d invalid sequences",
		name, rep.Bytes, rep.Runes, rep.Lines, rep.Invalid)
	return rep, nil
}

// add appends a rune to the current line. An ASCII rune always starts a new
// grapheme cluster, so everything before it can be measured.
func (sc *scanner) add(r rune) {
	if r == utf8.RuneError { // encoded U+FFFD, grapheme cannot segment it
		sc.invalid()
		return
	}
	if r < utf8.RuneSelf || (len(sc.segment) >= maxSegment && !unicode.Is(unicode.M, r)) {
		sc.measure()
	}
	sc.segment = append(sc.segment, r)
}

// invalid accounts for a malformed sequence, which is displayed as a single
// replacement character.
func (sc *scanner) invalid() {
	sc.measure()
	sc.column++
}

func (sc *scanner) newline() {
	sc.segment = sc.segment[:0]
	sc.column = 0
}

// measure moves the pending segment into column. The segment never contains
// a replacement character.
func (sc *scanner) measure() {
	switch {
	case len(sc.segment) == 0:
		return
	case len(sc.segment) == 1 && sc.segment[0] < utf8.RuneSelf:
		if unicode.IsPrint(sc.segment[0]) {
			sc.column++
		}
	default:
		gstr := grapheme.StringFromString(string(sc.segment))
		sc.column += uax11.StringWidth(gstr, sc.context)
	}
	sc.segment = sc.segment[:0]
}

// position returns the display column following the current line's text.
func (sc *scanner) position() int {
	sc.measure()
	return sc.column + 1
}
