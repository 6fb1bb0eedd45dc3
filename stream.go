package utf8stream

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
	"io"
)

// Stream decodes the bytes of a ByteCursor into runes.
//
// A Stream reads from its cursor only when asked for the next rune, and every
// byte is read exactly once. The only state kept between calls is a single
// pending byte: when a continuation byte turns out to be invalid, it is kept
// back to be re-evaluated as the lead byte of the next sequence.
//
// A Stream must not be used from more than one goroutine at a time.
type Stream struct {
	cursor    ByteCursor
	pending   byte  // byte kept back for resynchronization
	staged    bool  // is pending valid?
	exhausted bool  // cursor has reported io.EOF
	offset    int64 // bytes consumed into results so far
	err       error // first I/O failure seen by Runes
}

// New creates a stream decoding the bytes of c.
func New(c ByteCursor) *Stream {
	return &Stream{cursor: c}
}

// NewReader creates a stream decoding the bytes of r. See NewCursor.
func NewReader(r io.Reader) *Stream {
	return New(NewCursor(r))
}

// Offset returns the number of bytes consumed into decoded runes or errors so
// far. A pending byte is not yet counted. Before a call to Next, Offset is the
// byte position where the next rune (or error) starts.
func (s *Stream) Offset() int64 {
	if s == nil {
		return 0
	}
	return s.offset
}

// Next decodes the next rune.
//
// Next returns one of
//
//   - a valid rune and a nil error,
//   - a DecodeError for malformed input; the stream will continue with the
//     byte following the invalid sequence,
//   - an *IOError if the cursor failed; bytes already read for the current
//     sequence are lost,
//   - io.EOF if the input is exhausted. Every subsequent call will return
//     io.EOF again.
func (s *Stream) Next() (rune, error) {
	if s == nil || s.cursor == nil {
		return 0, ErrIllegalArguments
	}
	if s.exhausted {
		return 0, io.EOF
	}
	var lead byte
	if s.staged {
		lead, s.staged = s.pending, false
	} else {
		b, err := s.cursor.ReadByte()
		if err == io.EOF {
			s.exhausted = true
			return 0, io.EOF
		} else if err != nil {
			return 0, s.ioError(err, 0)
		}
		lead = b
	}
	class := leads[lead]
	if !class.valid() {
		return 0, s.malformed([]byte{lead})
	}
	if class.size == 1 {
		s.offset++
		return rune(lead), nil
	}
	var seq [4]byte
	seq[0] = lead
	n := 1
	cp := rune(lead & class.mask)
	for i := 1; i < int(class.size); i++ {
		b, err := s.cursor.ReadByte()
		if err == io.EOF {
			s.exhausted = true
			return 0, s.malformed(seq[:n])
		} else if err != nil {
			return 0, s.ioError(err, n)
		}
		if !class.accepts(i, b) {
			s.pending, s.staged = b, true
			return 0, s.malformed(seq[:n])
		}
		seq[n] = b
		n++
		cp = accumulate(cp, b)
	}
	s.offset += int64(n)
	return cp, nil
}

// malformed creates a decode error for the bytes consumed by the current
// decode attempt.
func (s *Stream) malformed(seq []byte) error {
	err := decodeError(seq)
	tracer().Debugf("offset %d: %v", s.offset, err)
	s.offset += int64(len(seq))
	return err
}

// ioError wraps a cursor failure. The n bytes already consumed for the
// current decode attempt are dropped.
func (s *Stream) ioError(err error, n int) error {
	tracer().Errorf("offset %d: read failed, dropping %d byte(s): %v", s.offset, n, err)
	s.offset += int64(n)
	return &IOError{Err: err}
}
