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

// ByteCursor is a sequential source of bytes.
//
// ReadByte returns io.EOF if the cursor is exhausted. Any other error is
// considered an I/O failure of the source. ByteCursor is satisfied by every
// io.ByteReader.
type ByteCursor interface {
	ReadByte() (byte, error)
}

// maxEmptyReads bounds the number of (0, nil) results tolerated from an
// io.Reader before giving up with io.ErrNoProgress.
const maxEmptyReads = 100

// NewCursor returns a byte cursor for r.
//
// If r already implements io.ByteReader, it is used as is. Otherwise the
// cursor reads from r one byte per call, without reading ahead. Clients who
// want buffering may wrap r in a bufio.Reader first.
func NewCursor(r io.Reader) ByteCursor {
	if br, ok := r.(io.ByteReader); ok {
		return br
	}
	return &readerCursor{r: r}
}

type readerCursor struct {
	r   io.Reader
	buf [1]byte
}

func (rc *readerCursor) ReadByte() (byte, error) {
	for i := 0; i < maxEmptyReads; i++ {
		n, err := rc.r.Read(rc.buf[:])
		if n == 1 {
			// a trailing io.EOF will be reported again by the next call
			return rc.buf[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
	return 0, io.ErrNoProgress
}

// BytesCursor returns a byte cursor for an in-memory byte slice.
// The slice must not be modified while the cursor is in use.
func BytesCursor(b []byte) ByteCursor {
	return &sliceCursor{b: b}
}

// StringCursor returns a byte cursor for the bytes of a string.
func StringCursor(s string) ByteCursor {
	return &sliceCursor{b: []byte(s)}
}

type sliceCursor struct {
	b   []byte
	pos int
}

func (sc *sliceCursor) ReadByte() (byte, error) {
	if sc.pos >= len(sc.b) {
		return 0, io.EOF
	}
	b := sc.b[sc.pos]
	sc.pos++
	return b, nil
}
