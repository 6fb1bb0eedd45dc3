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
	"strconv"
	"strings"
)

// StreamError is an error type for the utf8stream module.
type StreamError string

func (e StreamError) Error() string {
	return string(e)
}

// ErrIllegalArguments is flagged whenever a stream is operated without a
// byte cursor.
const ErrIllegalArguments = StreamError("illegal arguments")

// ErrClosed is flagged by byte cursors which have been closed by the client.
const ErrClosed = StreamError("byte cursor closed")

// DecodeError reports one malformed UTF-8 sequence.
//
// It holds the 1 to 3 bytes consumed for the failed decode attempt, in input
// order. A byte which disclosed the error but may start the next sequence is
// never part of a DecodeError.
//
// DecodeError is comparable: errors for equal byte sequences are equal.
type DecodeError struct {
	bytes [3]byte
	n     uint8
}

func decodeError(seq []byte) DecodeError {
	e := DecodeError{n: uint8(len(seq))}
	copy(e.bytes[:], seq)
	return e
}

// Bytes returns a copy of the invalid bytes.
func (e DecodeError) Bytes() []byte {
	b := make([]byte, e.n)
	copy(b, e.bytes[:e.n])
	return b
}

// Len returns the number of invalid bytes, which is between 1 and 3.
func (e DecodeError) Len() int {
	return int(e.n)
}

// Error renders e as
//
//	invalid utf-8 sequence [0xf0, 0x90, 0x80]
func (e DecodeError) Error() string {
	var sb strings.Builder
	sb.WriteString("invalid utf-8 sequence [")
	for i := 0; i < int(e.n); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("0x")
		sb.WriteString(strconv.FormatUint(uint64(e.bytes[i]), 16))
	}
	sb.WriteByte(']')
	return sb.String()
}

// IOError reports a failure of the byte cursor underlying a stream.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return "utf8stream: read failed: " + e.Err.Error()
}

// Unwrap returns the error of the byte cursor.
func (e *IOError) Unwrap() error {
	return e.Err
}
