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
	"errors"
	"io"
	"iter"
	"unicode/utf8"
)

// All returns an iterator over the decoded units of s.
//
// Decode errors and I/O failures are yielded along with a zero rune, and
// iteration continues after them. Iteration ends at end-of-stream or when the
// consumer stops.
func (s *Stream) All() iter.Seq2[rune, error] {
	return func(yield func(rune, error) bool) {
		for {
			r, err := s.Next()
			if err == io.EOF {
				return
			}
			if !yield(r, err) || err == ErrIllegalArguments {
				return
			}
		}
	}
}

// Runes returns an iterator over the runes of s, substituting
// utf8.RuneError for every malformed sequence.
//
// Iteration stops at the first I/O failure, which will be reported by Err.
func (s *Stream) Runes() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for {
			r, err := s.Next()
			if err == io.EOF {
				return
			}
			var derr DecodeError
			if errors.As(err, &derr) {
				r = utf8.RuneError
			} else if err != nil {
				if s != nil && s.err == nil {
					s.err = err
				}
				return
			}
			if !yield(r) {
				return
			}
		}
	}
}

// Err returns the first I/O failure which stopped an iteration by Runes.
func (s *Stream) Err() error {
	if s == nil {
		return ErrIllegalArguments
	}
	return s.err
}
