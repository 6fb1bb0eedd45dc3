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
)

// Format is an interface for report output drivers.
type Format interface {
	Preamble(io.Writer) error
	Report(*Report, io.Writer) error
	Postamble(io.Writer) error
}

// Output writes a sequence of reports to out, using a given format.
func Output(out io.Writer, format Format, reports ...*Report) error {
	if out == nil || format == nil {
		return errors.New("illegal argument: nil")
	}
	if err := format.Preamble(out); err != nil {
		return err
	}
	for _, rep := range reports {
		if rep == nil {
			continue
		}
		if err := format.Report(rep, out); err != nil {
			return err
		}
	}
	return format.Postamble(out)
}

// counts renders the size of the input scanned for rep.
func counts(rep *Report) string {
	return fmt.Sprintf("%d %s, %d %s, %d %s",
		rep.Bytes, plural(rep.Bytes, "byte", "bytes"),
		rep.Runes, plural(rep.Runes, "rune", "runes"),
		rep.Lines, plural(int64(rep.Lines), "line", "lines"))
}

func plural(n int64, singular, pl string) string {
	if n == 1 {
		return singular
	}
	return pl
}
