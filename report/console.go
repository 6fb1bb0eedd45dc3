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
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Console is a format for outputting reports to a console or to a plain
// text file.
//
// Every finding is printed on a line of its own, prefixed by the input's name
// and position, in the style of compiler error messages. Each report is closed
// by a summary line.
type Console struct {
	name    *color.Color
	pos     *color.Color
	invalid *color.Color
	valid   *color.Color
}

// NewConsole creates a new console format. If colored is true, names,
// positions and messages are output with ANSI colors.
func NewConsole(colored bool) *Console {
	c := &Console{
		name:    color.New(color.Bold),
		pos:     color.New(color.FgCyan),
		invalid: color.New(color.FgRed),
		valid:   color.New(color.FgGreen),
	}
	for _, col := range []*color.Color{c.name, c.pos, c.invalid, c.valid} {
		if colored {
			col.EnableColor()
		} else {
			col.DisableColor()
		}
	}
	return c
}

// ConsoleFor creates a console format for w, which will use colors if w is a
// terminal.
func ConsoleFor(w io.Writer) *Console {
	colored := false
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		colored = !color.NoColor
	}
	tracer().Debugf("console output colored = %v", colored)
	return NewConsole(colored)
}

// Preamble is part of interface Format. Console output has no preamble.
func (c *Console) Preamble(w io.Writer) error {
	return nil
}

// Report outputs the findings of rep, followed by a summary line.
// (Part of interface Format)
func (c *Console) Report(rep *Report, w io.Writer) error {
	for _, f := range rep.Findings {
		if _, err := c.name.Fprint(w, rep.Name); err != nil {
			return err
		}
		if _, err := c.pos.Fprintf(w, ":%d:%d:", f.Line, f.Column); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, " offset 0x%x: ", f.Offset); err != nil {
			return err
		}
		if _, err := c.invalid.Fprintln(w, f.Err.Error()); err != nil {
			return err
		}
	}
	if rep.Truncated {
		more := rep.Invalid - len(rep.Findings)
		if _, err := fmt.Fprintf(w, "%s: ... %d more invalid %s\n", rep.Name, more,
			plural(int64(more), "sequence", "sequences")); err != nil {
			return err
		}
	}
	if _, err := c.name.Fprint(w, rep.Name); err != nil {
		return err
	}
	var err error
	if rep.Valid() {
		_, err = c.valid.Fprint(w, ": valid UTF-8")
	} else {
		_, err = c.invalid.Fprintf(w, ": %d invalid %s", rep.Invalid,
			plural(int64(rep.Invalid), "sequence", "sequences"))
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, " (%s)\n", counts(rep))
	return err
}

// Postamble is part of interface Format. Console output has no postamble.
func (c *Console) Postamble(w io.Writer) error {
	return nil
}
