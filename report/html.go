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
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTML is a format for simple HTML output.
//
// Every report is rendered as a <section> with a heading, a summary paragraph
// and a table of findings. Clients may style the output using the CSS classes
// "u8-report", "u8-valid", "u8-invalid" and "u8-findings".
type HTML struct {
	// Standalone wraps the reports in a complete HTML document.
	Standalone bool
}

// Preamble opens an HTML document if h is standalone.
// (Part of interface Format)
func (h *HTML) Preamble(w io.Writer) error {
	if !h.Standalone {
		return nil
	}
	_, err := io.WriteString(w, "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\">"+
		"<title>UTF-8 check</title></head><body>\n")
	return err
}

// Report outputs rep as an HTML section.
// (Part of interface Format)
func (h *HTML) Report(rep *Report, w io.Writer) error {
	if err := html.Render(w, reportNode(rep)); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Postamble closes the HTML document if h is standalone.
// (Part of interface Format)
func (h *HTML) Postamble(w io.Writer) error {
	if !h.Standalone {
		return nil
	}
	_, err := io.WriteString(w, "</body></html>\n")
	return err
}

func reportNode(rep *Report) *html.Node {
	section := element(atom.Section, "u8-report")
	h2 := element(atom.H2, "")
	h2.AppendChild(text(rep.Name))
	section.AppendChild(h2)
	p := element(atom.P, "u8-valid")
	if !rep.Valid() {
		p = element(atom.P, "u8-invalid")
	}
	p.AppendChild(text(summary(rep)))
	section.AppendChild(p)
	if len(rep.Findings) == 0 {
		return section
	}
	table := element(atom.Table, "u8-findings")
	head := element(atom.Tr, "")
	for _, title := range []string{"Line", "Column", "Offset", "Invalid bytes"} {
		th := element(atom.Th, "")
		th.AppendChild(text(title))
		head.AppendChild(th)
	}
	thead := element(atom.Thead, "")
	thead.AppendChild(head)
	table.AppendChild(thead)
	tbody := element(atom.Tbody, "")
	for _, f := range rep.Findings {
		tr := element(atom.Tr, "")
		for _, cell := range []string{
			strconv.Itoa(f.Line),
			strconv.Itoa(f.Column),
			fmt.Sprintf("0x%x", f.Offset),
			fmt.Sprintf("% x", f.Err.Bytes()),
		} {
			td := element(atom.Td, "")
			td.AppendChild(text(cell))
			tr.AppendChild(td)
		}
		tbody.AppendChild(tr)
	}
	table.AppendChild(tbody)
	section.AppendChild(table)
	return section
}

func summary(rep *Report) string {
	s := "valid UTF-8"
	if !rep.Valid() {
		s = fmt.Sprintf("%d invalid %s", rep.Invalid,
			plural(int64(rep.Invalid), "sequence", "sequences"))
		if rep.Truncated {
			s += fmt.Sprintf(", %d listed", len(rep.Findings))
		}
	}
	return fmt.Sprintf("%s (%s)", s, counts(rep))
}

func element(a atom.Atom, class string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
	}
	if class != "" {
		n.Attr = []html.Attribute{{Key: "class", Val: class}}
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
