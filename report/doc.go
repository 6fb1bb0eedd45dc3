/*
Package report scans byte streams for invalid UTF-8 and reports the findings.

Scan drives a utf8stream.Stream to its end and records every malformed
sequence together with its position. Positions are given as byte offset and
as line/column, where the column counts display positions of a fixed width
font: a wide East Asian grapheme occupies two columns, a combining sequence
just one.

Reports may be output in different formats, see Console and HTML.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package report

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'report'
func tracer() tracing.Trace {
	return tracing.Select("report")
}
