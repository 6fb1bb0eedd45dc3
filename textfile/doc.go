/*
Package textfile provides a byte cursor for reading text files.

A file is read in fragments by a background goroutine, which stays at most a
few fragments ahead of the client. Clients consume the bytes synchronously
through the utf8stream.ByteCursor interface, so decoding large files neither
waits for the complete file nor holds it in memory.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package textfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textfile'
func tracer() tracing.Trace {
	return tracing.Select("textfile")
}
