/*
Package utf8stream decodes a stream of raw bytes into runes, one rune at a time.

Decoding is incremental: a Stream pulls bytes from a ByteCursor only when the
client asks for the next rune, and it never holds more than a single byte
between two calls. Any sequential byte source will do, be it a file, a network
connection or an in-memory buffer.

Validation

Decoding is strict RFC 3629 UTF-8:

	UTF8-1      = %x00-7F
	UTF8-2      = %xC2-DF UTF8-tail
	UTF8-3      = %xE0 %xA0-BF UTF8-tail / %xE1-EC 2( UTF8-tail ) /
	              %xED %x80-9F UTF8-tail / %xEE-EF 2( UTF8-tail )
	UTF8-4      = %xF0 %x90-BF 2( UTF8-tail ) / %xF1-F3 3( UTF8-tail ) /
	              %xF4 %x80-8F 2( UTF8-tail )
	UTF8-tail   = %x80-BF

Overlong encodings, surrogate code points and values beyond U+10FFFF are
rejected. A malformed sequence is reported as a DecodeError listing exactly the
bytes which have been consumed for it. If the byte which revealed the error
might start a new sequence, it is kept back and re-evaluated by the next call.
Clients therefore may continue decoding after an error without losing or
duplicating input.

Errors of the underlying byte source are reported as *IOError and are never
mixed up with decode errors.

	s := utf8stream.NewReader(conn)
	for r, err := range s.All() {
	    var derr utf8stream.DecodeError
	    if errors.As(err, &derr) {
	        log.Printf("skipping %v", derr)
	        continue
	    } else if err != nil {
	        return err
	    }
	    process(r)
	}

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package utf8stream

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'utf8stream'
func tracer() tracing.Trace {
	return tracing.Select("utf8stream")
}
