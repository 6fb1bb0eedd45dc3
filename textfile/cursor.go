package textfile

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
	"context"
	"fmt"
	"io"
	"os"

	"github.com/guiguan/caster"
	"github.com/npillmayer/utf8stream"
)

// Some constants for fragment size defaults
const (
	twoKb     = 2048
	sixKb     = 6144
	tenKb     = 10240
	hundredKb = 102400
	oneMb     = 1048576
)

// prefetch is the number of fragments the loader may read ahead of the client.
const prefetch = 4

// fragment is a chunk of file content, as published by the loader.
type fragment struct {
	pos     int64  // start position of this fragment within the file
	content []byte // bytes successfully read
	err     error  // read error after content, or io.EOF for the final marker
}

// textFile represents an OS file which is read by a Cursor.
type textFile struct {
	path string      // file name
	info os.FileInfo // result from Stat(path)
	file *os.File    // file handle
}

// Cursor is a utf8stream.ByteCursor for the content of a text file.
//
// The file is loaded asynchronously in fragments. A Cursor must be closed
// after use to release the file and the loader goroutine.
type Cursor struct {
	tf       *textFile
	cast     *caster.Caster     // broadcaster for async fragment loading
	frags    <-chan interface{} // subscription to cast
	stop     <-chan struct{}    // closed when the loader is cancelled
	cancel   context.CancelFunc // stops the loader
	current  *fragment          // fragment currently read from
	pos      int                // read position within current
	consumed int64              // bytes handed out so far
	done     bool               // final marker has been seen
	closed   bool
}

var _ utf8stream.ByteCursor = (*Cursor)(nil)

// Open opens a file, which must be a regular file, and starts loading it.
// Clients may indicate a recommended fragment length. If fragSize is 0, Open
// will choose a sensible default depending on the file's size.
//
// Opening of the file is always done synchronously.
func Open(name string, fragSize int64) (*Cursor, error) {
	tf, err := openFile(name)
	if err != nil {
		return nil, err
	}
	size := tf.info.Size()
	if fragSize <= 0 || fragSize > tenKb {
		switch {
		case size < 1024:
			fragSize = 64
		case size < tenKb:
			fragSize = 256
		case size < hundredKb:
			fragSize = 512
		case size < oneMb:
			fragSize = twoKb
		default:
			fragSize = sixKb
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	cast := caster.New(ctx)
	frags, _ := cast.Sub(ctx, prefetch) // always succeeds on a fresh caster
	c := &Cursor{
		tf:     tf,
		cast:   cast,
		frags:  frags,
		stop:   ctx.Done(),
		cancel: cancel,
	}
	tracer().Debugf("loading %s (%d bytes) in fragments of %d", name, size, fragSize)
	go loadFragments(tf, cast, fragSize)
	return c, nil
}

// openFile opens an OS file and collect some useful information on it,
// checking for error conditions.
func openFile(name string) (*textFile, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, err
	} else if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("textfile: %s is not a regular file", name)
	}
	file, err := os.Open(name) // just open for read access
	if err != nil {
		return nil, err
	}
	return &textFile{
		path: name,
		info: fi,
		file: file,
	}, nil
}

// Name returns the path of the file.
func (c *Cursor) Name() string {
	return c.tf.path
}

// Size returns the size of the file in bytes, as found when opening it.
func (c *Cursor) Size() int64 {
	return c.tf.info.Size()
}

// ReadByte returns the next byte of the file.
//
// A failure to load a fragment is reported once, after the bytes of the
// fragment which could be read. The cursor then reports io.EOF.
func (c *Cursor) ReadByte() (byte, error) {
	if c.closed {
		return 0, utf8stream.ErrClosed
	}
	for c.current == nil || c.pos >= len(c.current.content) {
		if c.current != nil && c.current.err != nil {
			err := c.current.err
			c.current = nil
			if err == io.EOF {
				c.done = true
			}
			return 0, err
		}
		if c.done {
			return 0, io.EOF
		}
		msg, ok := <-c.frags
		if !ok {
			// the broadcaster shut down before the final marker
			c.done = true
			return 0, io.ErrUnexpectedEOF
		}
		c.current, c.pos = msg.(*fragment), 0
	}
	b := c.current.content[c.pos]
	c.pos++
	c.consumed++
	return b, nil
}

// Close stops loading and closes the file. Calling Close more than once has
// no effect.
func (c *Cursor) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	// The caster blocks publishing into a full subscription, which would
	// keep it from ever seeing the close request.
	go drain(c.frags, c.stop)
	c.cast.Close()
	c.cancel()
	tracer().Debugf("closing %s after %d bytes", c.tf.path, c.consumed)
	return c.tf.file.Close()
}

// drain discards fragments until the subscription closes or stop fires.
func drain(frags <-chan interface{}, stop <-chan struct{}) {
	for {
		select {
		case _, ok := <-frags:
			if !ok {
				return
			}
		case <-stop:
			return
		}
	}
}

// --- File loading goroutine ------------------------------------------------

// loadFragments reads the file front to back and publishes every fragment,
// followed by a final marker. Publishing blocks while the subscriber is
// `prefetch` fragments behind, and fails once the cursor has been closed.
func loadFragments(tf *textFile, cast *caster.Caster, fragSize int64) {
	size := tf.info.Size()
	for pos := int64(0); pos < size; pos += fragSize {
		length := min(fragSize, size-pos)
		buf := make([]byte, length)
		cnt, err := tf.file.ReadAt(buf, pos)
		if err == io.EOF && int64(cnt) == length {
			err = nil
		} else if err == nil && int64(cnt) < length {
			err = io.ErrUnexpectedEOF
		}
		frag := &fragment{pos: pos, content: buf[:cnt]}
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF // file has been truncated meanwhile
			}
			tracer().Errorf("error loading fragment at %d of %s: %v", pos, tf.path, err)
			frag.err = fmt.Errorf("textfile: loading %s at %d: %w", tf.path, pos+int64(cnt), err)
		}
		if !cast.Pub(frag) {
			return // cursor has been closed
		}
		if err != nil {
			break
		}
	}
	cast.Pub(&fragment{pos: size, err: io.EOF})
}
