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

// The default lowest and highest continuation byte.
const (
	locb = 0x80 // 1000 0000
	hicb = 0xBF // 1011 1111
)

// seqClass describes the UTF-8 sequence a lead byte announces.
//
// Only the first continuation byte has a lead-dependent range. This is
// where overlong encodings, surrogates and values beyond U+10FFFF are cut
// off; every further continuation byte is in [locb, hicb].
type seqClass struct {
	size uint8 // total length of the sequence in bytes, 0 for invalid leads
	mask byte  // payload bits of the lead byte
	lo   byte  // lowest value for the first continuation byte
	hi   byte  // highest value for the first continuation byte
}

func (c seqClass) valid() bool {
	return c.size > 0
}

// accepts reports whether b may appear as continuation byte number i
// (counting from 1) of the sequence.
func (c seqClass) accepts(i int, b byte) bool {
	if i == 1 {
		return c.lo <= b && b <= c.hi
	}
	return locb <= b && b <= hicb
}

// leadRanges lists the valid lead bytes of RFC 3629. Bytes not covered are
// never valid as a lead: 0x80–0xC1 and 0xF5–0xFF.
var leadRanges = [...]struct {
	first, last byte
	class       seqClass
}{
	{0x00, 0x7F, seqClass{size: 1, mask: 0x7F}},
	{0xC2, 0xDF, seqClass{size: 2, mask: 0x1F, lo: locb, hi: hicb}},
	{0xE0, 0xE0, seqClass{size: 3, mask: 0x0F, lo: 0xA0, hi: hicb}},
	{0xE1, 0xEC, seqClass{size: 3, mask: 0x0F, lo: locb, hi: hicb}},
	{0xED, 0xED, seqClass{size: 3, mask: 0x0F, lo: locb, hi: 0x9F}},
	{0xEE, 0xEF, seqClass{size: 3, mask: 0x0F, lo: locb, hi: hicb}},
	{0xF0, 0xF0, seqClass{size: 4, mask: 0x07, lo: 0x90, hi: hicb}},
	{0xF1, 0xF3, seqClass{size: 4, mask: 0x07, lo: locb, hi: hicb}},
	{0xF4, 0xF4, seqClass{size: 4, mask: 0x07, lo: locb, hi: 0x8F}},
}

// leads is the lookup table for lead bytes, indexed by byte value.
var leads [256]seqClass

func init() {
	for _, r := range leadRanges {
		for b := int(r.first); b <= int(r.last); b++ {
			leads[b] = r.class
		}
	}
}

// accumulate shifts the continuation payload of b into code point cp.
func accumulate(cp rune, b byte) rune {
	return cp<<6 | rune(b&0x3F)
}
