/*
 * MIT License
 *
 * Copyright (c) 2023 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package bytesio

import (
	"encoding/binary"

	liberr "github.com/nabbar/golib/errors"
)

// Reader is a bounded cursor over a byte slice it does not own. Every read
// advances the cursor and fails closed (returns an error, never panics) when
// the requested span would run past the end of the slice.
type Reader struct {
	buf []byte
	pos int
}

func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

func (r *Reader) Len() int       { return len(r.buf) - r.pos }
func (r *Reader) Pos() int       { return r.pos }
func (r *Reader) Remaining() []byte { return r.buf[r.pos:] }

func (r *Reader) need(n int) liberr.Error {
	if n < 0 || r.Len() < n {
		return ErrorShortBuffer.Error(nil)
	}
	return nil
}

func (r *Reader) Skip(n int) liberr.Error {
	if err := r.need(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}

func (r *Reader) Bytes(n int) ([]byte, liberr.Error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *Reader) U8() (uint8, liberr.Error) {
	b, err := r.Bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) U16() (uint16, liberr.Error) {
	b, err := r.Bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *Reader) U24() (uint32, liberr.Error) {
	b, err := r.Bytes(3)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]), nil
}

func (r *Reader) U32() (uint32, liberr.Error) {
	b, err := r.Bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *Reader) U64() (uint64, liberr.Error) {
	b, err := r.Bytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// U32LE / U64LE read little-endian fixed integers, used for the TL wire
// constructors (§6), which are little-endian, distinct from the big-endian
// framing helpers above used by generic length-prefixed sub-slices.
func (r *Reader) U32LE() (uint32, liberr.Error) {
	b, err := r.Bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) U64LE() (uint64, liberr.Error) {
	b, err := r.Bytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// LengthPrefixed8/16/24 read a u8/u16/u24 big-endian length prefix followed
// by that many bytes. The returned slice is a sub-slice of the parent and
// must not escape it (callers must copy before retaining beyond the parent's
// lifetime).
func (r *Reader) LengthPrefixed8() ([]byte, liberr.Error) {
	n, err := r.U8()
	if err != nil {
		return nil, err
	}
	return r.Bytes(int(n))
}

func (r *Reader) LengthPrefixed16() ([]byte, liberr.Error) {
	n, err := r.U16()
	if err != nil {
		return nil, err
	}
	return r.Bytes(int(n))
}

func (r *Reader) LengthPrefixed24() ([]byte, liberr.Error) {
	n, err := r.U24()
	if err != nil {
		return nil, err
	}
	return r.Bytes(int(n))
}

// TLBytes decodes a TL bare-string/bytes field: one length byte if < 254,
// else 0xFE followed by a 24-bit little-endian length; the field (length
// prefix + payload) is then padded with zero bytes to a multiple of 4.
func (r *Reader) TLBytes() ([]byte, liberr.Error) {
	first, err := r.U8()
	if err != nil {
		return nil, err
	}

	var (
		n        int
		prefixSz int
	)

	if first < 254 {
		n = int(first)
		prefixSz = 1
	} else {
		b, err := r.Bytes(3)
		if err != nil {
			return nil, err
		}
		n = int(b[0]) | int(b[1])<<8 | int(b[2])<<16
		prefixSz = 4
	}

	data, err := r.Bytes(n)
	if err != nil {
		return nil, err
	}

	pad := (4 - (prefixSz+n)%4) % 4
	if err := r.Skip(pad); err != nil {
		return nil, err
	}

	return data, nil
}

// Writer is a growable byte buffer mirroring Reader's fixed-width helpers.
type Writer struct {
	buf []byte
}

func NewWriter() *Writer {
	return &Writer{}
}

func NewWriterCapacity(n int) *Writer {
	return &Writer{buf: make([]byte, 0, n)}
}

func (w *Writer) Bytes() []byte { return w.buf }
func (w *Writer) Len() int      { return len(w.buf) }

func (w *Writer) PutBytes(b []byte) { w.buf = append(w.buf, b...) }
func (w *Writer) PutU8(v uint8)     { w.buf = append(w.buf, v) }

func (w *Writer) PutU16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) PutU24(v uint32) {
	w.buf = append(w.buf, byte(v>>16), byte(v>>8), byte(v))
}

func (w *Writer) PutU32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) PutU64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) PutU32LE(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) PutU64LE(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// PutTLBytes encodes a TL bare-string/bytes field with its length prefix and
// zero padding to a multiple of 4, per the TL wire convention.
func (w *Writer) PutTLBytes(data []byte) {
	n := len(data)
	var prefixSz int

	if n < 254 {
		w.PutU8(uint8(n))
		prefixSz = 1
	} else {
		w.PutU8(254)
		w.buf = append(w.buf, byte(n), byte(n>>8), byte(n>>16))
		prefixSz = 4
	}

	w.PutBytes(data)

	pad := (4 - (prefixSz+n)%4) % 4
	for i := 0; i < pad; i++ {
		w.PutU8(0)
	}
}
