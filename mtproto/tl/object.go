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

package tl

import (
	liberr "github.com/nabbar/golib/errors"

	"github.com/nabbar/mtproto/bytesio"
)

// maxVector bounds vector element counts decoded from the wire; a hostile or
// corrupt peer cannot force an unbounded allocation.
const maxVector = 1 << 20

// Object is implemented by every recognized schema type. Constructor returns
// the little-endian constructor id the type encodes under.
type Object interface {
	Constructor() uint32
	Encode(w *bytesio.Writer)
}

// decoderFunc decodes the body that follows a constructor id already
// consumed by the caller.
type decoderFunc func(r *bytesio.Reader) (Object, liberr.Error)

var decoders = map[uint32]decoderFunc{}

// register is called from each schema file's init() to populate the
// constructor-id table; panics on a duplicate id, which would be a bug in
// this package, not adversarial input.
func register(id uint32, fn decoderFunc) {
	if _, dup := decoders[id]; dup {
		panic("tl: duplicate constructor registration")
	}
	decoders[id] = fn
}

// Unparsed is the opaque fallback variant: a recognized-as-framed but
// not-individually-decoded object, for constructors the caller handles at a
// higher layer (schema-level API responses the dispatcher only forwards).
type Unparsed struct {
	ID   uint32
	Body []byte
}

func (u *Unparsed) Constructor() uint32 { return u.ID }

func (u *Unparsed) Encode(w *bytesio.Writer) {
	w.PutU32LE(u.ID)
	w.PutBytes(u.Body)
}

// Decode reads one constructor id and dispatches to its decoder. Unknown
// constructors are not an error: the remainder of the reader is captured
// whole into an Unparsed, since this package only recognizes a fixed subset
// of the schema and callers must tolerate the rest.
func Decode(r *bytesio.Reader) (Object, liberr.Error) {
	id, err := r.U32LE()
	if err != nil {
		return nil, err
	}

	if fn, ok := decoders[id]; ok {
		return fn(r)
	}

	return &Unparsed{ID: id, Body: append([]byte(nil), r.Remaining()...)}, nil
}

// DecodeExact is Decode but additionally requires the reader to be fully
// consumed, for callers that know the buffer holds exactly one object.
func DecodeExact(r *bytesio.Reader) (Object, liberr.Error) {
	obj, err := Decode(r)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, ErrorTrailingBytes.Error(nil)
	}
	return obj, nil
}

// Encode serializes any Object with its constructor id prefix.
func Encode(o Object) []byte {
	w := bytesio.NewWriter()
	w.PutU32LE(o.Constructor())
	o.Encode(w)
	return w.Bytes()
}

func readVectorLen(r *bytesio.Reader) (int, liberr.Error) {
	const vectorConstructor = 0x1cb5c415

	id, err := r.U32LE()
	if err != nil {
		return 0, err
	}
	if id != vectorConstructor {
		return 0, ErrorUnknownConstructor.Error(nil)
	}

	n, err := r.U32LE()
	if err != nil {
		return 0, err
	}
	if n > maxVector {
		return 0, ErrorVectorTooLarge.Error(nil)
	}
	return int(n), nil
}

func putVectorHeader(w *bytesio.Writer, n int) {
	const vectorConstructor = 0x1cb5c415
	w.PutU32LE(vectorConstructor)
	w.PutU32LE(uint32(n))
}

func readBigBytes(r *bytesio.Reader) ([]byte, liberr.Error) {
	return r.TLBytes()
}

func putBigBytes(w *bytesio.Writer, b []byte) {
	w.PutTLBytes(b)
}
