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

const (
	maxScalar       = 0x10FFFF
	surrogateLo     = 0xD800
	surrogateHi     = 0xDFFF
)

// ValidScalar rejects the forbidden set shared by every codec below:
// surrogates, U+FFFE/U+FFFF in any plane, U+FDD0..U+FDEF, and anything past
// U+10FFFF.
func ValidScalar(cp rune) liberr.Error {
	v := uint32(cp)

	if v > maxScalar {
		return ErrorInvalidScalar.Error(nil)
	}
	if v >= surrogateLo && v <= surrogateHi {
		return ErrorSurrogate.Error(nil)
	}
	if v >= 0xFDD0 && v <= 0xFDEF {
		return ErrorNonCharacter.Error(nil)
	}
	if v&0xFFFE == 0xFFFE {
		return ErrorNonCharacter.Error(nil)
	}

	return nil
}

// DecodeLatin1 produces one scalar per input byte (Latin-1 maps 1:1 onto
// U+0000..U+00FF, which is always a valid scalar).
func DecodeLatin1(b []byte) []rune {
	out := make([]rune, len(b))
	for i, c := range b {
		out[i] = rune(c)
	}
	return out
}

func EncodeLatin1(rs []rune) ([]byte, liberr.Error) {
	out := make([]byte, len(rs))
	for i, r := range rs {
		if r > 0xFF {
			return nil, ErrorInvalidScalar.Error(nil)
		}
		out[i] = byte(r)
	}
	return out, nil
}

// DecodeUCS2BE decodes big-endian UCS-2 (BMP only; surrogate code units are
// rejected rather than paired, since UCS-2 has no surrogate mechanism).
func DecodeUCS2BE(b []byte) ([]rune, liberr.Error) {
	if len(b)%2 != 0 {
		return nil, ErrorShortBuffer.Error(nil)
	}

	out := make([]rune, 0, len(b)/2)
	for i := 0; i < len(b); i += 2 {
		u := binary.BigEndian.Uint16(b[i : i+2])
		if u >= surrogateLo && u <= surrogateHi {
			return nil, ErrorSurrogate.Error(nil)
		}
		if err := ValidScalar(rune(u)); err != nil {
			return nil, err
		}
		out = append(out, rune(u))
	}
	return out, nil
}

func EncodeUCS2BE(rs []rune) ([]byte, liberr.Error) {
	out := make([]byte, 0, len(rs)*2)
	for _, r := range rs {
		if r > 0xFFFF {
			return nil, ErrorInvalidScalar.Error(nil)
		}
		if err := ValidScalar(r); err != nil {
			return nil, err
		}
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], uint16(r))
		out = append(out, b[:]...)
	}
	return out, nil
}

// DecodeUTF8Strict decodes shortest-form UTF-8, rejecting overlong
// encodings, encoded surrogates, and any forbidden scalar.
func DecodeUTF8Strict(b []byte) ([]rune, liberr.Error) {
	out := make([]rune, 0, len(b))
	i := 0

	for i < len(b) {
		c := b[i]
		switch {
		case c < 0x80:
			out = append(out, rune(c))
			i++

		case c&0xE0 == 0xC0:
			if err := needContinuation(b, i, 1); err != nil {
				return nil, err
			}
			r := rune(c&0x1F)<<6 | rune(b[i+1]&0x3F)
			if r < 0x80 {
				return nil, ErrorOverlongEncoding.Error(nil)
			}
			if err := ValidScalar(r); err != nil {
				return nil, err
			}
			out = append(out, r)
			i += 2

		case c&0xF0 == 0xE0:
			if err := needContinuation(b, i, 2); err != nil {
				return nil, err
			}
			r := rune(c&0x0F)<<12 | rune(b[i+1]&0x3F)<<6 | rune(b[i+2]&0x3F)
			if r < 0x800 {
				return nil, ErrorOverlongEncoding.Error(nil)
			}
			if r >= surrogateLo && r <= surrogateHi {
				return nil, ErrorSurrogate.Error(nil)
			}
			if err := ValidScalar(r); err != nil {
				return nil, err
			}
			out = append(out, r)
			i += 3

		case c&0xF8 == 0xF0:
			if err := needContinuation(b, i, 3); err != nil {
				return nil, err
			}
			r := rune(c&0x07)<<18 | rune(b[i+1]&0x3F)<<12 | rune(b[i+2]&0x3F)<<6 | rune(b[i+3]&0x3F)
			if r < 0x10000 {
				return nil, ErrorOverlongEncoding.Error(nil)
			}
			if err := ValidScalar(r); err != nil {
				return nil, err
			}
			out = append(out, r)
			i += 4

		default:
			return nil, ErrorInvalidScalar.Error(nil)
		}
	}

	return out, nil
}

func needContinuation(b []byte, i, n int) liberr.Error {
	if i+n >= len(b) {
		return ErrorShortBuffer.Error(nil)
	}
	for k := 1; k <= n; k++ {
		if b[i+k]&0xC0 != 0x80 {
			return ErrorInvalidScalar.Error(nil)
		}
	}
	return nil
}

func EncodeUTF8Strict(rs []rune) ([]byte, liberr.Error) {
	out := make([]byte, 0, len(rs))

	for _, r := range rs {
		if err := ValidScalar(r); err != nil {
			return nil, err
		}

		switch {
		case r < 0x80:
			out = append(out, byte(r))
		case r < 0x800:
			out = append(out, byte(0xC0|r>>6), byte(0x80|r&0x3F))
		case r < 0x10000:
			out = append(out, byte(0xE0|r>>12), byte(0x80|(r>>6)&0x3F), byte(0x80|r&0x3F))
		default:
			out = append(out, byte(0xF0|r>>18), byte(0x80|(r>>12)&0x3F), byte(0x80|(r>>6)&0x3F), byte(0x80|r&0x3F))
		}
	}

	return out, nil
}

// DecodeUTF32BE decodes big-endian UTF-32 code points.
func DecodeUTF32BE(b []byte) ([]rune, liberr.Error) {
	if len(b)%4 != 0 {
		return nil, ErrorShortBuffer.Error(nil)
	}

	out := make([]rune, 0, len(b)/4)
	for i := 0; i < len(b); i += 4 {
		v := binary.BigEndian.Uint32(b[i : i+4])
		if err := ValidScalar(rune(v)); err != nil {
			return nil, err
		}
		out = append(out, rune(v))
	}
	return out, nil
}

func EncodeUTF32BE(rs []rune) ([]byte, liberr.Error) {
	out := make([]byte, 0, len(rs)*4)
	for _, r := range rs {
		if err := ValidScalar(r); err != nil {
			return nil, err
		}
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(r))
		out = append(out, b[:]...)
	}
	return out, nil
}
