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

package transport

import (
	"crypto/aes"
	"crypto/cipher"

	liberr "github.com/nabbar/golib/errors"

	"github.com/nabbar/mtproto/crypto"
)

// Framing selects one of the three obfuscated wire variants (spec.md §4.C3 /
// §6). The magic values are the last four bytes of the 64-byte obfuscation
// preamble.
type Framing uint32

const (
	FramingAbridged           Framing = 0xefefefef
	FramingIntermediate       Framing = 0xeeeeeeee
	FramingPaddedIntermediate Framing = 0xdddddddd
)

const maxFrameSize = 1 << 25 // 32 MiB, generous upper bound against adversarial length prefixes

// quickAckBit is set on the high bit of an intermediate/padded-intermediate
// length word, or folded into the abridged 1-byte length's high bit when the
// encoded length still fits, to request a quick-ack from the peer.
const quickAckBit = 1 << 31

// obfuscation holds the two independent AES-CTR keystreams derived from one
// 64-byte preamble: one to obfuscate bytes this side writes, one to
// deobfuscate bytes the peer writes back (spec.md §4.C3: "two AES-CTR
// streams derived from the preamble").
type obfuscation struct {
	encryptStream cipher.Stream
	decryptStream cipher.Stream
}

// newObfuscation generates a fresh random preamble tagged with framing,
// returning the raw 64 bytes to send on the wire and the derived streams.
func newObfuscation(framing Framing) (preamble []byte, o *obfuscation, err liberr.Error) {
	buf, rErr := crypto.RandomBytes(64)
	if rErr != nil {
		return nil, nil, ErrorObfuscationInit.Error(rErr)
	}

	// byte 0 must not collide with a TL-frame length prefix or a TLS
	// record header, matching the original's "first byte is never 0xef"
	// constraint.
	if buf[0] == 0xef {
		buf[0] = 0xee
	}

	buf[56] = byte(framing)
	buf[57] = byte(framing >> 8)
	buf[58] = byte(framing >> 16)
	buf[59] = byte(framing >> 24)

	reversed := make([]byte, 64)
	for i := range buf {
		reversed[i] = buf[63-i]
	}

	encBlock, e := aes.NewCipher(buf[8:40])
	if e != nil {
		return nil, nil, ErrorObfuscationInit.Error(e)
	}
	decBlock, e := aes.NewCipher(reversed[8:40])
	if e != nil {
		return nil, nil, ErrorObfuscationInit.Error(e)
	}

	o = &obfuscation{
		encryptStream: cipher.NewCTR(encBlock, buf[40:56]),
		decryptStream: cipher.NewCTR(decBlock, reversed[40:56]),
	}

	return buf, o, nil
}

func (o *obfuscation) encrypt(dst, src []byte) { o.encryptStream.XORKeyStream(dst, src) }
func (o *obfuscation) decrypt(dst, src []byte) { o.decryptStream.XORKeyStream(dst, src) }

// encodeFrame produces the length-prefixed wire form of payload for the
// given framing, folding in the quick-ack request bit when requested.
func encodeFrame(framing Framing, payload []byte, quickAck bool) ([]byte, liberr.Error) {
	n := len(payload)
	if n > maxFrameSize {
		return nil, ErrorFrameTooLarge.Error(nil)
	}

	switch framing {
	case FramingAbridged:
		words := n / 4
		if words < 127 {
			b := make([]byte, 1+n)
			v := byte(words)
			if quickAck {
				v |= 0x80
			}
			b[0] = v
			copy(b[1:], payload)
			return b, nil
		}
		b := make([]byte, 4+n)
		b[0] = 0x7f
		b[1] = byte(words)
		b[2] = byte(words >> 8)
		b[3] = byte(words >> 16)
		if quickAck {
			b[3] |= 0x80
		}
		copy(b[4:], payload)
		return b, nil

	case FramingIntermediate, FramingPaddedIntermediate:
		ln := uint32(n)
		if quickAck {
			ln |= quickAckBit
		}
		b := make([]byte, 4+n)
		b[0] = byte(ln)
		b[1] = byte(ln >> 8)
		b[2] = byte(ln >> 16)
		b[3] = byte(ln >> 24)
		copy(b[4:], payload)
		return b, nil

	default:
		return nil, ErrorFrameMalformed.Error(nil)
	}
}

// frameHeaderLen returns how many bytes of peeked header are required to
// know the total frame length for framing, and decodeFrameHeader decodes
// them once that many bytes are available.
func frameHeaderLen(framing Framing, first byte) int {
	switch framing {
	case FramingAbridged:
		if first&0x7f == 0x7f {
			return 4
		}
		return 1
	default:
		return 4
	}
}

// decodeFrameHeader returns the payload length and whether a quick-ack was
// requested, given the first frameHeaderLen bytes of a frame.
func decodeFrameHeader(framing Framing, header []byte) (payloadLen int, quickAck bool, err liberr.Error) {
	switch framing {
	case FramingAbridged:
		if len(header) == 1 {
			v := header[0]
			quickAck = v&0x80 != 0
			words := int(v &^ 0x80)
			return words * 4, quickAck, nil
		}
		if len(header) == 4 {
			quickAck = header[3]&0x80 != 0
			words := int(header[1]) | int(header[2])<<8 | int(header[3]&0x7f)<<16
			return words * 4, quickAck, nil
		}
		return 0, false, ErrorFrameMalformed.Error(nil)

	case FramingIntermediate, FramingPaddedIntermediate:
		if len(header) != 4 {
			return 0, false, ErrorFrameMalformed.Error(nil)
		}
		v := uint32(header[0]) | uint32(header[1])<<8 | uint32(header[2])<<16 | uint32(header[3])<<24
		quickAck = v&quickAckBit != 0
		return int(v &^ quickAckBit), quickAck, nil

	default:
		return 0, false, ErrorFrameMalformed.Error(nil)
	}
}
