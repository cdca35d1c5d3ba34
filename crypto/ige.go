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

package crypto

import (
	"crypto/aes"

	liberr "github.com/nabbar/golib/errors"
)

// IGE holds the AES-256 block cipher and the two IV halves used by Infinite
// Garble Extension mode. Each call is self-contained: callers that want the
// "changeIv" behavior from the original source should re-derive a fresh IGE
// from the updated IV halves returned by EncryptInPlace/DecryptInPlace rather
// than assume state survives across process restarts (spec.md §9 Open
// Questions: left to the caller, undocumented upstream).
type IGE struct {
	block   [16]byte
	prevClr [16]byte
	key     []byte
}

// NewIGE builds an IGE cipher state from a 32-byte AES-256 key and a 32-byte
// IV (the first half seeds the "previous ciphertext" register, the second
// half seeds the "previous cleartext" register, per MTProto convention).
func NewIGE(key, iv []byte) (*IGE, liberr.Error) {
	if len(key) != 32 || len(iv) != 32 {
		return nil, ErrorIGEBlockSize.Error(nil)
	}

	g := &IGE{key: append([]byte(nil), key...)}
	copy(g.block[:], iv[:16])
	copy(g.prevClr[:], iv[16:])
	return g, nil
}

// EncryptInPlace IGE-encrypts data (length must be a non-zero multiple of 16)
// and returns the updated (prevCipher, prevClear) IV halves.
func (g *IGE) EncryptInPlace(data []byte) ([16]byte, [16]byte, liberr.Error) {
	if len(data) == 0 || len(data)%16 != 0 {
		return g.block, g.prevClr, ErrorIGELength.Error(nil)
	}

	blk, err := aes.NewCipher(g.key)
	if err != nil {
		return g.block, g.prevClr, ErrorIGEBlockSize.Error(err)
	}

	prevCipher := g.block
	prevClear := g.prevClr
	var tmp, out [16]byte

	for off := 0; off < len(data); off += 16 {
		xorBlock(tmp[:], data[off:off+16], prevCipher[:])
		blk.Encrypt(out[:], tmp[:])
		xorBlock(out[:], out[:], prevClear[:])

		prevClear = asArray(data[off : off+16])
		prevCipher = out
		copy(data[off:off+16], out[:])
	}

	g.block, g.prevClr = prevCipher, prevClear
	return prevCipher, prevClear, nil
}

// DecryptInPlace reverses EncryptInPlace.
func (g *IGE) DecryptInPlace(data []byte) ([16]byte, [16]byte, liberr.Error) {
	if len(data) == 0 || len(data)%16 != 0 {
		return g.block, g.prevClr, ErrorIGELength.Error(nil)
	}

	blk, err := aes.NewCipher(g.key)
	if err != nil {
		return g.block, g.prevClr, ErrorIGEBlockSize.Error(err)
	}

	prevCipher := g.block
	prevClear := g.prevClr
	var tmp, out [16]byte

	for off := 0; off < len(data); off += 16 {
		cipherBlock := asArray(data[off : off+16])
		xorBlock(tmp[:], cipherBlock[:], prevClear[:])
		blk.Decrypt(out[:], tmp[:])
		xorBlock(out[:], out[:], prevCipher[:])

		prevCipher = cipherBlock
		prevClear = out
		copy(data[off:off+16], out[:])
	}

	g.block, g.prevClr = prevCipher, prevClear
	return prevCipher, prevClear, nil
}

func xorBlock(dst, a, b []byte) {
	for i := 0; i < 16; i++ {
		dst[i] = a[i] ^ b[i]
	}
}

func asArray(b []byte) [16]byte {
	var a [16]byte
	copy(a[:], b)
	return a
}
