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
	"crypto/sha1"  //nolint:gosec
	"crypto/sha256"
)

// SHA1Sum returns the SHA-1 digest of the concatenation of p.
// MTProto keeps SHA-1 only for the legacy auth-key fingerprint and v1
// message-key derivation; it is never used as a security boundary on its own.
func SHA1Sum(p ...[]byte) []byte {
	h := sha1.New() //nolint:gosec
	for _, b := range p {
		h.Write(b)
	}
	return h.Sum(nil)
}

// SHA256Sum returns the SHA-256 digest of the concatenation of p.
func SHA256Sum(p ...[]byte) []byte {
	h := sha256.New()
	for _, b := range p {
		h.Write(b)
	}
	return h.Sum(nil)
}

// AuthKeyID returns the 64-bit key-id: the low 64 bits of SHA-1(authKey).
func AuthKeyID(authKey []byte) uint64 {
	d := SHA1Sum(authKey)
	return beU64(d[len(d)-8:])
}

func beU64(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}
