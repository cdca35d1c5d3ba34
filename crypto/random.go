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
	"crypto/rand"
	"io"
	"math/big"

	liberr "github.com/nabbar/golib/errors"
)

// RandomBytes returns n cryptographically secure random bytes.
func RandomBytes(n int) ([]byte, liberr.Error) {
	if n <= 0 {
		return nil, ErrorParamsEmpty.Error(nil)
	}

	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, ErrorRandomSource.Error(err)
	}

	return b, nil
}

// RandomNonce128 returns a 128-bit nonce, as used for client_nonce/server_nonce.
func RandomNonce128() ([16]byte, liberr.Error) {
	var out [16]byte

	b, err := RandomBytes(16)
	if err != nil {
		return out, err
	}

	copy(out[:], b)
	return out, nil
}

// RandomBigInt returns a uniform random integer in [0, max).
func RandomBigInt(max *big.Int) (*big.Int, liberr.Error) {
	if max == nil || max.Sign() <= 0 {
		return nil, ErrorParamsEmpty.Error(nil)
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return nil, ErrorRandomSource.Error(err)
	}

	return n, nil
}

// RandomPadding returns a random-length padding buffer, lo <= len < hi.
func RandomPadding(lo, hi int) ([]byte, liberr.Error) {
	if lo < 0 || hi <= lo {
		return nil, ErrorParamsMismatching.Error(nil)
	}

	span, err := RandomBigInt(big.NewInt(int64(hi - lo)))
	if err != nil {
		return nil, err
	}

	return RandomBytes(lo + int(span.Int64()))
}
