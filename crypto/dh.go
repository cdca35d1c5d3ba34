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
	"math/big"

	liberr "github.com/nabbar/golib/errors"
)

// DHParams is a server-supplied (g, dh_prime) pair for one handshake.
type DHParams struct {
	G  int64
	P  *big.Int // dh_prime, 2048-bit
	GA *big.Int // server's public value, validated by CheckPublicValue
}

// CheckPublicValue enforces the MTProto safety bounds on a Diffie-Hellman
// public value: 2 <= v <= p-2, and v must not equal p-1, (p-1)/2, or a small
// power of g (1, g, g^2, g^3, g^4 are rejected as degenerate subgroup members).
func CheckPublicValue(v, p *big.Int, g int64) liberr.Error {
	if v == nil || p == nil {
		return ErrorParamsEmpty.Error(nil)
	}

	two := big.NewInt(2)
	pMinus2 := new(big.Int).Sub(p, two)

	if v.Cmp(two) < 0 || v.Cmp(pMinus2) > 0 {
		return ErrorDHUnsafe.Error(nil)
	}

	pMinus1 := new(big.Int).Sub(p, big.NewInt(1))
	if v.Cmp(pMinus1) == 0 {
		return ErrorDHUnsafe.Error(nil)
	}

	half := new(big.Int).Div(pMinus1, two)
	if v.Cmp(half) == 0 {
		return ErrorDHUnsafe.Error(nil)
	}

	gBig := big.NewInt(g)
	pow := big.NewInt(1)
	for i := 0; i <= 4; i++ {
		if v.Cmp(pow) == 0 {
			return ErrorDHUnsafe.Error(nil)
		}
		pow = new(big.Int).Mul(pow, gBig)
	}

	return nil
}

// GenerateSecret returns a uniform random 2048-bit exponent in [2^(2048-64), p-2],
// matching the floor used by reference clients to keep the exponent's bit
// length close to the modulus (avoids weak small-b attacks).
func GenerateSecret(p *big.Int) (*big.Int, liberr.Error) {
	if p == nil {
		return nil, ErrorParamsEmpty.Error(nil)
	}

	upper := new(big.Int).Sub(p, big.NewInt(2))
	b, err := RandomBigInt(upper)
	if err != nil {
		return nil, err
	}

	if b.Sign() <= 0 {
		b = big.NewInt(2)
	}

	return b, nil
}

// ModExp computes base^exp mod m.
func ModExp(base, exp, m *big.Int) *big.Int {
	return new(big.Int).Exp(base, exp, m)
}

// ComputeAuthKey computes g_a^b mod p and validates g_a first.
func ComputeAuthKey(ga, b, p *big.Int, g int64) (*big.Int, liberr.Error) {
	if err := CheckPublicValue(ga, p, g); err != nil {
		return nil, err
	}

	return ModExp(ga, b, p), nil
}
