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

package handshake

import (
	"math/big"

	liberr "github.com/nabbar/golib/errors"
)

// smallPrimes are tried by direct division before resorting to Pollard's rho;
// pq is server-chosen and frequently has a small factor in practice.
var smallPrimes = [...]uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47}

// FactorPQ splits the server-supplied 64-bit semiprime pq into its two prime
// factors p < q, by trial division against a handful of small primes
// followed by Pollard's rho with Floyd cycle detection (spec.md §4.C5 step 2,
// testable scenario S1).
func FactorPQ(pq uint64) (p, q uint64, err liberr.Error) {
	if pq < 4 {
		return 0, 0, ErrorDHParamsInvalid.Error(nil)
	}

	for _, sp := range smallPrimes {
		if pq%sp == 0 {
			other := pq / sp
			if other == sp {
				return 0, 0, ErrorDHParamsInvalid.Error(nil)
			}
			return orderedPair(sp, other)
		}
	}

	n := new(big.Int).SetUint64(pq)
	f := pollardRho(n)
	if f == nil || !f.IsUint64() {
		return 0, 0, ErrorDHParamsInvalid.Error(nil)
	}

	factor := f.Uint64()
	if factor == 0 || pq%factor != 0 {
		return 0, 0, ErrorDHParamsInvalid.Error(nil)
	}

	return orderedPair(factor, pq/factor)
}

func orderedPair(a, b uint64) (uint64, uint64, liberr.Error) {
	if a == b {
		return 0, 0, ErrorDHParamsInvalid.Error(nil)
	}
	if a < b {
		return a, b, nil
	}
	return b, a, nil
}

// pollardRho returns one non-trivial factor of n, retrying with a handful of
// polynomial constants when a particular c value cycles without converging.
func pollardRho(n *big.Int) *big.Int {
	one := big.NewInt(1)

	for c := int64(1); c < 64; c++ {
		cc := big.NewInt(c)

		next := func(v *big.Int) *big.Int {
			r := new(big.Int).Mul(v, v)
			r.Add(r, cc)
			r.Mod(r, n)
			return r
		}

		x := big.NewInt(2)
		y := big.NewInt(2)
		d := big.NewInt(1)

		for d.Cmp(one) == 0 {
			x = next(x)
			y = next(next(y))

			diff := new(big.Int).Sub(x, y)
			diff.Abs(diff)
			if diff.Sign() == 0 {
				d.Set(n)
				break
			}
			d = new(big.Int).GCD(nil, nil, diff, n)
		}

		if d.Sign() > 0 && d.Cmp(n) < 0 {
			return d
		}
	}

	return nil
}
