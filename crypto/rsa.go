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
	"sync"

	liberr "github.com/nabbar/golib/errors"
)

// PublicKey is a pinned RSA public key, keyed by its 64-bit fingerprint (the
// low 64 bits of SHA-1 of the key's TL serialization). The core never trusts
// a server-offered fingerprint that is not in this set (spec.md §4.C2).
type PublicKey struct {
	Fingerprint uint64
	N           *big.Int
	E           *big.Int
}

// KeyRing is the pinned set of known datacenter RSA public keys.
type KeyRing struct {
	mu   sync.RWMutex
	keys map[uint64]PublicKey
}

func NewKeyRing(keys ...PublicKey) *KeyRing {
	r := &KeyRing{keys: make(map[uint64]PublicKey, len(keys))}
	for _, k := range keys {
		r.keys[k.Fingerprint] = k
	}
	return r
}

func (r *KeyRing) Add(k PublicKey) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[k.Fingerprint] = k
}

// Select returns the first offered fingerprint present in the ring, in the
// order the server listed them, as mandated by the handshake (step 2 picks
// "the first fingerprint present in its pinned set").
func (r *KeyRing) Select(offered []uint64) (PublicKey, liberr.Error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, fp := range offered {
		if k, ok := r.keys[fp]; ok {
			return k, nil
		}
	}

	return PublicKey{}, ErrorRSANoFingerprint.Error(nil)
}

// Encrypt applies the MTProto RSA-PAD scheme: the 255-byte payload (32-byte
// random prefix + data, SHA-256-mixed) is repeatedly re-randomized until the
// resulting big-endian integer is strictly below the modulus, then raised to
// e mod n. data must fit in 255 bytes once the random prefix is attached.
func (k PublicKey) Encrypt(data []byte) ([]byte, liberr.Error) {
	if k.N == nil || k.E == nil {
		return nil, ErrorParamsEmpty.Error(nil)
	}
	if len(data) > 144 {
		return nil, ErrorRSABlockTooLarge.Error(nil)
	}

	modBytes := (k.N.BitLen() + 7) / 8

	for attempt := 0; attempt < 64; attempt++ {
		random192, err := RandomBytes(192)
		if err != nil {
			return nil, err
		}

		dataWithPadding := make([]byte, 0, 192+len(data))
		dataWithPadding = append(dataWithPadding, data...)
		if pad := 192 - len(dataWithPadding); pad > 0 {
			padBytes, perr := RandomBytes(pad)
			if perr != nil {
				return nil, perr
			}
			dataWithPadding = append(dataWithPadding, padBytes...)
		}

		dataPadReversed := reverseBytes(dataWithPadding)

		tmp := append(append([]byte(nil), random192...), dataPadReversed...)
		sha := SHA256Sum(tmp)

		aesKey := sha
		aesIV := make([]byte, 32)
		ige, ierr := NewIGE(aesKey, aesIV)
		if ierr != nil {
			return nil, ierr
		}

		dataWithHash := append(append([]byte(nil), dataPadReversed...), sha...)
		if len(dataWithHash) != 224 {
			return nil, ErrorParamsMismatching.Error(nil)
		}

		if _, _, ierr = ige.EncryptInPlace(dataWithHash); ierr != nil {
			return nil, ierr
		}

		block := new(big.Int).SetBytes(dataWithHash)
		if block.Cmp(k.N) >= 0 {
			continue
		}

		enc := new(big.Int).Exp(block, k.E, k.N)
		out := make([]byte, modBytes)
		enc.FillBytes(out)
		return out, nil
	}

	return nil, ErrorRSABlockTooLarge.Error(nil)
}

func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}
