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

package datacenter

import "time"

// AuthKeyKind distinguishes the three authorization keys a datacenter may
// hold simultaneously (spec.md §4.C4/§4.C5).
type AuthKeyKind int

const (
	Permanent AuthKeyKind = iota
	TempGeneric
	TempMedia
)

func (k AuthKeyKind) String() string {
	switch k {
	case Permanent:
		return "permanent"
	case TempGeneric:
		return "temp-generic"
	case TempMedia:
		return "temp-media"
	default:
		return "unknown"
	}
}

// AuthKey is one negotiated 2048-bit authorization key, plus the id the
// wire protocol uses to name it (the low 64 bits of its SHA-1).
type AuthKey struct {
	ID        uint64
	Key       []byte
	CreatedAt time.Time
	ExpiresAt time.Time // zero for Permanent, which never expires
}

// Expired reports whether a temporary key's bind window has elapsed, letting
// the dispatcher rotate it before the server would reject it outright
// (spec.md §3 Data Model: AuthKey createdAt/expiresAt bookkeeping).
func (k AuthKey) Expired(now time.Time) bool {
	return !k.ExpiresAt.IsZero() && !now.Before(k.ExpiresAt)
}

// ServerSalt is one entry of the rolling server-salt window the handshake
// (`get_future_salts`) replenishes before the current one expires.
type ServerSalt struct {
	Salt       uint64
	ValidSince time.Time
	ValidUntil time.Time
}

func (s ServerSalt) validAt(now time.Time) bool {
	return !now.Before(s.ValidSince) && now.Before(s.ValidUntil)
}

// Address is one entry of a datacenter's address list: host/port, plus an
// optional obfuscation secret pinned to that entry (some datacenters hand
// out a per-address secret instead of a bare framing tag).
type Address struct {
	Host   string
	Port   int
	Secret []byte
}
