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

// Package datacenter holds per-datacenter state (spec.md §4.C4): permanent
// and temporary authentication keys, server salts, rotating address sets
// across IPv4/IPv6 and connection purpose, the connection pool, and the
// handshake-in-progress bookkeeping the dispatcher (C6) consults before
// sending application data.
package datacenter

import (
	liberr "github.com/nabbar/golib/errors"
)

const (
	ErrorAddressListEmpty liberr.CodeError = iota + liberr.MinPkgDatacenter
	ErrorNoAuthKey
	ErrorUnknownKind
	ErrorCDNRestricted
	ErrorAlreadyHandshaking
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = liberr.ExistInMapMessage(ErrorAddressListEmpty)
	liberr.RegisterIdFctMessage(ErrorAddressListEmpty, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrorAddressListEmpty:
		return "datacenter has no address configured for the requested purpose"
	case ErrorNoAuthKey:
		return "no authentication key present for the requested kind"
	case ErrorUnknownKind:
		return "unknown authorization kind"
	case ErrorCDNRestricted:
		return "cdn datacenter refuses non-download connection kinds"
	case ErrorAlreadyHandshaking:
		return "handshake already in progress for this kind"
	}
	return ""
}
