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

// Package handshake executes the MTProto PQ/DH key exchange (spec.md §4.C5):
// req_pq_multi, Pollard-Brent factorization of the server's 64-bit semiprime,
// RSA-OAEP-style encryption of the inner data against a pinned key, the
// Diffie-Hellman parameter exchange, and the temporary-key bind handshake.
// It speaks the unauthenticated envelope (auth_key_id=0, plaintext msg_id and
// length) directly over a mtproto/transport.Connection and reports the
// resulting key to a mtproto/datacenter.Datacenter.
package handshake

import (
	liberr "github.com/nabbar/golib/errors"
)

const (
	ErrorNoFingerprint liberr.CodeError = iota + liberr.MinPkgHandshake
	ErrorUnexpectedResponse
	ErrorHashMismatch
	ErrorDHParamsInvalid
	ErrorEnvelopeMalformed
	ErrorNotPermanentKey
	ErrorAborted
	ErrorTransport
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = liberr.ExistInMapMessage(ErrorNoFingerprint)
	liberr.RegisterIdFctMessage(ErrorNoFingerprint, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrorNoFingerprint:
		return "server offered no RSA fingerprint present in the pinned key ring"
	case ErrorUnexpectedResponse:
		return "handshake received a response that does not match the current step"
	case ErrorHashMismatch:
		return "handshake inner-data hash or new_nonce hash did not validate"
	case ErrorDHParamsInvalid:
		return "server DH parameters failed the MTProto safety check"
	case ErrorEnvelopeMalformed:
		return "unauthenticated envelope is malformed"
	case ErrorNotPermanentKey:
		return "binding a temporary key requires a permanent key to already be installed"
	case ErrorAborted:
		return "handshake aborted after repeated transport failures"
	case ErrorTransport:
		return "handshake transport write failed"
	}
	return ""
}
