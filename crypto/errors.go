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

// Package crypto is the cryptographic collaborator for the MTProto engine:
// AES-256-IGE, SHA-1/SHA-256, a pinned-fingerprint RSA-OAEP-style encryption,
// Diffie-Hellman modular exponentiation with the MTProto safety checks, and a
// secure random source. It carries no protocol knowledge of its own.
package crypto

import (
	liberr "github.com/nabbar/golib/errors"
)

const (
	ErrorParamsEmpty liberr.CodeError = iota + liberr.MinPkgCrypt
	ErrorParamsMismatching
	ErrorIGEBlockSize
	ErrorIGELength
	ErrorRSABlockTooLarge
	ErrorRSANoFingerprint
	ErrorRSADataInvalid
	ErrorDHUnsafe
	ErrorRandomSource
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = liberr.ExistInMapMessage(ErrorParamsEmpty)
	liberr.RegisterIdFctMessage(ErrorParamsEmpty, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrorParamsEmpty:
		return "given parameters are empty"
	case ErrorParamsMismatching:
		return "given parameters do not match expected size"
	case ErrorIGEBlockSize:
		return "AES-IGE key/iv must be 32/32 bytes"
	case ErrorIGELength:
		return "AES-IGE buffer length must be a non-zero multiple of 16"
	case ErrorRSABlockTooLarge:
		return "RSA-OAEP plaintext exceeds the modulus capacity"
	case ErrorRSANoFingerprint:
		return "no pinned RSA public key matches the offered fingerprints"
	case ErrorRSADataInvalid:
		return "RSA-OAEP decrypted data failed the padding check"
	case ErrorDHUnsafe:
		return "Diffie-Hellman parameter failed the MTProto safety check"
	case ErrorRandomSource:
		return "secure random source failed"
	}

	return ""
}
