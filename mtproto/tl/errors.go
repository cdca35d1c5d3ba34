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

// Package tl implements the fixed set of MTProto schema objects the dispatch
// core must recognize by name: the pq/DH handshake chain, sessions, request
// envelopes, and the rpc_result control messages. It does not implement the
// general TL schema compiler; every object below is hand-decoded against a
// constructor-id table, and anything else decodes to an opaque Unparsed.
package tl

import (
	liberr "github.com/nabbar/golib/errors"
)

const (
	ErrorUnknownConstructor liberr.CodeError = iota + liberr.MinPkgTL
	ErrorTruncated
	ErrorTrailingBytes
	ErrorVectorTooLarge
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = liberr.ExistInMapMessage(ErrorUnknownConstructor)
	liberr.RegisterIdFctMessage(ErrorUnknownConstructor, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrorUnknownConstructor:
		return "constructor id not present in the decoder table"
	case ErrorTruncated:
		return "buffer ended before the object was fully decoded"
	case ErrorTrailingBytes:
		return "buffer has bytes left over after decoding a top-level object"
	case ErrorVectorTooLarge:
		return "vector element count exceeds the sanity bound"
	}
	return ""
}
