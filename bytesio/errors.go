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

// Package bytesio provides the length-prefixed byte cursor, fixed-width
// integer codecs, Unicode scalar-stream codecs, and the gzip single-shot
// helper the MTProto wire layer is built on (spec.md §4.C1). Every exported
// parser here is total: it returns an error instead of panicking on
// adversarial input.
package bytesio

import (
	liberr "github.com/nabbar/golib/errors"
)

const (
	ErrorShortBuffer liberr.CodeError = iota + liberr.MinPkgBytesIO
	ErrorOutOfBounds
	ErrorInvalidScalar
	ErrorOverlongEncoding
	ErrorSurrogate
	ErrorNonCharacter
	ErrorUnpairedSurrogate
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = liberr.ExistInMapMessage(ErrorShortBuffer)
	liberr.RegisterIdFctMessage(ErrorShortBuffer, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrorShortBuffer:
		return "buffer too short for requested read"
	case ErrorOutOfBounds:
		return "length-prefixed slice escapes its parent buffer"
	case ErrorInvalidScalar:
		return "code point is outside the Unicode range"
	case ErrorOverlongEncoding:
		return "overlong or non-shortest-form encoding"
	case ErrorSurrogate:
		return "surrogate code point is not a valid scalar value"
	case ErrorNonCharacter:
		return "code point is a reserved non-character"
	case ErrorUnpairedSurrogate:
		return "unpaired UTF-16 surrogate"
	}

	return ""
}
