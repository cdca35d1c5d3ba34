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

// Package transport is the obfuscated-TCP connection socket (spec.md §4.C3):
// a Disconnected -> Connecting -> Handshaking -> Open -> Draining -> Closed
// state machine over net.Conn, carrying abridged/intermediate/
// padded-intermediate framing with an AES-CTR obfuscation preamble.
package transport

import (
	liberr "github.com/nabbar/golib/errors"
)

const (
	ErrorInvalidAddress liberr.CodeError = iota + liberr.MinPkgTransport
	ErrorNotConnected
	ErrorAlreadyConnected
	ErrorFrameTooLarge
	ErrorFrameMalformed
	ErrorObfuscationInit
	ErrorDial
	ErrorWrite
	ErrorRead
	ErrorClosed
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = liberr.ExistInMapMessage(ErrorInvalidAddress)
	liberr.RegisterIdFctMessage(ErrorInvalidAddress, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrorInvalidAddress:
		return "connection has no registered remote address"
	case ErrorNotConnected:
		return "connection is not open"
	case ErrorAlreadyConnected:
		return "connection is already open or connecting"
	case ErrorFrameTooLarge:
		return "frame length exceeds the transport's maximum"
	case ErrorFrameMalformed:
		return "frame length prefix is malformed"
	case ErrorObfuscationInit:
		return "obfuscation preamble generation failed"
	case ErrorDial:
		return "tcp dial failed"
	case ErrorWrite:
		return "tcp write failed"
	case ErrorRead:
		return "tcp read failed"
	case ErrorClosed:
		return "connection close failed"
	}
	return ""
}
