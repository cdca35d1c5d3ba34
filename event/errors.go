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

// Package event is the single cooperative event loop the whole engine runs
// on: every datacenter supervisor, handshake, and dispatcher schedules its
// work onto one Loop instead of spawning its own goroutines, so that
// connection-state transitions, timers, and socket callbacks never race
// against each other.
package event

import (
	liberr "github.com/nabbar/golib/errors"
)

const (
	ErrorLoopClosed liberr.CodeError = iota + liberr.MinPkgEvent
	ErrorLoopFull
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = liberr.ExistInMapMessage(ErrorLoopClosed)
	liberr.RegisterIdFctMessage(ErrorLoopClosed, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrorLoopClosed:
		return "event loop is closed"
	case ErrorLoopFull:
		return "event loop task queue is full"
	}
	return ""
}
