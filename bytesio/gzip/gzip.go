/*
 *  MIT License
 *
 *  Copyright (c) 2020 Nicolas JUHEL
 *
 *  Permission is hereby granted, free of charge, to any person obtaining a copy
 *  of this software and associated documentation files (the "Software"), to deal
 *  in the Software without restriction, including without limitation the rights
 *  to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *  copies of the Software, and to permit persons to whom the Software is
 *  furnished to do so, subject to the following conditions:
 *
 *  The above copyright notice and this permission notice shall be included in all
 *  copies or substantial portions of the Software.
 *
 *  THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *  IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *  FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *  AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *  LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *  OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *  SOFTWARE.
 *
 */

// Package gzip wraps compress/gzip into the single-shot deflate/inflate
// helpers the dispatcher needs for gzip_packed (spec.md §4.C1), adapted from
// the teacher's archive/gzip helper shape.
package gzip

import (
	"bytes"
	"compress/gzip"
	"io"

	liberr "github.com/nabbar/golib/errors"
)

const (
	ErrorWriterInit liberr.CodeError = iota + liberr.MinPkgBytesIO + 50
	ErrorWriterClose
	ErrorReaderInit
	ErrorReadLimitExceeded
)

func init() {
	liberr.RegisterIdFctMessage(ErrorWriterInit, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrorWriterInit:
		return "gzip writer init failed"
	case ErrorWriterClose:
		return "gzip writer close failed"
	case ErrorReaderInit:
		return "gzip reader init failed"
	case ErrorReadLimitExceeded:
		return "inflate output exceeded the per-call upper bound"
	}
	return ""
}

// Deflate compresses src at best-compression, max-window. It returns (nil,
// nil) rather than an error when the compressed form is not strictly shorter
// than len(src)-4, so callers fall back to the raw form (spec.md invariant 5).
func Deflate(src []byte) ([]byte, liberr.Error) {
	var buf bytes.Buffer

	w, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, ErrorWriterInit.Error(err)
	}

	if _, err = w.Write(src); err != nil {
		return nil, ErrorWriterInit.Error(err)
	}
	if err = w.Close(); err != nil {
		return nil, ErrorWriterClose.Error(err)
	}

	if buf.Len() >= len(src)-4 {
		return nil, nil
	}

	return buf.Bytes(), nil
}

// Inflate decompresses src, growing the output buffer geometrically and
// refusing to exceed maxOut bytes (a zero/negative maxOut means unbounded,
// used only in tests).
func Inflate(src []byte, maxOut int) ([]byte, liberr.Error) {
	r, err := gzip.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, ErrorReaderInit.Error(err)
	}
	defer func() { _ = r.Close() }()

	out := make([]byte, 0, len(src)*3+64)
	chunk := make([]byte, 4096)

	for {
		n, rErr := r.Read(chunk)
		if n > 0 {
			out = append(out, chunk[:n]...)
			if maxOut > 0 && len(out) > maxOut {
				return nil, ErrorReadLimitExceeded.Error(nil)
			}
		}
		if rErr == io.EOF {
			break
		}
		if rErr != nil {
			return nil, ErrorReaderInit.Error(rErr)
		}
	}

	return out, nil
}
