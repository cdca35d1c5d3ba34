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

package transport

import (
	"io"
	"net"
)

// streamReader accumulates raw bytes off conn, deobfuscating and
// reassembling them into frames (spec.md §4.C3: "read path accumulates
// until a full frame is available").
type streamReader struct {
	conn net.Conn
	obf  *obfuscation
}

func (r *streamReader) readFrame(framing Framing) ([]byte, bool, error) {
	first := make([]byte, 1)
	if _, err := io.ReadFull(r.conn, first); err != nil {
		return nil, false, err
	}
	r.obf.decrypt(first, first)

	hlen := frameHeaderLen(framing, first[0])
	header := make([]byte, hlen)
	header[0] = first[0]

	if hlen > 1 {
		rest := make([]byte, hlen-1)
		if _, err := io.ReadFull(r.conn, rest); err != nil {
			return nil, false, err
		}
		r.obf.decrypt(rest, rest)
		copy(header[1:], rest)
	}

	n, quickAck, err := decodeFrameHeader(framing, header)
	if err != nil {
		return nil, false, err
	}
	if n > maxFrameSize {
		return nil, false, ErrorFrameTooLarge.Error(nil)
	}

	if n == 0 {
		return nil, quickAck, nil
	}

	payload := make([]byte, n)
	if _, err := io.ReadFull(r.conn, payload); err != nil {
		return nil, false, err
	}
	r.obf.decrypt(payload, payload)

	return payload, quickAck, nil
}
