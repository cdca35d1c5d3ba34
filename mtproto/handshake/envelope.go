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

package handshake

import (
	"sync"
	"time"

	liberr "github.com/nabbar/golib/errors"

	"github.com/nabbar/mtproto/bytesio"
)

// plaintextEnvelope wraps/unwraps the unauthenticated envelope used before an
// auth key exists: auth_key_id(8)=0 || msg_id(8) || len(4) || body(len)
// (spec.md §6 External Interfaces).
type plaintextEnvelope struct {
	mu      sync.Mutex
	lastID  int64
}

// encode stamps body with a fresh, strictly increasing message id and wraps
// it in the unauthenticated envelope.
func (e *plaintextEnvelope) encode(body []byte) []byte {
	id := e.nextID()

	w := bytesio.NewWriterCapacity(20 + len(body))
	w.PutU64(0)
	w.PutU64LE(uint64(id))
	w.PutU32LE(uint32(len(body)))
	w.PutBytes(body)
	return w.Bytes()
}

// decode strips the envelope and returns the message id and body.
func (e *plaintextEnvelope) decode(frame []byte) (int64, []byte, liberr.Error) {
	r := bytesio.NewReader(frame)

	if _, err := r.U64(); err != nil {
		return 0, nil, ErrorEnvelopeMalformed.Error(err)
	}

	msgID, err := r.U64LE()
	if err != nil {
		return 0, nil, ErrorEnvelopeMalformed.Error(err)
	}

	n, err := r.U32LE()
	if err != nil {
		return 0, nil, ErrorEnvelopeMalformed.Error(err)
	}

	body, err := r.Bytes(int(n))
	if err != nil {
		return 0, nil, ErrorEnvelopeMalformed.Error(err)
	}

	return int64(msgID), body, nil
}

// nextID derives a message id from wall-clock time the same way
// datacenter.Session.NextMessageID does, forced to a multiple of 4 (plain
// client-content ids), bumping by 4 whenever the clock has not advanced
// since the previous call.
func (e *plaintextEnvelope) nextID() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now().UnixNano()
	id := (now / 1000) * 4 &^ 3

	if id <= e.lastID {
		id = e.lastID + 4
	}
	e.lastID = id
	return id
}
