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

package datacenter

import (
	"encoding/binary"
	"sync"

	"github.com/google/uuid"

	"github.com/nabbar/mtproto/crypto"
)

// Session is one connection's message-id/seqno bookkeeping plus the set of
// message ids already processed, used to drop duplicate deliveries
// (spec.md §4.C4 "Session renewal").
type Session struct {
	mu        sync.Mutex
	id        uint64
	logID     string
	seqNo     int32
	lastMsgID int64
	processed map[int64]struct{}
}

// NewSession creates a session with a fresh random 64-bit wire id, plus a
// UUID used only to correlate this session's log lines across reconnects
// and session resets (the wire id alone is too easy to confuse across the
// several sessions one datacenter can carry at once).
func NewSession() *Session {
	s := &Session{processed: make(map[int64]struct{})}
	s.reseed()
	return s
}

func (s *Session) reseed() {
	s.logID = uuid.NewString()

	b, err := crypto.RandomBytes(8)
	if err != nil {
		// crypto/rand failure is unrecoverable for the process; a zero
		// session id is distinguishable and will simply be rejected by
		// the server, surfacing the failure loudly instead of silently.
		s.id = 0
		return
	}
	s.id = binary.BigEndian.Uint64(b)
}

func (s *Session) ID() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// LogID returns the session's log-correlation UUID, stable until Reset.
func (s *Session) LogID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logID
}

// NextSeqNo returns the next outgoing sequence number, incrementing by 2 for
// content-related messages (odd seqno) or leaving the parity unset for
// service messages, per MTProto's seqno convention.
func (s *Session) NextSeqNo(contentRelated bool) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.seqNo
	if contentRelated {
		n |= 1
		s.seqNo += 2
	}
	return n
}

// NextMessageID returns a monotonically increasing message id derived from
// the current time, bumping by 4 (the TL alignment unit) whenever the clock
// has not advanced since the previous call.
func (s *Session) NextMessageID(unixNano int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := (unixNano / 1000) * 4 &^ 3
	if id <= s.lastMsgID {
		id = s.lastMsgID + 4
	}
	s.lastMsgID = id
	return id
}

// MarkProcessed records msgID as seen, returning false if it was already
// recorded (a duplicate delivery the caller should drop).
func (s *Session) MarkProcessed(msgID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.processed[msgID]; ok {
		return false
	}
	s.processed[msgID] = struct{}{}
	return true
}

// Reset draws a fresh session id and clears seqno and dedup state, as
// required when the owning auth key is recreated (spec.md §4.C4).
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reseed()
	s.seqNo = 0
	s.lastMsgID = 0
	s.processed = make(map[int64]struct{})
}
