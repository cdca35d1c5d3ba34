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
	"sync"
	"sync/atomic"
	"time"

	liberr "github.com/nabbar/golib/errors"

	"github.com/nabbar/mtproto/event"
)

// FrameHandler receives one deobfuscated, reassembled frame payload and
// whether the peer requested a quick-ack for it. It is always invoked on the
// owning event.Loop goroutine, never on the reader goroutine directly.
type FrameHandler func(payload []byte, quickAck bool)

// CloseHandler is invoked, once, on the event.Loop goroutine, when the
// connection leaves the Open state for any reason.
type CloseHandler func(reason CloseReason, err liberr.Error)

// Options configures a Connection before Dial.
type Options struct {
	Address      string
	Kind         Kind
	Framing      Framing
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	OnFrame      FrameHandler
	OnClose      CloseHandler
}

// Connection is one obfuscated TCP socket to a datacenter address, in the
// state machine of spec.md §4.C3: Disconnected -> Connecting ->
// Handshaking -> Open -> (Open|Draining) -> Closed.
type Connection struct {
	opts Options
	loop *event.Loop

	mu        sync.Mutex
	state     State
	conn      net.Conn
	obf       *obfuscation
	token     uint64
	closeOnce sync.Once

	writeMu sync.Mutex

	suspended int32
}

// New builds a Connection bound to loop; frame and close callbacks scheduled
// through loop are serialized with every other event in the engine.
func New(loop *event.Loop, opts Options) *Connection {
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = 10 * time.Second
	}
	return &Connection{opts: opts, loop: loop, state: Disconnected}
}

func (c *Connection) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ConnectionToken returns the counter incremented on every successful Open,
// letting the dispatcher (C6) invalidate messages sent over a prior
// incarnation of this socket (spec.md §4.C3).
func (c *Connection) ConnectionToken() uint64 {
	return atomic.LoadUint64(&c.token)
}

func (c *Connection) Suspend()   { atomic.StoreInt32(&c.suspended, 1) }
func (c *Connection) Resume()    { atomic.StoreInt32(&c.suspended, 0) }
func (c *Connection) Suspended() bool { return atomic.LoadInt32(&c.suspended) == 1 }

// Dial opens the TCP socket, sends the obfuscation preamble, and starts the
// background read goroutine. It blocks until the socket is established or
// the dial fails; frame delivery afterward is fully asynchronous.
func (c *Connection) Dial() liberr.Error {
	c.mu.Lock()
	if c.state != Disconnected && c.state != Closed {
		c.mu.Unlock()
		return ErrorAlreadyConnected.Error(nil)
	}
	if c.opts.Address == "" {
		c.mu.Unlock()
		return ErrorInvalidAddress.Error(nil)
	}
	c.state = Connecting
	c.mu.Unlock()

	raw, err := net.DialTimeout("tcp", c.opts.Address, c.opts.DialTimeout)
	if err != nil {
		c.setState(Disconnected)
		return ErrorDial.Error(err)
	}

	applySocketOptions(raw)

	c.mu.Lock()
	c.state = Handshaking
	c.mu.Unlock()

	preamble, obf, oErr := newObfuscation(c.opts.Framing)
	if oErr != nil {
		_ = raw.Close()
		c.setState(Disconnected)
		return oErr
	}

	// the key/iv are derived from the plaintext preamble itself, so the
	// first 56 bytes travel unobfuscated; only the last 8 (carrying the
	// framing tag) travel as ciphertext. The keystream must still be
	// advanced across all 64 bytes, since later frames continue the same
	// CTR stream from byte 64 onward.
	full := make([]byte, len(preamble))
	obf.encrypt(full, preamble)
	sent := make([]byte, len(preamble))
	copy(sent, preamble[:56])
	copy(sent[56:], full[56:])

	if _, err = raw.Write(sent); err != nil {
		_ = raw.Close()
		c.setState(Disconnected)
		return ErrorWrite.Error(err)
	}

	c.mu.Lock()
	c.conn = raw
	c.obf = obf
	c.state = Open
	c.mu.Unlock()

	atomic.AddUint64(&c.token, 1)

	go c.readLoop(raw, obf)

	return nil
}

func (c *Connection) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Write obfuscates and sends one frame. Safe to call concurrently; writes
// are serialized on writeMu (spec.md §4.C3 "write path buffers on partial
// send").
func (c *Connection) Write(payload []byte, quickAck bool) liberr.Error {
	c.mu.Lock()
	state, conn, obf := c.state, c.conn, c.obf
	c.mu.Unlock()

	if state != Open || conn == nil {
		return ErrorNotConnected.Error(nil)
	}

	framed, err := encodeFrame(c.opts.Framing, payload, quickAck)
	if err != nil {
		return err
	}

	out := make([]byte, len(framed))
	obf.encrypt(out, framed)

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if _, wErr := writeFull(conn, out); wErr != nil {
		return ErrorWrite.Error(wErr)
	}
	return nil
}

func writeFull(w io.Writer, b []byte) (int, error) {
	total := 0
	for total < len(b) {
		n, err := w.Write(b[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// readLoop runs on its own goroutine for the connection's lifetime,
// deobfuscating and reassembling frames, then handing each complete frame to
// the owning event.Loop so application logic never runs on this goroutine.
func (c *Connection) readLoop(conn net.Conn, obf *obfuscation) {
	reader := &streamReader{conn: conn, obf: obf}

	for {
		payload, quickAck, err := reader.readFrame(c.opts.Framing)
		if err != nil {
			c.teardown(classifyReadError(err))
			return
		}

		handler := c.opts.OnFrame
		if handler == nil {
			continue
		}

		p := payload
		qa := quickAck
		if scheduleErr := c.loop.Schedule(func() { handler(p, qa) }); scheduleErr != nil {
			c.teardown(CloseTransportError)
			return
		}
	}
}

func classifyReadError(err error) CloseReason {
	if err == io.EOF {
		return CloseGraceful
	}
	return CloseTransportError
}

// Close transitions the connection to Draining then Closed, reporting reason
// to OnClose. Calling Close multiple times is safe.
func (c *Connection) Close(reason CloseReason) liberr.Error {
	c.mu.Lock()
	if c.state == Closed {
		c.mu.Unlock()
		return nil
	}
	c.state = Draining
	conn := c.conn
	c.mu.Unlock()

	var closeErr error
	if conn != nil {
		closeErr = conn.Close()
	}

	c.teardown(reason)

	if closeErr != nil {
		return ErrorClosed.Error(closeErr)
	}
	return nil
}

func (c *Connection) teardown(reason CloseReason) {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.state = Closed
		c.mu.Unlock()

		if c.opts.OnClose != nil {
			r := reason
			if scheduleErr := c.loop.Schedule(func() { c.opts.OnClose(r, nil) }); scheduleErr != nil {
				c.opts.OnClose(r, nil)
			}
		}
	})
}
