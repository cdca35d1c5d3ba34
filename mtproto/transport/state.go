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

// State is the connection socket's lifecycle stage (spec.md §4.C3).
type State int

const (
	Disconnected State = iota
	Connecting
	Handshaking
	Open
	Draining
	Closed
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Handshaking:
		return "handshaking"
	case Open:
		return "open"
	case Draining:
		return "draining"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Kind is the connection's role within a datacenter, mirroring the per-kind
// connection slots the original keeps (genericConnection, tempConnection,
// download[]/upload[] pools, pushConnection).
type Kind int

const (
	KindGeneric Kind = iota
	KindGenericMedia
	KindTemp
	KindPush
	KindDownload
	KindUpload
	KindProxyCheck
)

func (k Kind) String() string {
	switch k {
	case KindGeneric:
		return "generic"
	case KindGenericMedia:
		return "generic-media"
	case KindTemp:
		return "temp"
	case KindPush:
		return "push"
	case KindDownload:
		return "download"
	case KindUpload:
		return "upload"
	case KindProxyCheck:
		return "proxy-check"
	default:
		return "unknown"
	}
}

// CloseReason distinguishes why a connection left the Open state, so the
// datacenter supervisor (C4) can decide whether to back off before
// reconnecting (spec.md §4.C3 "reports a reason code").
type CloseReason int

const (
	CloseUnknown CloseReason = iota
	CloseGraceful
	CloseIdleTimeout
	CloseTransportError
	CloseRequested
)

func (r CloseReason) String() string {
	switch r {
	case CloseGraceful:
		return "graceful"
	case CloseIdleTimeout:
		return "idle-timeout"
	case CloseTransportError:
		return "transport-error"
	case CloseRequested:
		return "requested"
	default:
		return "unknown"
	}
}
