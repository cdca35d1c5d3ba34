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
	"sync"
	"time"

	liberr "github.com/nabbar/golib/errors"

	"github.com/nabbar/mtproto/event"
	"github.com/nabbar/mtproto/mtproto/transport"
)

// HandshakeCompleteFunc is invoked once a temp or media-temp handshake
// finishes, carrying the clock delta the dispatcher uses to correct its
// local time (spec.md §4.C4 "onHandshakeComplete(dc, kind, timeDiff, key)").
type HandshakeCompleteFunc func(dc *Datacenter, kind AuthKeyKind, timeDiff time.Duration, key AuthKey)

// Datacenter holds everything the engine knows about one data center: its
// keys, salts, address sets, sessions, and connection pool (spec.md §4.C4).
type Datacenter struct {
	ID            int32
	CDNDatacenter bool

	loop *event.Loop

	mu          sync.RWMutex
	addresses   map[Purpose]*AddressSet
	authKeys    map[AuthKeyKind]AuthKey
	salts       []ServerSalt
	sessions    map[transport.Kind]*Session
	connections map[transport.Kind]*transport.Connection
	handshaking map[AuthKeyKind]bool
	bound       map[AuthKeyKind]bool
	authorized  bool
	lastInit    map[transport.Kind]int32

	OnHandshakeComplete HandshakeCompleteFunc
}

// New builds an empty Datacenter; address lists and keys are installed via
// Replace/SetAuthKey as the config store (C8) or handshake engine (C5)
// populates them.
func New(loop *event.Loop, id int32, cdn bool) *Datacenter {
	return &Datacenter{
		ID:            id,
		CDNDatacenter: cdn,
		loop:          loop,
		addresses:     make(map[Purpose]*AddressSet),
		authKeys:      make(map[AuthKeyKind]AuthKey),
		sessions:      make(map[transport.Kind]*Session),
		connections:   make(map[transport.Kind]*transport.Connection),
		handshaking:   make(map[AuthKeyKind]bool),
		bound:         make(map[AuthKeyKind]bool),
		lastInit:      make(map[transport.Kind]int32),
	}
}

// SetAddresses installs or replaces the address set for one purpose.
func (d *Datacenter) SetAddresses(p Purpose, v4, v6 []Address) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if a, ok := d.addresses[p]; ok {
		a.Replace(v4, v6)
		return
	}
	d.addresses[p] = NewAddressSet(v4, v6)
}

// NextAddress advances the round-robin cursor for purpose and returns the
// next candidate address.
func (d *Datacenter) NextAddress(p Purpose, preferIPv6 bool) (Address, bool, liberr.Error) {
	d.mu.RLock()
	set, ok := d.addresses[p]
	d.mu.RUnlock()

	if !ok {
		return Address{}, false, ErrorAddressListEmpty.Error(nil)
	}
	return set.Next(preferIPv6)
}

// SetAuthKey installs a negotiated key, replacing any prior key of the same
// kind, and ensures a session exists for every connection kind depending on
// it.
func (d *Datacenter) SetAuthKey(kind AuthKeyKind, key AuthKey) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.authKeys[kind] = key
	d.handshaking[kind] = false
}

// AuthKeyFor returns the key installed for kind, or ErrorNoAuthKey.
func (d *Datacenter) AuthKeyFor(kind AuthKeyKind) (AuthKey, liberr.Error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	k, ok := d.authKeys[kind]
	if !ok {
		return AuthKey{}, ErrorNoAuthKey.Error(nil)
	}
	return k, nil
}

// ClearAuthKey discards the key for kind and resets the sessions that
// depended on it (spec.md §4.C4 "Session renewal").
func (d *Datacenter) ClearAuthKey(kind AuthKeyKind) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.authKeys, kind)
	for _, s := range d.sessions {
		s.Reset()
	}
}

// BeginHandshake marks kind as handshaking, refusing to start a second
// concurrent handshake for the same kind unless force is set.
func (d *Datacenter) BeginHandshake(kind AuthKeyKind, force bool) liberr.Error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.handshaking[kind] && !force {
		return ErrorAlreadyHandshaking.Error(nil)
	}
	d.handshaking[kind] = true
	return nil
}

// IsHandshaking reports whether kind currently has a handshake in flight;
// the dispatcher (C6) must honor this before sending application data.
func (d *Datacenter) IsHandshaking(kind AuthKeyKind) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.handshaking[kind]
}

// CompleteHandshake finishes a handshake for kind, installs the key, and
// fires OnHandshakeComplete with the clock delta observed during the
// exchange.
func (d *Datacenter) CompleteHandshake(kind AuthKeyKind, key AuthKey, timeDiff time.Duration) {
	d.mu.Lock()
	d.authKeys[kind] = key
	d.handshaking[kind] = false
	cb := d.OnHandshakeComplete
	d.mu.Unlock()

	if cb != nil {
		cb(d, kind, timeDiff, key)
	}
}

// RecreateSessions draws new session ids and clears dedup/seqno state for
// every session of the given connection kind.
func (d *Datacenter) RecreateSessions(kind transport.Kind) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if s, ok := d.sessions[kind]; ok {
		s.Reset()
	}
}

// SessionFor returns (creating if necessary) the session for a connection
// kind.
func (d *Datacenter) SessionFor(kind transport.Kind) *Session {
	d.mu.Lock()
	defer d.mu.Unlock()

	if s, ok := d.sessions[kind]; ok {
		return s
	}
	s := NewSession()
	d.sessions[kind] = s
	return s
}

// CurrentSalt returns the salt valid at now, or the most recently issued
// salt if the window bookkeeping has gone stale (a future-salts fetch is
// always preferable to having none).
func (d *Datacenter) CurrentSalt(now time.Time) (uint64, liberr.Error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, s := range d.salts {
		if s.validAt(now) {
			return s.Salt, nil
		}
	}
	if len(d.salts) > 0 {
		return d.salts[len(d.salts)-1].Salt, nil
	}
	return 0, ErrorNoAuthKey.Error(nil)
}

// AddSalts merges newly received future salts into the rolling window,
// dropping any that have already expired.
func (d *Datacenter) AddSalts(now time.Time, salts []ServerSalt) {
	d.mu.Lock()
	defer d.mu.Unlock()

	kept := d.salts[:0]
	for _, s := range d.salts {
		if s.ValidUntil.After(now) {
			kept = append(kept, s)
		}
	}
	d.salts = append(kept, salts...)
}

// GetConnection returns the pooled connection for kind, refusing
// non-download kinds on a CDN-only datacenter, and refusing a connection
// that needs an auth key that isn't ready unless allowPendingKey is set.
func (d *Datacenter) GetConnection(kind transport.Kind, allowPendingKey bool) (*transport.Connection, liberr.Error) {
	if d.CDNDatacenter && kind != transport.KindDownload {
		return nil, ErrorCDNRestricted.Error(nil)
	}

	d.mu.RLock()
	conn, ok := d.connections[kind]
	pending := d.handshaking[authKeyKindFor(kind)]
	d.mu.RUnlock()

	if pending && !allowPendingKey {
		return nil, ErrorAlreadyHandshaking.Error(nil)
	}
	if !ok {
		return nil, ErrorUnknownKind.Error(nil)
	}
	return conn, nil
}

// SetConnection installs the pooled connection for kind.
func (d *Datacenter) SetConnection(kind transport.Kind, conn *transport.Connection) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.connections[kind] = conn
}

// Bound reports whether a temporary key's auth.bindTempAuthKey handshake
// (spec.md §4.C5 step 6) has completed; the dispatcher (C6) must not route
// application requests onto a temp key that is installed but unbound.
func (d *Datacenter) Bound(kind AuthKeyKind) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.bound[kind]
}

// SetBound records that kind's bind handshake finished, flipped by the
// dispatcher once it observes the rpc_result for the auth.bindTempAuthKey
// request it issued on this datacenter's behalf.
func (d *Datacenter) SetBound(kind AuthKeyKind, bound bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bound[kind] = bound
}

// Authorized reports whether a user auth token has been imported into this
// datacenter (spec.md §3 Data Model: Datacenter.authorized).
func (d *Datacenter) Authorized() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.authorized
}

// SetAuthorized records that auth.importAuthorization succeeded here.
func (d *Datacenter) SetAuthorized(v bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.authorized = v
}

// LastInitVersion returns the last application version for which this
// datacenter's connection of kind successfully sent initConnection
// (spec.md §3 Data Model: lastInitVersion/lastInitMediaVersion).
func (d *Datacenter) LastInitVersion(kind transport.Kind) int32 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastInit[kind]
}

// SetLastInitVersion records the app version sent with the most recent
// initConnection wrap on kind.
func (d *Datacenter) SetLastInitVersion(kind transport.Kind, version int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastInit[kind] = version
}

// authKeyKindFor maps a connection's role to the auth key kind it depends
// on: media-flavored kinds bind against the media-temp key, everything else
// against the generic temp key.
func authKeyKindFor(kind transport.Kind) AuthKeyKind {
	switch kind {
	case transport.KindGenericMedia, transport.KindDownload, transport.KindUpload:
		return TempMedia
	default:
		return TempGeneric
	}
}
