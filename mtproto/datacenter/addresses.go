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

	liberr "github.com/nabbar/golib/errors"
)

// Purpose groups a datacenter's address lists the way the original's
// datacenter table does: the main signaling address, and three specialized
// ones that may point at different IPs entirely.
type Purpose int

const (
	PurposeMain Purpose = iota
	PurposeDownload
	PurposeMedia
	PurposeTemp
)

// AddressSet is one (purpose) address list split by IP family, each with its
// own round-robin cursor (spec.md §4.C4 "each (ipv4/ipv6) × (purpose) list
// has a round-robin cursor").
type AddressSet struct {
	mu       sync.Mutex
	v4       []Address
	v6       []Address
	cursor4  int
	cursor6  int
	attempts int
}

// NewAddressSet builds an address set from the given v4/v6 lists.
func NewAddressSet(v4, v6 []Address) *AddressSet {
	return &AddressSet{v4: v4, v6: v6}
}

// Next advances the round-robin cursor and returns the next address,
// skipping IPv6 when unavailable or unpreferred. wrapped is true once the
// cursor has completed one full lap of the selected list since the last
// Reset, signaling the caller should request a fresh address list.
func (a *AddressSet) Next(preferIPv6 bool) (addr Address, wrapped bool, err liberr.Error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	list := a.v4
	cursor := &a.cursor4

	if preferIPv6 && len(a.v6) > 0 {
		list = a.v6
		cursor = &a.cursor6
	} else if len(list) == 0 && len(a.v6) > 0 {
		list = a.v6
		cursor = &a.cursor6
	}

	if len(list) == 0 {
		return Address{}, false, ErrorAddressListEmpty.Error(nil)
	}

	addr = list[*cursor%len(list)]
	*cursor++
	a.attempts++
	wrapped = a.attempts%len(list) == 0

	return addr, wrapped, nil
}

// Reset clears the wrap-detection counter, called once a fresh list has been
// installed for this purpose.
func (a *AddressSet) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.attempts = 0
}

// Replace installs a new address list for this purpose, resetting cursors.
func (a *AddressSet) Replace(v4, v6 []Address) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.v4, a.v6 = v4, v6
	a.cursor4, a.cursor6, a.attempts = 0, 0, 0
}
