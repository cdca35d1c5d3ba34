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

package tl

import (
	liberr "github.com/nabbar/golib/errors"

	"github.com/nabbar/mtproto/bytesio"
)

// Message is TL_message#5bb8e511 msg_id:long seqno:int bytes:int body:Object,
// the envelope msg_container wraps each packed request/response in.
type Message struct {
	MsgID uint64
	Seqno int32
	Body  Object
}

func (m *Message) Constructor() uint32 { return 0x5bb8e511 }

func (m *Message) Encode(w *bytesio.Writer) {
	body := Encode(m.Body)
	w.PutU64LE(m.MsgID)
	w.PutU32LE(uint32(m.Seqno))
	w.PutU32LE(uint32(len(body)))
	w.PutBytes(body)
}

func decodeMessage(r *bytesio.Reader) (*Message, liberr.Error) {
	m := &Message{}

	msgID, err := r.U64LE()
	if err != nil {
		return nil, err
	}
	m.MsgID = msgID

	seqno, err := r.U32LE()
	if err != nil {
		return nil, err
	}
	m.Seqno = int32(seqno)

	n, err := r.U32LE()
	if err != nil {
		return nil, err
	}

	body, err := r.Bytes(int(n))
	if err != nil {
		return nil, err
	}

	obj, err := DecodeExact(bytesio.NewReader(body))
	if err != nil {
		return nil, err
	}
	m.Body = obj

	return m, nil
}

// MsgContainer is msg_container#73f1f8dc messages:vector<%Message> = MessageContainer.
// Unlike a generic TL vector this one has no constructor-id header per the
// original scheme (it is a raw count followed by inline Message records).
type MsgContainer struct {
	Messages []*Message
}

func (c *MsgContainer) Constructor() uint32 { return 0x73f1f8dc }

func (c *MsgContainer) Encode(w *bytesio.Writer) {
	w.PutU32LE(uint32(len(c.Messages)))
	for _, m := range c.Messages {
		m.Encode(w)
	}
}

func decodeMsgContainer(r *bytesio.Reader) (Object, liberr.Error) {
	n, err := r.U32LE()
	if err != nil {
		return nil, err
	}
	if n > maxVector {
		return nil, ErrorVectorTooLarge.Error(nil)
	}

	c := &MsgContainer{Messages: make([]*Message, n)}
	for i := range c.Messages {
		if c.Messages[i], err = decodeMessage(r); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MsgsAck is msgs_ack#62d6b459 msg_ids:Vector<long> = MsgsAck, the trailing
// acknowledgement batch packed alongside outbound containers (spec.md §4.C6
// step 6).
type MsgsAck struct {
	MsgIDs []uint64
}

func (a *MsgsAck) Constructor() uint32 { return 0x62d6b459 }

func (a *MsgsAck) Encode(w *bytesio.Writer) {
	putVectorHeader(w, len(a.MsgIDs))
	for _, id := range a.MsgIDs {
		w.PutU64LE(id)
	}
}

func decodeMsgsAck(r *bytesio.Reader) (Object, liberr.Error) {
	n, err := readVectorLen(r)
	if err != nil {
		return nil, err
	}
	a := &MsgsAck{MsgIDs: make([]uint64, n)}
	for i := range a.MsgIDs {
		if a.MsgIDs[i], err = r.U64LE(); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// NewSessionCreated is new_session_created#9ec20908 first_msg_id:long
// unique_id:long server_salt:long = NewSession.
type NewSessionCreated struct {
	FirstMsgID uint64
	UniqueID   uint64
	ServerSalt uint64
}

func (n *NewSessionCreated) Constructor() uint32 { return 0x9ec20908 }

func (n *NewSessionCreated) Encode(w *bytesio.Writer) {
	w.PutU64LE(n.FirstMsgID)
	w.PutU64LE(n.UniqueID)
	w.PutU64LE(n.ServerSalt)
}

func decodeNewSessionCreated(r *bytesio.Reader) (Object, liberr.Error) {
	n := &NewSessionCreated{}
	var err liberr.Error
	if n.FirstMsgID, err = r.U64LE(); err != nil {
		return nil, err
	}
	if n.UniqueID, err = r.U64LE(); err != nil {
		return nil, err
	}
	if n.ServerSalt, err = r.U64LE(); err != nil {
		return nil, err
	}
	return n, nil
}

// Ping/Pong are ping#7abe77ec ping_id:long = Pong and pong#347773c5
// msg_id:long ping_id:long = Pong.
type Ping struct{ PingID uint64 }

func (p *Ping) Constructor() uint32     { return 0x7abe77ec }
func (p *Ping) Encode(w *bytesio.Writer) { w.PutU64LE(p.PingID) }

type Pong struct {
	MsgID  uint64
	PingID uint64
}

func (p *Pong) Constructor() uint32 { return 0x347773c5 }
func (p *Pong) Encode(w *bytesio.Writer) {
	w.PutU64LE(p.MsgID)
	w.PutU64LE(p.PingID)
}

func decodePong(r *bytesio.Reader) (Object, liberr.Error) {
	p := &Pong{}
	var err liberr.Error
	if p.MsgID, err = r.U64LE(); err != nil {
		return nil, err
	}
	if p.PingID, err = r.U64LE(); err != nil {
		return nil, err
	}
	return p, nil
}

// PingDelayDisconnect is ping_delay_disconnect#f3427b8c ping_id:long
// disconnect_delay:int = Pong, used on the push connection (spec.md §4.C6
// pacing: 3 minute cadence, 7 minute server-side idle timeout).
type PingDelayDisconnect struct {
	PingID          uint64
	DisconnectDelay int32
}

func (p *PingDelayDisconnect) Constructor() uint32 { return 0xf3427b8c }
func (p *PingDelayDisconnect) Encode(w *bytesio.Writer) {
	w.PutU64LE(p.PingID)
	w.PutU32LE(uint32(p.DisconnectDelay))
}

// GetFutureSalts is get_future_salts#b921bd04 num:int = FutureSalts.
type GetFutureSalts struct{ Num int32 }

func (g *GetFutureSalts) Constructor() uint32     { return 0xb921bd04 }
func (g *GetFutureSalts) Encode(w *bytesio.Writer) { w.PutU32LE(uint32(g.Num)) }

// FutureSalt is future_salt#0949d9dc valid_since:int valid_until:int
// salt:long = FutureSalt.
type FutureSalt struct {
	ValidSince int32
	ValidUntil int32
	Salt       uint64
}

// FutureSalts is future_salts#ae500895 req_msg_id:long now:int
// salts:vector<future_salt> = FutureSalts.
type FutureSalts struct {
	ReqMsgID uint64
	Now      int32
	Salts    []FutureSalt
}

func (f *FutureSalts) Constructor() uint32 { return 0xae500895 }

func (f *FutureSalts) Encode(w *bytesio.Writer) {
	w.PutU64LE(f.ReqMsgID)
	w.PutU32LE(uint32(f.Now))
	putVectorHeader(w, len(f.Salts))
	for _, s := range f.Salts {
		w.PutU32LE(0x0949d9dc)
		w.PutU32LE(uint32(s.ValidSince))
		w.PutU32LE(uint32(s.ValidUntil))
		w.PutU64LE(s.Salt)
	}
}

func decodeFutureSalts(r *bytesio.Reader) (Object, liberr.Error) {
	f := &FutureSalts{}
	var err liberr.Error

	if f.ReqMsgID, err = r.U64LE(); err != nil {
		return nil, err
	}
	now, err := r.U32LE()
	if err != nil {
		return nil, err
	}
	f.Now = int32(now)

	n, err := readVectorLen(r)
	if err != nil {
		return nil, err
	}
	f.Salts = make([]FutureSalt, n)
	for i := range f.Salts {
		if _, err = r.U32LE(); err != nil { // per-element constructor id
			return nil, err
		}
		vs, err := r.U32LE()
		if err != nil {
			return nil, err
		}
		vu, err := r.U32LE()
		if err != nil {
			return nil, err
		}
		salt, err := r.U64LE()
		if err != nil {
			return nil, err
		}
		f.Salts[i] = FutureSalt{ValidSince: int32(vs), ValidUntil: int32(vu), Salt: salt}
	}
	return f, nil
}

// DestroySession is destroy_session#e7512126 session_id:long =
// DestroySessionRes.
type DestroySession struct{ SessionID uint64 }

func (d *DestroySession) Constructor() uint32     { return 0xe7512126 }
func (d *DestroySession) Encode(w *bytesio.Writer) { w.PutU64LE(d.SessionID) }

// DestroySessionOK/None are destroy_session_ok#e22045fc /
// destroy_session_none#62d350c9 session_id:long = DestroySessionRes.
type DestroySessionOK struct{ SessionID uint64 }
type DestroySessionNone struct{ SessionID uint64 }

func (d *DestroySessionOK) Constructor() uint32     { return 0xe22045fc }
func (d *DestroySessionOK) Encode(w *bytesio.Writer) { w.PutU64LE(d.SessionID) }

func (d *DestroySessionNone) Constructor() uint32     { return 0x62d350c9 }
func (d *DestroySessionNone) Encode(w *bytesio.Writer) { w.PutU64LE(d.SessionID) }

func decodeDestroySessionOK(r *bytesio.Reader) (Object, liberr.Error) {
	id, err := r.U64LE()
	if err != nil {
		return nil, err
	}
	return &DestroySessionOK{SessionID: id}, nil
}

func decodeDestroySessionNone(r *bytesio.Reader) (Object, liberr.Error) {
	id, err := r.U64LE()
	if err != nil {
		return nil, err
	}
	return &DestroySessionNone{SessionID: id}, nil
}

// MsgResendReq is msg_resend_req#7d861a08 msg_ids:Vector<long> = Object.
type MsgResendReq struct{ MsgIDs []uint64 }

func (m *MsgResendReq) Constructor() uint32 { return 0x7d861a08 }
func (m *MsgResendReq) Encode(w *bytesio.Writer) {
	putVectorHeader(w, len(m.MsgIDs))
	for _, id := range m.MsgIDs {
		w.PutU64LE(id)
	}
}

func init() {
	register(0x73f1f8dc, decodeMsgContainer)
	register(0x62d6b459, decodeMsgsAck)
	register(0x9ec20908, decodeNewSessionCreated)
	register(0x347773c5, decodePong)
	register(0xae500895, decodeFutureSalts)
	register(0xe22045fc, decodeDestroySessionOK)
	register(0x62d350c9, decodeDestroySessionNone)
}
