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

// RpcResult is rpc_result#f35c6d01 req_msg_id:long result:Object = RpcResult.
// Result may itself be a GzipPacked wrapping the true answer (spec.md §4.C6:
// "body may be gzip_packed, unwrap recursively").
type RpcResult struct {
	ReqMsgID uint64
	Result   Object
}

func (r *RpcResult) Constructor() uint32 { return 0xf35c6d01 }

func (r *RpcResult) Encode(w *bytesio.Writer) {
	w.PutU64LE(r.ReqMsgID)
	w.PutBytes(Encode(r.Result))
}

func decodeRpcResult(r *bytesio.Reader) (Object, liberr.Error) {
	res := &RpcResult{}

	id, err := r.U64LE()
	if err != nil {
		return nil, err
	}
	res.ReqMsgID = id

	obj, err := Decode(r)
	if err != nil {
		return nil, err
	}
	res.Result = obj

	return res, nil
}

// Unwrap follows one level of GzipPacked indirection, decompressing and
// re-decoding the inner object. Callers loop until the result is no longer
// a *GzipPacked.
func (r *RpcResult) Unwrap(inflate func([]byte) ([]byte, liberr.Error)) (Object, liberr.Error) {
	gz, ok := r.Result.(*GzipPacked)
	if !ok {
		return r.Result, nil
	}

	plain, err := inflate(gz.PackedData)
	if err != nil {
		return nil, err
	}

	return DecodeExact(bytesio.NewReader(plain))
}

// GzipPacked is gzip_packed#3072cfa1 packed_data:string = Object.
type GzipPacked struct {
	PackedData []byte
}

func (g *GzipPacked) Constructor() uint32     { return 0x3072cfa1 }
func (g *GzipPacked) Encode(w *bytesio.Writer) { putBigBytes(w, g.PackedData) }

func decodeGzipPacked(r *bytesio.Reader) (Object, liberr.Error) {
	data, err := readBigBytes(r)
	if err != nil {
		return nil, err
	}
	return &GzipPacked{PackedData: data}, nil
}

// RpcError is rpc_error#2144ca19 error_code:int error_message:string =
// RpcError. Classification against the numeric code and textual prefix
// (NETWORK_MIGRATE_, PHONE_MIGRATE_, USER_MIGRATE_, FLOOD_WAIT_,
// AUTH_KEY_PERM_EMPTY, AUTH_KEY_DUPLICATED, MSG_WAIT_FAILED) happens one
// layer up in the dispatcher (spec.md §7).
type RpcError struct {
	ErrorCode    int32
	ErrorMessage string
}

func (e *RpcError) Constructor() uint32 { return 0x2144ca19 }

func (e *RpcError) Encode(w *bytesio.Writer) {
	w.PutU32LE(uint32(e.ErrorCode))
	putBigBytes(w, []byte(e.ErrorMessage))
}

func decodeRpcError(r *bytesio.Reader) (Object, liberr.Error) {
	code, err := r.U32LE()
	if err != nil {
		return nil, err
	}
	msg, err := readBigBytes(r)
	if err != nil {
		return nil, err
	}
	return &RpcError{ErrorCode: int32(code), ErrorMessage: string(msg)}, nil
}

// BadMsgNotification is bad_msg_notification#a7eff811 bad_msg_id:long
// bad_msg_seqno:int error_code:int = BadMsgNotification. Codes
// 16/17/19/32/33/64 force a session reset and time-delta recomputation
// (spec.md §4.C6).
type BadMsgNotification struct {
	BadMsgID    uint64
	BadMsgSeqno int32
	ErrorCode   int32
}

func (b *BadMsgNotification) Constructor() uint32 { return 0xa7eff811 }

func (b *BadMsgNotification) Encode(w *bytesio.Writer) {
	w.PutU64LE(b.BadMsgID)
	w.PutU32LE(uint32(b.BadMsgSeqno))
	w.PutU32LE(uint32(b.ErrorCode))
}

func decodeBadMsgNotification(r *bytesio.Reader) (Object, liberr.Error) {
	b := &BadMsgNotification{}
	var err liberr.Error

	if b.BadMsgID, err = r.U64LE(); err != nil {
		return nil, err
	}
	seqno, err := r.U32LE()
	if err != nil {
		return nil, err
	}
	b.BadMsgSeqno = int32(seqno)

	code, err := r.U32LE()
	if err != nil {
		return nil, err
	}
	b.ErrorCode = int32(code)

	return b, nil
}

// BadServerSalt is bad_server_salt#edab447b bad_msg_id:long
// bad_msg_seqno:int error_code:int new_server_salt:long =
// BadMsgNotification.
type BadServerSalt struct {
	BadMsgID      uint64
	BadMsgSeqno   int32
	ErrorCode     int32
	NewServerSalt uint64
}

func (b *BadServerSalt) Constructor() uint32 { return 0xedab447b }

func (b *BadServerSalt) Encode(w *bytesio.Writer) {
	w.PutU64LE(b.BadMsgID)
	w.PutU32LE(uint32(b.BadMsgSeqno))
	w.PutU32LE(uint32(b.ErrorCode))
	w.PutU64LE(b.NewServerSalt)
}

func decodeBadServerSalt(r *bytesio.Reader) (Object, liberr.Error) {
	b := &BadServerSalt{}
	var err liberr.Error

	if b.BadMsgID, err = r.U64LE(); err != nil {
		return nil, err
	}
	seqno, err := r.U32LE()
	if err != nil {
		return nil, err
	}
	b.BadMsgSeqno = int32(seqno)

	code, err := r.U32LE()
	if err != nil {
		return nil, err
	}
	b.ErrorCode = int32(code)

	if b.NewServerSalt, err = r.U64LE(); err != nil {
		return nil, err
	}

	return b, nil
}

// MsgDetailedInfo / MsgNewDetailedInfo carry the server's hint that a
// previous response was dropped and must be explicitly requested via
// msg_resend_req (spec.md §4.C6's pending-request bookkeeping).
type MsgDetailedInfo struct {
	MsgID       uint64
	AnswerMsgID uint64
	Bytes       int32
	Status      int32
}

func (m *MsgDetailedInfo) Constructor() uint32 { return 0x276d3ec6 }

func (m *MsgDetailedInfo) Encode(w *bytesio.Writer) {
	w.PutU64LE(m.MsgID)
	w.PutU64LE(m.AnswerMsgID)
	w.PutU32LE(uint32(m.Bytes))
	w.PutU32LE(uint32(m.Status))
}

func decodeMsgDetailedInfo(r *bytesio.Reader) (Object, liberr.Error) {
	m := &MsgDetailedInfo{}
	var err liberr.Error

	if m.MsgID, err = r.U64LE(); err != nil {
		return nil, err
	}
	if m.AnswerMsgID, err = r.U64LE(); err != nil {
		return nil, err
	}
	b, err := r.U32LE()
	if err != nil {
		return nil, err
	}
	m.Bytes = int32(b)

	s, err := r.U32LE()
	if err != nil {
		return nil, err
	}
	m.Status = int32(s)

	return m, nil
}

type MsgNewDetailedInfo struct {
	AnswerMsgID uint64
	Bytes       int32
	Status      int32
}

func (m *MsgNewDetailedInfo) Constructor() uint32 { return 0x809db6df }

func (m *MsgNewDetailedInfo) Encode(w *bytesio.Writer) {
	w.PutU64LE(m.AnswerMsgID)
	w.PutU32LE(uint32(m.Bytes))
	w.PutU32LE(uint32(m.Status))
}

func decodeMsgNewDetailedInfo(r *bytesio.Reader) (Object, liberr.Error) {
	m := &MsgNewDetailedInfo{}
	var err liberr.Error

	if m.AnswerMsgID, err = r.U64LE(); err != nil {
		return nil, err
	}
	b, err := r.U32LE()
	if err != nil {
		return nil, err
	}
	m.Bytes = int32(b)

	s, err := r.U32LE()
	if err != nil {
		return nil, err
	}
	m.Status = int32(s)

	return m, nil
}

// Error is error#c4b9f9bb code:int text:string = Error, the transport-level
// error object (distinct from RpcError, which answers a specific request).
type Error struct {
	Code int32
	Text string
}

func (e *Error) Constructor() uint32 { return 0xc4b9f9bb }

func (e *Error) Encode(w *bytesio.Writer) {
	w.PutU32LE(uint32(e.Code))
	putBigBytes(w, []byte(e.Text))
}

func decodeError(r *bytesio.Reader) (Object, liberr.Error) {
	code, err := r.U32LE()
	if err != nil {
		return nil, err
	}
	text, err := readBigBytes(r)
	if err != nil {
		return nil, err
	}
	return &Error{Code: int32(code), Text: string(text)}, nil
}

func init() {
	register(0xf35c6d01, decodeRpcResult)
	register(0x3072cfa1, decodeGzipPacked)
	register(0x2144ca19, decodeRpcError)
	register(0xa7eff811, decodeBadMsgNotification)
	register(0xedab447b, decodeBadServerSalt)
	register(0x276d3ec6, decodeMsgDetailedInfo)
	register(0x809db6df, decodeMsgNewDetailedInfo)
	register(0xc4b9f9bb, decodeError)
}
