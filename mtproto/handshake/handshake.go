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
	"bytes"
	"math/big"
	"time"

	liberr "github.com/nabbar/golib/errors"

	"github.com/nabbar/mtproto/bytesio"
	"github.com/nabbar/mtproto/crypto"
	"github.com/nabbar/mtproto/event"
	"github.com/nabbar/mtproto/mtproto/datacenter"
	"github.com/nabbar/mtproto/mtproto/tl"
	"github.com/nabbar/mtproto/mtproto/transport"
)

const (
	// maxConsecutiveFailures is the transport-failure budget before the
	// handshake aborts and backs off (spec.md §4.C5 failure policy).
	maxConsecutiveFailures = 3
	maxDHRetries           = 5
	baseBackoff            = time.Second
	maxBackoff             = 30 * time.Second

	// tempKeyExpiresIn is the lifetime, in seconds, offered in
	// p_q_inner_data_temp and mirrored into the bind payload's expires_at.
	tempKeyExpiresIn int32 = 3600
)

type step int

const (
	stepNone step = iota
	stepAwaitResPQ
	stepAwaitDHParams
	stepAwaitDHGen
	stepDone
)

// BindHandoff carries a freshly negotiated temporary key's bind payload to
// whichever component owns the encrypted-RPC path. Sealing BindAuthKeyInner
// under the permanent key and tracking its rpc_result is the dispatcher's
// (C6) normal request machinery, not this engine's.
type BindHandoff struct {
	Kind  datacenter.AuthKeyKind
	Inner *tl.BindAuthKeyInner
}

// Engine drives one datacenter auth key kind through the PQ/DH handshake
// (spec.md §4.C5, steps 1-5) and, for temporary keys, prepares the bind
// handoff for step 6.
type Engine struct {
	loop    *event.Loop
	dc      *datacenter.Datacenter
	kind    datacenter.AuthKeyKind
	keyRing *crypto.KeyRing

	address string
	framing transport.Framing

	conn *transport.Connection
	env  plaintextEnvelope

	// OnBindReady is invoked once after a successful temporary-key
	// handshake, handing the unsealed bind payload to the dispatcher.
	OnBindReady func(BindHandoff)

	step step

	nonce       [16]byte
	serverNonce [16]byte
	newNonce    [32]byte

	dhPrime *big.Int
	g       int64
	lastGA  *big.Int
	authKey []byte
	dhTries int

	timeDiff time.Duration

	failures   int
	retryCount int
}

// New builds a handshake engine for kind against dc, dialing address with
// the given transport framing once Start is called.
func New(loop *event.Loop, dc *datacenter.Datacenter, kind datacenter.AuthKeyKind, keyRing *crypto.KeyRing, address string, framing transport.Framing) *Engine {
	return &Engine{
		loop:    loop,
		dc:      dc,
		kind:    kind,
		keyRing: keyRing,
		address: address,
		framing: framing,
	}
}

// Start marks the handshake in progress on dc, dials the connection, and
// sends req_pq_multi.
func (e *Engine) Start() liberr.Error {
	if err := e.dc.BeginHandshake(e.kind, false); err != nil {
		return err
	}
	return e.dialAndBegin()
}

func (e *Engine) dialAndBegin() liberr.Error {
	e.conn = transport.New(e.loop, transport.Options{
		Address: e.address,
		Kind:    transport.KindTemp,
		Framing: e.framing,
		OnFrame: e.onFrame,
		OnClose: e.onClose,
	})

	if err := e.conn.Dial(); err != nil {
		e.onTransportFailure()
		return err
	}

	return e.sendReqPQ()
}

// restart clears in-flight crypto state and, if force is set, re-marks the
// handshake in progress (it already is, but a prior step may have left a
// stale nonce behind) before redialing from step 1.
func (e *Engine) restart(force bool) {
	e.resetState()

	if e.conn != nil {
		_ = e.conn.Close(transport.CloseRequested)
	}

	if err := e.dc.BeginHandshake(e.kind, force); err != nil {
		return
	}

	_ = e.dialAndBegin()
}

func (e *Engine) resetState() {
	e.step = stepNone
	e.nonce = [16]byte{}
	e.serverNonce = [16]byte{}
	e.newNonce = [32]byte{}
	e.dhPrime = nil
	e.g = 0
	e.lastGA = nil
	e.authKey = nil
	e.dhTries = 0
}

func (e *Engine) onTransportFailure() {
	e.failures++
	if e.failures < maxConsecutiveFailures {
		return
	}

	e.failures = 0
	e.retryCount++
	e.resetState()

	backoff := baseBackoff * time.Duration(int64(1)<<uint(e.retryCount-1))
	if backoff > maxBackoff {
		backoff = maxBackoff
	}

	e.loop.After(backoff, func() {
		e.retryCount = 0
		_ = e.dialAndBegin()
	})
}

func (e *Engine) onClose(reason transport.CloseReason, err liberr.Error) {
	if e.step == stepDone || reason == transport.CloseRequested {
		return
	}
	e.onTransportFailure()
}

func (e *Engine) send(body []byte) liberr.Error {
	frame := e.env.encode(body)
	if err := e.conn.Write(frame, false); err != nil {
		e.onTransportFailure()
		return err
	}
	return nil
}

func (e *Engine) onFrame(payload []byte, quickAck bool) {
	_, body, err := e.env.decode(payload)
	if err != nil {
		return
	}

	obj, err := tl.DecodeExact(bytesio.NewReader(body))
	if err != nil {
		return
	}

	switch e.step {
	case stepAwaitResPQ:
		e.handleResPQ(obj)
	case stepAwaitDHParams:
		e.handleServerDHParams(obj)
	case stepAwaitDHGen:
		e.handleDHGen(obj)
	}
}

// sendReqPQ is step 1: a fresh client nonce wrapped in req_pq_multi.
func (e *Engine) sendReqPQ() liberr.Error {
	nonce, err := crypto.RandomNonce128()
	if err != nil {
		return err
	}

	e.nonce = nonce
	e.step = stepAwaitResPQ

	return e.send(tl.Encode(&tl.ReqPqMulti{Nonce: e.nonce}))
}

// handleResPQ is step 2: factor pq, pick a pinned RSA key, and submit
// req_DH_params with the RSA-sealed inner data.
func (e *Engine) handleResPQ(obj tl.Object) {
	res, ok := obj.(*tl.ResPQ)
	if !ok || !bytes.Equal(res.Nonce[:], e.nonce[:]) {
		e.restart(true)
		return
	}
	e.serverNonce = res.ServerNonce

	pq := new(big.Int).SetBytes(res.PQ).Uint64()
	p, q, ferr := FactorPQ(pq)
	if ferr != nil {
		e.restart(true)
		return
	}

	key, kerr := e.keyRing.Select(res.ServerPublicKeyFingerprints)
	if kerr != nil {
		e.restart(true)
		return
	}

	nn, nerr := crypto.RandomBytes(32)
	if nerr != nil {
		e.restart(true)
		return
	}
	copy(e.newNonce[:], nn)

	pBytes := new(big.Int).SetUint64(p).Bytes()
	qBytes := new(big.Int).SetUint64(q).Bytes()

	var inner tl.Object
	if e.kind == datacenter.Permanent {
		inner = &tl.PQInnerDataDC{
			PQ: res.PQ, P: pBytes, Q: qBytes,
			Nonce: e.nonce, ServerNonce: e.serverNonce, NewNonce: e.newNonce,
			DC: e.dc.ID,
		}
	} else {
		inner = &tl.PQInnerDataTemp{
			PQ: res.PQ, P: pBytes, Q: qBytes,
			Nonce: e.nonce, ServerNonce: e.serverNonce, NewNonce: e.newNonce,
			ExpiresIn: tempKeyExpiresIn,
		}
	}

	encrypted, eerr := key.Encrypt(tl.Encode(inner))
	if eerr != nil {
		e.restart(true)
		return
	}

	e.step = stepAwaitDHParams
	_ = e.send(tl.Encode(&tl.ReqDHParams{
		Nonce: e.nonce, ServerNonce: e.serverNonce,
		P: pBytes, Q: qBytes,
		PublicKeyFingerprint: key.Fingerprint,
		EncryptedData:        encrypted,
	}))
}

// handleServerDHParams is step 3: decrypt and validate server_DH_params_ok,
// or restart on server_DH_params_fail.
func (e *Engine) handleServerDHParams(obj tl.Object) {
	switch v := obj.(type) {
	case *tl.ServerDHParamsOK:
		e.handleServerDHParamsOK(v)
	default:
		e.restart(true)
	}
}

func (e *Engine) handleServerDHParamsOK(v *tl.ServerDHParamsOK) {
	if !bytes.Equal(v.Nonce[:], e.nonce[:]) || !bytes.Equal(v.ServerNonce[:], e.serverNonce[:]) {
		e.restart(true)
		return
	}

	tmpKey, tmpIV := deriveTempKeyIV(e.newNonce, e.serverNonce)

	buf := append([]byte(nil), v.EncryptedAnswer...)
	ige, ierr := crypto.NewIGE(tmpKey, tmpIV)
	if ierr != nil {
		e.restart(true)
		return
	}
	if _, _, ierr = ige.DecryptInPlace(buf); ierr != nil {
		e.restart(true)
		return
	}
	if len(buf) < 20 {
		e.restart(true)
		return
	}

	hash := buf[:20]
	rest := buf[20:]

	r := bytesio.NewReader(rest)
	decoded, derr := tl.Decode(r)
	if derr != nil {
		e.restart(true)
		return
	}
	if !bytes.Equal(hash, crypto.SHA1Sum(rest[:r.Pos()])) {
		e.restart(true)
		return
	}

	inner, ok := decoded.(*tl.ServerDHInnerData)
	if !ok || !bytes.Equal(inner.Nonce[:], e.nonce[:]) || !bytes.Equal(inner.ServerNonce[:], e.serverNonce[:]) {
		e.restart(true)
		return
	}

	e.dhPrime = new(big.Int).SetBytes(inner.DHPrime)
	e.g = int64(inner.G)
	e.timeDiff = time.Duration(int64(inner.ServerTime)-time.Now().Unix()) * time.Second

	e.dhTries = 0
	e.sendClientDHParams(new(big.Int).SetBytes(inner.GA), 0)
}

// sendClientDHParams is step 4: pick a secret exponent, compute the shared
// key, and submit set_client_DH_params. Called again with a fresh secret
// and the server's retry id when dh_gen_retry is received.
func (e *Engine) sendClientDHParams(ga *big.Int, retryID uint64) {
	b, berr := crypto.GenerateSecret(e.dhPrime)
	if berr != nil {
		e.restart(true)
		return
	}
	e.lastGA = ga

	authKeyInt, kerr := crypto.ComputeAuthKey(ga, b, e.dhPrime, e.g)
	if kerr != nil {
		e.restart(true)
		return
	}
	authKeyBytes := make([]byte, 256)
	authKeyInt.FillBytes(authKeyBytes)
	e.authKey = authKeyBytes

	gb := crypto.ModExp(big.NewInt(e.g), b, e.dhPrime)
	gbBytes := make([]byte, 256)
	gb.FillBytes(gbBytes)

	inner := &tl.ClientDHInnerData{
		Nonce: e.nonce, ServerNonce: e.serverNonce,
		RetryID: retryID,
		GB:      gbBytes,
	}

	data := tl.Encode(inner)
	payload := append(append([]byte(nil), crypto.SHA1Sum(data)...), data...)

	if pad := len(payload) % 16; pad != 0 {
		padding, perr := crypto.RandomBytes(16 - pad)
		if perr != nil {
			e.restart(true)
			return
		}
		payload = append(payload, padding...)
	}

	tmpKey, tmpIV := deriveTempKeyIV(e.newNonce, e.serverNonce)
	ige, ierr := crypto.NewIGE(tmpKey, tmpIV)
	if ierr != nil {
		e.restart(true)
		return
	}
	if _, _, ierr = ige.EncryptInPlace(payload); ierr != nil {
		e.restart(true)
		return
	}

	e.step = stepAwaitDHGen
	_ = e.send(tl.Encode(&tl.SetClientDHParams{
		Nonce: e.nonce, ServerNonce: e.serverNonce,
		EncryptedData: payload,
	}))
}

// handleDHGen is step 5: validate the server's new_nonce hash against
// dh_gen_ok/retry/fail and either finalize, retry with a fresh secret, or
// restart the whole handshake.
func (e *Engine) handleDHGen(obj tl.Object) {
	authKeyAuxHash := crypto.SHA1Sum(e.authKey)[:8]

	switch v := obj.(type) {
	case *tl.DHGenOK:
		if !e.verifyDHGenHash(v.Nonce, v.ServerNonce, v.NewNonceHash1, 1, authKeyAuxHash) {
			e.restart(true)
			return
		}
		e.finalize()

	case *tl.DHGenRetry:
		if !e.verifyDHGenHash(v.Nonce, v.ServerNonce, v.NewNonceHash2, 2, authKeyAuxHash) {
			e.restart(true)
			return
		}
		e.dhTries++
		if e.dhTries >= maxDHRetries {
			e.restart(true)
			return
		}
		e.sendClientDHParams(e.lastGA, beUint64(authKeyAuxHash))

	default:
		// dh_gen_fail or anything unrecognized: restart from step 1.
		e.restart(true)
	}
}

func (e *Engine) verifyDHGenHash(nonce, serverNonce, got [16]byte, marker byte, authKeyAuxHash []byte) bool {
	if !bytes.Equal(nonce[:], e.nonce[:]) || !bytes.Equal(serverNonce[:], e.serverNonce[:]) {
		return false
	}
	expected := crypto.SHA1Sum(e.newNonce[:], []byte{marker}, authKeyAuxHash)[4:20]
	return bytes.Equal(expected, got[:])
}

func (e *Engine) finalize() {
	now := time.Now()
	key := datacenter.AuthKey{
		ID:        crypto.AuthKeyID(e.authKey),
		Key:       e.authKey,
		CreatedAt: now,
	}
	if e.kind != datacenter.Permanent {
		key.ExpiresAt = now.Add(time.Duration(tempKeyExpiresIn) * time.Second)
	}

	e.step = stepDone
	e.dc.CompleteHandshake(e.kind, key, e.timeDiff)

	if e.kind != datacenter.Permanent {
		e.prepareBind()
	}
}

// prepareBind builds the unsealed auth.bindTempAuthKey payload (spec.md
// §4.C5 step 6) and hands it to OnBindReady; sealing it under the permanent
// key and sending it is the dispatcher's job.
func (e *Engine) prepareBind() {
	if e.OnBindReady == nil {
		return
	}

	perm, perr := e.dc.AuthKeyFor(datacenter.Permanent)
	if perr != nil {
		return
	}

	nonceBytes, nerr := crypto.RandomBytes(8)
	if nerr != nil {
		return
	}
	sessionBytes, serr := crypto.RandomBytes(8)
	if serr != nil {
		return
	}

	inner := &tl.BindAuthKeyInner{
		Nonce:         beUint64(nonceBytes),
		TempAuthKeyID: crypto.AuthKeyID(e.authKey),
		PermAuthKeyID: perm.ID,
		TempSessionID: beUint64(sessionBytes),
		ExpiresAt:     int32(time.Now().Add(time.Duration(tempKeyExpiresIn) * time.Second).Unix()),
	}

	e.OnBindReady(BindHandoff{Kind: e.kind, Inner: inner})
}

// deriveTempKeyIV computes the MTProto 1.0-style temporary AES-256 key and
// IV used only to seal/unseal the handshake's DH exchange itself, from
// newNonce and serverNonce (distinct from the MTProto v2 scheme used for
// encrypted application messages, spec.md §9 Open Questions).
func deriveTempKeyIV(newNonce [32]byte, serverNonce [16]byte) ([]byte, []byte) {
	nn := newNonce[:]
	sn := serverNonce[:]

	h1 := crypto.SHA1Sum(nn, sn)
	h2 := crypto.SHA1Sum(sn, nn)
	h3 := crypto.SHA1Sum(nn, nn)

	key := append(append([]byte(nil), h1...), h2[:12]...)
	iv := append(append(append([]byte(nil), h2[12:20]...), h3...), nn[:4]...)
	return key, iv
}

func beUint64(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}
