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

// ReqPqMulti is req_pq_multi#be7e8ef1 nonce:int128 = ResPQ.
type ReqPqMulti struct {
	Nonce [16]byte
}

func (o *ReqPqMulti) Constructor() uint32 { return 0xbe7e8ef1 }
func (o *ReqPqMulti) Encode(w *bytesio.Writer) { w.PutBytes(o.Nonce[:]) }

// ResPQ is resPQ#05162463 nonce:int128 server_nonce:int128 pq:string
// server_public_key_fingerprints:Vector<long> = ResPQ.
type ResPQ struct {
	Nonce                        [16]byte
	ServerNonce                  [16]byte
	PQ                           []byte
	ServerPublicKeyFingerprints []uint64
}

func (o *ResPQ) Constructor() uint32 { return 0x05162463 }

func (o *ResPQ) Encode(w *bytesio.Writer) {
	w.PutBytes(o.Nonce[:])
	w.PutBytes(o.ServerNonce[:])
	putBigBytes(w, o.PQ)
	putVectorHeader(w, len(o.ServerPublicKeyFingerprints))
	for _, fp := range o.ServerPublicKeyFingerprints {
		w.PutU64LE(fp)
	}
}

func decodeResPQ(r *bytesio.Reader) (Object, liberr.Error) {
	o := &ResPQ{}

	n, err := r.Bytes(16)
	if err != nil {
		return nil, err
	}
	copy(o.Nonce[:], n)

	sn, err := r.Bytes(16)
	if err != nil {
		return nil, err
	}
	copy(o.ServerNonce[:], sn)

	if o.PQ, err = readBigBytes(r); err != nil {
		return nil, err
	}

	cnt, err := readVectorLen(r)
	if err != nil {
		return nil, err
	}
	o.ServerPublicKeyFingerprints = make([]uint64, cnt)
	for i := range o.ServerPublicKeyFingerprints {
		if o.ServerPublicKeyFingerprints[i], err = r.U64LE(); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// PQInnerDataTemp is p_q_inner_data_temp#3c6a84d4: the variant used for
// temporary auth keys (handshake step 2, spec.md §4.C5).
type PQInnerDataTemp struct {
	PQ, P, Q    []byte
	Nonce       [16]byte
	ServerNonce [16]byte
	NewNonce    [32]byte
	ExpiresIn   int32
}

func (o *PQInnerDataTemp) Constructor() uint32 { return 0x3c6a84d4 }

func (o *PQInnerDataTemp) Encode(w *bytesio.Writer) {
	putBigBytes(w, o.PQ)
	putBigBytes(w, o.P)
	putBigBytes(w, o.Q)
	w.PutBytes(o.Nonce[:])
	w.PutBytes(o.ServerNonce[:])
	w.PutBytes(o.NewNonce[:])
	w.PutU32LE(uint32(o.ExpiresIn))
}

// PQInnerDataDC is p_q_inner_data_dc#a9f55f95: the permanent-key variant,
// tagged with the target dc id.
type PQInnerDataDC struct {
	PQ, P, Q    []byte
	Nonce       [16]byte
	ServerNonce [16]byte
	NewNonce    [32]byte
	DC          int32
}

func (o *PQInnerDataDC) Constructor() uint32 { return 0xa9f55f95 }

func (o *PQInnerDataDC) Encode(w *bytesio.Writer) {
	putBigBytes(w, o.PQ)
	putBigBytes(w, o.P)
	putBigBytes(w, o.Q)
	w.PutBytes(o.Nonce[:])
	w.PutBytes(o.ServerNonce[:])
	w.PutBytes(o.NewNonce[:])
	w.PutU32LE(uint32(o.DC))
}

// ReqDHParams is req_DH_params#d712e4be nonce:int128 server_nonce:int128
// p:string q:string public_key_fingerprint:long encrypted_data:string =
// Server_DH_Params.
type ReqDHParams struct {
	Nonce                [16]byte
	ServerNonce          [16]byte
	P, Q                 []byte
	PublicKeyFingerprint uint64
	EncryptedData        []byte
}

func (o *ReqDHParams) Constructor() uint32 { return 0xd712e4be }

func (o *ReqDHParams) Encode(w *bytesio.Writer) {
	w.PutBytes(o.Nonce[:])
	w.PutBytes(o.ServerNonce[:])
	putBigBytes(w, o.P)
	putBigBytes(w, o.Q)
	w.PutU64LE(o.PublicKeyFingerprint)
	putBigBytes(w, o.EncryptedData)
}

// ServerDHParamsOK is server_DH_params_ok#d0e8075c nonce:int128
// server_nonce:int128 encrypted_answer:string = Server_DH_Params.
type ServerDHParamsOK struct {
	Nonce, ServerNonce [16]byte
	EncryptedAnswer    []byte
}

func (o *ServerDHParamsOK) Constructor() uint32 { return 0xd0e8075c }

func (o *ServerDHParamsOK) Encode(w *bytesio.Writer) {
	w.PutBytes(o.Nonce[:])
	w.PutBytes(o.ServerNonce[:])
	putBigBytes(w, o.EncryptedAnswer)
}

func decodeServerDHParamsOK(r *bytesio.Reader) (Object, liberr.Error) {
	o := &ServerDHParamsOK{}
	if err := fillNonces(r, &o.Nonce, &o.ServerNonce); err != nil {
		return nil, err
	}
	var err liberr.Error
	if o.EncryptedAnswer, err = readBigBytes(r); err != nil {
		return nil, err
	}
	return o, nil
}

// ServerDHParamsFail is server_DH_params_fail#79cb045d nonce:int128
// server_nonce:int128 new_nonce_hash:int128 = Server_DH_Params.
type ServerDHParamsFail struct {
	Nonce, ServerNonce, NewNonceHash [16]byte
}

func (o *ServerDHParamsFail) Constructor() uint32 { return 0x79cb045d }

func (o *ServerDHParamsFail) Encode(w *bytesio.Writer) {
	w.PutBytes(o.Nonce[:])
	w.PutBytes(o.ServerNonce[:])
	w.PutBytes(o.NewNonceHash[:])
}

func decodeServerDHParamsFail(r *bytesio.Reader) (Object, liberr.Error) {
	o := &ServerDHParamsFail{}
	if err := fillNonces(r, &o.Nonce, &o.ServerNonce); err != nil {
		return nil, err
	}
	h, err := r.Bytes(16)
	if err != nil {
		return nil, err
	}
	copy(o.NewNonceHash[:], h)
	return o, nil
}

// ServerDHInnerData is server_DH_inner_data#b5890dba nonce:int128
// server_nonce:int128 g:int dh_prime:string g_a:string server_time:int =
// Server_DH_inner_data. This is the plaintext recovered after AES-IGE
// decrypting ServerDHParamsOK.EncryptedAnswer (spec.md §4.C5 step 3).
type ServerDHInnerData struct {
	Nonce, ServerNonce [16]byte
	G                  int32
	DHPrime            []byte
	GA                 []byte
	ServerTime         int32
}

func (o *ServerDHInnerData) Constructor() uint32 { return 0xb5890dba }

func (o *ServerDHInnerData) Encode(w *bytesio.Writer) {
	w.PutBytes(o.Nonce[:])
	w.PutBytes(o.ServerNonce[:])
	w.PutU32LE(uint32(o.G))
	putBigBytes(w, o.DHPrime)
	putBigBytes(w, o.GA)
	w.PutU32LE(uint32(o.ServerTime))
}

func decodeServerDHInnerData(r *bytesio.Reader) (Object, liberr.Error) {
	o := &ServerDHInnerData{}
	if err := fillNonces(r, &o.Nonce, &o.ServerNonce); err != nil {
		return nil, err
	}

	g, err := r.U32LE()
	if err != nil {
		return nil, err
	}
	o.G = int32(g)

	if o.DHPrime, err = readBigBytes(r); err != nil {
		return nil, err
	}
	if o.GA, err = readBigBytes(r); err != nil {
		return nil, err
	}

	st, err := r.U32LE()
	if err != nil {
		return nil, err
	}
	o.ServerTime = int32(st)

	return o, nil
}

// ClientDHInnerData is client_DH_inner_data#6643b654 nonce:int128
// server_nonce:int128 retry_id:long g_b:string = Client_DH_Inner_Data.
type ClientDHInnerData struct {
	Nonce, ServerNonce [16]byte
	RetryID            uint64
	GB                 []byte
}

func (o *ClientDHInnerData) Constructor() uint32 { return 0x6643b654 }

func (o *ClientDHInnerData) Encode(w *bytesio.Writer) {
	w.PutBytes(o.Nonce[:])
	w.PutBytes(o.ServerNonce[:])
	w.PutU64LE(o.RetryID)
	putBigBytes(w, o.GB)
}

// SetClientDHParams is set_client_DH_params#f5045f1f nonce:int128
// server_nonce:int128 encrypted_data:string = Set_client_DH_params_answer.
type SetClientDHParams struct {
	Nonce, ServerNonce [16]byte
	EncryptedData      []byte
}

func (o *SetClientDHParams) Constructor() uint32 { return 0xf5045f1f }

func (o *SetClientDHParams) Encode(w *bytesio.Writer) {
	w.PutBytes(o.Nonce[:])
	w.PutBytes(o.ServerNonce[:])
	putBigBytes(w, o.EncryptedData)
}

// DHGenOK/DHGenRetry/DHGenFail are dh_gen_ok#3bcbf734 / dh_gen_retry#46dc1fb9
// / dh_gen_fail#a69dae02 nonce:int128 server_nonce:int128
// new_nonce_hash:int128 = Set_client_DH_params_answer.
type DHGenOK struct{ Nonce, ServerNonce, NewNonceHash1 [16]byte }
type DHGenRetry struct{ Nonce, ServerNonce, NewNonceHash2 [16]byte }
type DHGenFail struct{ Nonce, ServerNonce, NewNonceHash3 [16]byte }

func (o *DHGenOK) Constructor() uint32 { return 0x3bcbf734 }
func (o *DHGenOK) Encode(w *bytesio.Writer) {
	w.PutBytes(o.Nonce[:])
	w.PutBytes(o.ServerNonce[:])
	w.PutBytes(o.NewNonceHash1[:])
}

func (o *DHGenRetry) Constructor() uint32 { return 0x46dc1fb9 }
func (o *DHGenRetry) Encode(w *bytesio.Writer) {
	w.PutBytes(o.Nonce[:])
	w.PutBytes(o.ServerNonce[:])
	w.PutBytes(o.NewNonceHash2[:])
}

func (o *DHGenFail) Constructor() uint32 { return 0xa69dae02 }
func (o *DHGenFail) Encode(w *bytesio.Writer) {
	w.PutBytes(o.Nonce[:])
	w.PutBytes(o.ServerNonce[:])
	w.PutBytes(o.NewNonceHash3[:])
}

func decodeDHGen(nonceHash *[16]byte) func(r *bytesio.Reader) (nonce, serverNonce [16]byte, err liberr.Error) {
	return func(r *bytesio.Reader) (nonce, serverNonce [16]byte, err liberr.Error) {
		if err = fillNonces(r, &nonce, &serverNonce); err != nil {
			return
		}
		h, e := r.Bytes(16)
		if e != nil {
			err = e
			return
		}
		copy(nonceHash[:], h)
		return
	}
}

func decodeDHGenOK(r *bytesio.Reader) (Object, liberr.Error) {
	o := &DHGenOK{}
	n, sn, err := decodeDHGen(&o.NewNonceHash1)(r)
	if err != nil {
		return nil, err
	}
	o.Nonce, o.ServerNonce = n, sn
	return o, nil
}

func decodeDHGenRetry(r *bytesio.Reader) (Object, liberr.Error) {
	o := &DHGenRetry{}
	n, sn, err := decodeDHGen(&o.NewNonceHash2)(r)
	if err != nil {
		return nil, err
	}
	o.Nonce, o.ServerNonce = n, sn
	return o, nil
}

func decodeDHGenFail(r *bytesio.Reader) (Object, liberr.Error) {
	o := &DHGenFail{}
	n, sn, err := decodeDHGen(&o.NewNonceHash3)(r)
	if err != nil {
		return nil, err
	}
	o.Nonce, o.ServerNonce = n, sn
	return o, nil
}

// BindAuthKeyInner is bind_auth_key_inner#75a3f765 nonce:long
// temp_auth_key_id:long perm_auth_key_id:long temp_session_id:long
// expires_at:int = BindAuthKeyInner. This is the plaintext sealed inside
// auth.bindTempAuthKey.EncryptedMessage under the permanent key.
type BindAuthKeyInner struct {
	Nonce          uint64
	TempAuthKeyID  uint64
	PermAuthKeyID  uint64
	TempSessionID  uint64
	ExpiresAt      int32
}

func (o *BindAuthKeyInner) Constructor() uint32 { return 0x75a3f765 }

func (o *BindAuthKeyInner) Encode(w *bytesio.Writer) {
	w.PutU64LE(o.Nonce)
	w.PutU64LE(o.TempAuthKeyID)
	w.PutU64LE(o.PermAuthKeyID)
	w.PutU64LE(o.TempSessionID)
	w.PutU32LE(uint32(o.ExpiresAt))
}

// AuthBindTempAuthKey is auth.bindTempAuthKey#cdd42a05 perm_auth_key_id:long
// nonce:long expires_at:int encrypted_message:bytes = Bool.
type AuthBindTempAuthKey struct {
	PermAuthKeyID    uint64
	Nonce            uint64
	ExpiresAt        int32
	EncryptedMessage []byte
}

func (o *AuthBindTempAuthKey) Constructor() uint32 { return 0xcdd42a05 }

func (o *AuthBindTempAuthKey) Encode(w *bytesio.Writer) {
	w.PutU64LE(o.PermAuthKeyID)
	w.PutU64LE(o.Nonce)
	w.PutU32LE(uint32(o.ExpiresAt))
	putBigBytes(w, o.EncryptedMessage)
}

func fillNonces(r *bytesio.Reader, nonce, serverNonce *[16]byte) liberr.Error {
	n, err := r.Bytes(16)
	if err != nil {
		return err
	}
	copy(nonce[:], n)

	sn, err := r.Bytes(16)
	if err != nil {
		return err
	}
	copy(serverNonce[:], sn)

	return nil
}

func init() {
	register(0x05162463, decodeResPQ)
	register(0xd0e8075c, decodeServerDHParamsOK)
	register(0x79cb045d, decodeServerDHParamsFail)
	register(0xb5890dba, decodeServerDHInnerData)
	register(0x3bcbf734, decodeDHGenOK)
	register(0x46dc1fb9, decodeDHGenRetry)
	register(0xa69dae02, decodeDHGenFail)
}
