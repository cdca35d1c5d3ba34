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

// InvokeWithLayer is invokeWithLayer#da9b0d0d layer:int query:!X = X, the
// outermost envelope every request is wrapped in once a connection's
// initConnection handshake has been sent (spec.md §4.C6 step 5).
type InvokeWithLayer struct {
	Layer int32
	Query Object
}

func (i *InvokeWithLayer) Constructor() uint32 { return 0xda9b0d0d }

func (i *InvokeWithLayer) Encode(w *bytesio.Writer) {
	w.PutU32LE(uint32(i.Layer))
	w.PutBytes(Encode(i.Query))
}

// InvokeAfterMsg is invokeAfterMsg#cb9f372d msg_id:long query:!X = X,
// inserted for requests flagged invokeAfter so the server serializes them
// after a named prior message (spec.md §4.C6 step 5).
type InvokeAfterMsg struct {
	MsgID uint64
	Query Object
}

func (i *InvokeAfterMsg) Constructor() uint32 { return 0xcb9f372d }

func (i *InvokeAfterMsg) Encode(w *bytesio.Writer) {
	w.PutU64LE(i.MsgID)
	w.PutBytes(Encode(i.Query))
}

// InitConnectionFlags bits, mirroring initConnection#c1cd5ea9's `flags`
// field; only the proxy-presence bit is meaningful to this client today.
const InitConnectionFlagProxy = 1 << 0

// InitConnection is initConnection#c1cd5ea9 flags:# api_id:int
// device_model:string system_version:string app_version:string
// system_lang_code:string lang_pack:string lang_code:string
// proxy:flags.0?InputClientProxy query:!X = X. Sent once per connection
// whose lastInitVersion differs from the running app version (spec.md §4.C4
// / §4.C6 step 5).
type InitConnection struct {
	APIID          int32
	DeviceModel    string
	SystemVersion  string
	AppVersion     string
	SystemLangCode string
	LangPack       string
	LangCode       string
	ProxyHost      string
	ProxyPort      int32
	ProxySecret    []byte
	Query          Object
}

func (i *InitConnection) Constructor() uint32 { return 0xc1cd5ea9 }

func (i *InitConnection) Encode(w *bytesio.Writer) {
	flags := int32(0)
	hasProxy := i.ProxyHost != ""
	if hasProxy {
		flags |= InitConnectionFlagProxy
	}

	w.PutU32LE(uint32(flags))
	w.PutU32LE(uint32(i.APIID))
	putBigBytes(w, []byte(i.DeviceModel))
	putBigBytes(w, []byte(i.SystemVersion))
	putBigBytes(w, []byte(i.AppVersion))
	putBigBytes(w, []byte(i.SystemLangCode))
	putBigBytes(w, []byte(i.LangPack))
	putBigBytes(w, []byte(i.LangCode))

	if hasProxy {
		if len(i.ProxySecret) > 0 {
			w.PutU32LE(0x37982646) // ipPortSecret
			putBigBytes(w, []byte(i.ProxyHost))
			w.PutU32LE(uint32(i.ProxyPort))
			putBigBytes(w, i.ProxySecret)
		} else {
			w.PutU32LE(0xd433ad73) // ipPort
			putBigBytes(w, []byte(i.ProxyHost))
			w.PutU32LE(uint32(i.ProxyPort))
		}
	}

	w.PutBytes(Encode(i.Query))
}

// AuthExportAuthorization is auth.exportAuthorization#e5bfffcd dc_id:int =
// auth.ExportedAuthorization, issued on the source datacenter during
// migration (spec.md §4.C6 "Migration").
type AuthExportAuthorization struct {
	DCID int32
}

func (a *AuthExportAuthorization) Constructor() uint32     { return 0xe5bfffcd }
func (a *AuthExportAuthorization) Encode(w *bytesio.Writer) { w.PutU32LE(uint32(a.DCID)) }

// AuthExportedAuthorization is auth.exportedAuthorization#b434e2b8 id:long
// bytes:bytes = auth.ExportedAuthorization.
type AuthExportedAuthorization struct {
	ID    uint64
	Bytes []byte
}

func (a *AuthExportedAuthorization) Constructor() uint32 { return 0xb434e2b8 }
func (a *AuthExportedAuthorization) Encode(w *bytesio.Writer) {
	w.PutU64LE(a.ID)
	putBigBytes(w, a.Bytes)
}

func decodeAuthExportedAuthorization(r *bytesio.Reader) (Object, liberr.Error) {
	a := &AuthExportedAuthorization{}
	var err liberr.Error
	if a.ID, err = r.U64LE(); err != nil {
		return nil, err
	}
	if a.Bytes, err = readBigBytes(r); err != nil {
		return nil, err
	}
	return a, nil
}

// AuthImportAuthorization is auth.importAuthorization#e3ef9613 id:long
// bytes:bytes = auth.Authorization, issued on the destination datacenter
// during migration.
type AuthImportAuthorization struct {
	ID    uint64
	Bytes []byte
}

func (a *AuthImportAuthorization) Constructor() uint32 { return 0xe3ef9613 }
func (a *AuthImportAuthorization) Encode(w *bytesio.Writer) {
	w.PutU64LE(a.ID)
	putBigBytes(w, a.Bytes)
}

// HelpGetConfig is help.getConfig#c4f9186b = Config, used at bootstrap and
// after a "request new address" signal to refresh the datacenter/address
// table (spec.md §4.C4).
type HelpGetConfig struct{}

func (h *HelpGetConfig) Constructor() uint32     { return 0xc4f9186b }
func (h *HelpGetConfig) Encode(w *bytesio.Writer) {}

// InputFileLocation identifies a previously uploaded file for
// upload.getFile. Only the fields this client's download path exercises are
// modeled; unrecognized location kinds round-trip through Unparsed.
type InputFileLocation struct {
	VolumeID uint64
	LocalID  int32
	Secret   uint64
}

const inputFileLocationConstructor = 0x430f0724

func (l *InputFileLocation) Constructor() uint32 { return inputFileLocationConstructor }

func (l *InputFileLocation) Encode(w *bytesio.Writer) {
	w.PutU64LE(l.VolumeID)
	w.PutU32LE(uint32(l.LocalID))
	w.PutU64LE(l.Secret)
}

// UploadGetFileFlagPrecise / Cdn mirror upload.getFile#24e6818d's `flags`
// bits.
const (
	UploadGetFileFlagPrecise = 1 << 0
	UploadGetFileFlagCdn     = 1 << 1
)

// UploadGetFile is upload.getFile#24e6818d flags:# precise:flags.0?true
// cdn_supported:flags.1?true location:InputFileLocation offset:long
// limit:int = upload.File, the chunk-fetch primitive behind DownloadOperation
// (spec.md §4.C7).
type UploadGetFile struct {
	Flags    int32
	Location *InputFileLocation
	Offset   int64
	Limit    int32
}

func (u *UploadGetFile) Constructor() uint32 { return 0x24e6818d }

func (u *UploadGetFile) Encode(w *bytesio.Writer) {
	w.PutU32LE(uint32(u.Flags))
	w.PutBytes(Encode(u.Location))
	w.PutU64LE(uint64(u.Offset))
	w.PutU32LE(uint32(u.Limit))
}

// UploadFile is upload.file#96a18d5 type:storage.FileType mtime:int
// bytes:bytes = upload.File, the successful response to UploadGetFile.
type UploadFile struct {
	MTime int32
	Bytes []byte
}

func (u *UploadFile) Constructor() uint32 { return 0x96a18d5 }

func (u *UploadFile) Encode(w *bytesio.Writer) {
	w.PutU32LE(0x1a714860) // storage.fileUnknown, this client does not branch on type
	w.PutU32LE(uint32(u.MTime))
	putBigBytes(w, u.Bytes)
}

func decodeUploadFile(r *bytesio.Reader) (Object, liberr.Error) {
	if _, err := r.U32LE(); err != nil { // storage.FileType constructor, unused
		return nil, err
	}
	u := &UploadFile{}
	mt, err := r.U32LE()
	if err != nil {
		return nil, err
	}
	u.MTime = int32(mt)
	if u.Bytes, err = readBigBytes(r); err != nil {
		return nil, err
	}
	return u, nil
}

func init() {
	register(0xb434e2b8, decodeAuthExportedAuthorization)
	register(0x96a18d5, decodeUploadFile)
}
