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

// White-box tests exercising the unexported frame and preamble codecs
// directly, the way monitor/info's internal_test.go reaches into its own
// package rather than going through a public API.
package transport

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Frame encoding", func() {
	Context("abridged framing", func() {
		It("round-trips a short payload without quick-ack", func() {
			payload := bytes.Repeat([]byte{0x42}, 16)

			framed, err := encodeFrame(FramingAbridged, payload, false)
			Expect(err).To(BeNil())

			n, qa, decErr := decodeFrameHeader(FramingAbridged, framed[:frameHeaderLen(FramingAbridged, framed[0])])
			Expect(decErr).To(BeNil())
			Expect(qa).To(BeFalse())
			Expect(n).To(Equal(len(payload)))
		})

		It("sets the quick-ack bit in the high bit of the length byte", func() {
			payload := bytes.Repeat([]byte{0x01}, 8)

			framed, err := encodeFrame(FramingAbridged, payload, true)
			Expect(err).To(BeNil())

			n, qa, decErr := decodeFrameHeader(FramingAbridged, framed[:frameHeaderLen(FramingAbridged, framed[0])])
			Expect(decErr).To(BeNil())
			Expect(qa).To(BeTrue())
			Expect(n).To(Equal(len(payload)))
		})

		It("escapes lengths of 127 words or more into the 4-byte form", func() {
			payload := bytes.Repeat([]byte{0x07}, 4*200)

			framed, err := encodeFrame(FramingAbridged, payload, false)
			Expect(err).To(BeNil())
			Expect(framed[0]).To(Equal(byte(0x7f)))

			n, _, decErr := decodeFrameHeader(FramingAbridged, framed[:4])
			Expect(decErr).To(BeNil())
			Expect(n).To(Equal(len(payload)))
		})
	})

	Context("intermediate framing", func() {
		It("round-trips a payload using the 4-byte length prefix", func() {
			payload := bytes.Repeat([]byte{0x55}, 300)

			framed, err := encodeFrame(FramingIntermediate, payload, false)
			Expect(err).To(BeNil())

			n, qa, decErr := decodeFrameHeader(FramingIntermediate, framed[:4])
			Expect(decErr).To(BeNil())
			Expect(qa).To(BeFalse())
			Expect(n).To(Equal(len(payload)))
		})

		It("sets the high bit of the length word for quick-ack", func() {
			payload := bytes.Repeat([]byte{0x09}, 40)

			framed, err := encodeFrame(FramingIntermediate, payload, true)
			Expect(err).To(BeNil())

			n, qa, decErr := decodeFrameHeader(FramingIntermediate, framed[:4])
			Expect(decErr).To(BeNil())
			Expect(qa).To(BeTrue())
			Expect(n).To(Equal(len(payload)))
		})
	})

	Context("oversized payload", func() {
		It("rejects a payload above the transport's frame ceiling", func() {
			_, err := encodeFrame(FramingIntermediate, make([]byte, maxFrameSize+1), false)
			Expect(err).ToNot(BeNil())
		})
	})
})

var _ = Describe("Obfuscation preamble", func() {
	It("never starts with the abridged magic byte", func() {
		preamble, _, err := newObfuscation(FramingIntermediate)
		Expect(err).To(BeNil())
		Expect(preamble).To(HaveLen(64))
		Expect(preamble[0]).ToNot(Equal(byte(0xef)))
	})

	It("tags the last four bytes with the requested framing", func() {
		preamble, _, err := newObfuscation(FramingPaddedIntermediate)
		Expect(err).To(BeNil())
		Expect(preamble[56:60]).To(Equal([]byte{0xdd, 0xdd, 0xdd, 0xdd}))
	})

	It("derives encrypt and decrypt streams that are not identical", func() {
		_, obf, err := newObfuscation(FramingAbridged)
		Expect(err).To(BeNil())

		plain := []byte("mtproto obfuscation roundtrip!!")
		enc := make([]byte, len(plain))
		dec := make([]byte, len(plain))
		obf.encrypt(enc, plain)
		obf.decrypt(dec, plain)

		Expect(enc).ToNot(Equal(plain))
		Expect(enc).ToNot(Equal(dec))
	})
})
