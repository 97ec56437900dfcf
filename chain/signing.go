// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package chain

import (
	"encoding/binary"
	"math"

	"github.com/blinklabs-io/goiost/keys"
)

// signingEncoder builds the byte string that transaction signatures cover.
// Integers are big-endian; byte strings and slices carry an int32 length
// or count prefix
type signingEncoder struct {
	buf []byte
}

func (e *signingEncoder) writeByte(b byte) {
	e.buf = append(e.buf, b)
}

func (e *signingEncoder) writeInt32(v int32) {
	// #nosec G115 -- two's complement bit pattern
	e.buf = binary.BigEndian.AppendUint32(e.buf, uint32(v))
}

func (e *signingEncoder) writeInt64(v int64) {
	// #nosec G115 -- two's complement bit pattern
	e.buf = binary.BigEndian.AppendUint64(e.buf, uint64(v))
}

func (e *signingEncoder) writeLength(n int) {
	if n > math.MaxInt32 {
		panic("chain: signing field exceeds int32 length")
	}
	// #nosec G115 -- bounded above
	e.writeInt32(int32(n))
}

func (e *signingEncoder) writeBytes(b []byte) {
	e.writeLength(len(b))
	e.buf = append(e.buf, b...)
}

func (e *signingEncoder) writeString(s string) {
	e.writeLength(len(s))
	e.buf = append(e.buf, s...)
}

func (e *signingEncoder) writeStrings(items []string) {
	e.writeLength(len(items))
	for _, s := range items {
		e.writeString(s)
	}
}

// writeItems writes a count followed by each item as a length-prefixed
// byte string
func writeItems[T any](e *signingEncoder, items []T, encode func(T) []byte) {
	e.writeLength(len(items))
	for _, item := range items {
		e.writeBytes(encode(item))
	}
}

func (a Action) signingBytes() []byte {
	var e signingEncoder
	e.writeString(a.Contract)
	e.writeString(a.ActionName)
	e.writeString(a.Data)
	return e.buf
}

func (l AmountLimit) signingBytes() []byte {
	var e signingEncoder
	e.writeString(l.Token)
	e.writeString(l.Value)
	return e.buf
}

// signingBytes covers the algorithm tag and the raw signature and public key.
// Fields that are not valid base64 are taken as is; such a signature fails
// verification regardless
func (s Signature) signingBytes() []byte {
	var e signingEncoder
	var tag byte
	if alg, err := keys.ParseAlgorithm(s.Algorithm); err == nil {
		tag = byte(alg)
	}
	e.writeByte(tag)
	for _, field := range []string{s.Signature, s.PublicKey} {
		raw, err := keys.DecodeBase64(field)
		if err != nil {
			raw = []byte(field)
		}
		e.writeBytes(raw)
	}
	return e.buf
}
