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

package codec

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"
)

// MaxVarintLen is the longest encoding of an UnsignedInt
const MaxVarintLen = binary.MaxVarintLen32

// UnsignedInt is a 32-bit value with a variable-length encoding of 7 bits per
// byte, least significant group first. The high bit of each byte is set when
// more bytes follow.
type UnsignedInt uint32

func (u UnsignedInt) NumBytes() int {
	var tmp [MaxVarintLen]byte
	return binary.PutUvarint(tmp[:], uint64(u))
}

func (u UnsignedInt) Write(buf []byte, pos *int) error {
	if remaining(buf, pos) < u.NumBytes() {
		return ErrNotEnoughSpace
	}
	*pos += binary.PutUvarint(buf[*pos:], uint64(u))
	return nil
}

func (u *UnsignedInt) Read(buf []byte, pos *int) error {
	if *pos < 0 || *pos > len(buf) {
		return ErrNotEnoughBytes
	}
	window := buf[*pos:min(len(buf), *pos+MaxVarintLen)]
	val, n := binary.Uvarint(window)
	switch {
	case n == 0 && len(window) == MaxVarintLen:
		// every byte in the window has its continuation bit set
		return ErrVarintOverflow
	case n == 0:
		return ErrNotEnoughBytes
	case n < 0 || val > math.MaxUint32:
		return ErrVarintOverflow
	}
	*pos += n
	*u = UnsignedInt(val)
	return nil
}

func (u UnsignedInt) String() string {
	return strconv.FormatUint(uint64(u), 10)
}

// LengthSize returns the encoded size of a length prefix for n
func LengthSize(n int) int {
	if n < 0 || uint64(n) > math.MaxUint32 {
		// WriteLength rejects these, size them as the widest varint
		return MaxVarintLen
	}
	return UnsignedInt(uint32(n)).NumBytes()
}

// WriteLength writes n as an UnsignedInt length prefix
func WriteLength(buf []byte, pos *int, n int) error {
	if n < 0 || uint64(n) > math.MaxUint32 {
		return ErrLengthLimit
	}
	return UnsignedInt(uint32(n)).Write(buf, pos)
}

// ReadLength reads an UnsignedInt length prefix. The result is checked
// against MaxSequenceLength and against the bytes left in buf, assuming every
// counted item occupies at least minItemSize bytes.
func ReadLength(buf []byte, pos *int, minItemSize int) (int, error) {
	var u UnsignedInt
	if err := u.Read(buf, pos); err != nil {
		return 0, err
	}
	n := int(u)
	if n > MaxSequenceLength {
		return 0, ErrLengthLimit
	}
	if minItemSize > 0 && n > remaining(buf, pos)/minItemSize {
		return 0, ErrNotEnoughBytes
	}
	return n, nil
}

// BytesSize returns the encoded size of a length-prefixed byte slice
func BytesSize(b []byte) int {
	return LengthSize(len(b)) + len(b)
}

func WriteBytes(buf []byte, pos *int, b []byte) error {
	if remaining(buf, pos) < BytesSize(b) {
		return ErrNotEnoughSpace
	}
	if err := WriteLength(buf, pos, len(b)); err != nil {
		return err
	}
	*pos += copy(buf[*pos:], b)
	return nil
}

// ReadBytes reads a length-prefixed byte slice. The result does not alias buf
func ReadBytes(buf []byte, pos *int) ([]byte, error) {
	n, err := ReadLength(buf, pos, 1)
	if err != nil {
		return nil, err
	}
	ret := make([]byte, n)
	*pos += copy(ret, buf[*pos:*pos+n])
	return ret, nil
}

// StringSize returns the encoded size of a length-prefixed string
func StringSize(s string) int {
	return LengthSize(len(s)) + len(s)
}

func WriteString(buf []byte, pos *int, s string) error {
	if remaining(buf, pos) < StringSize(s) {
		return ErrNotEnoughSpace
	}
	if err := WriteLength(buf, pos, len(s)); err != nil {
		return err
	}
	*pos += copy(buf[*pos:], s)
	return nil
}

// ReadString reads a length-prefixed string. Invalid UTF-8 sequences are
// replaced with U+FFFD rather than reported as errors
func ReadString(buf []byte, pos *int) (string, error) {
	b, err := ReadBytes(buf, pos)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(b), "�"), nil
}
