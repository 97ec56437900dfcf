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
)

var le = binary.LittleEndian

// fixedWindow returns the width bytes at the cursor and advances past them
func fixedWindow(buf []byte, pos *int, width int) []byte {
	w := buf[*pos : *pos+width]
	*pos += width
	return w
}

// Fixed encoding widths
const (
	Uint8Size   = 1
	Uint16Size  = 2
	Int16Size   = 2
	Uint32Size  = 4
	Int32Size   = 4
	Uint64Size  = 8
	Int64Size   = 8
	Float32Size = 4
	Float64Size = 8
	BoolSize    = 1
	CharSize    = 1
)

func WriteUint8(buf []byte, pos *int, v uint8) error {
	if remaining(buf, pos) < Uint8Size {
		return ErrNotEnoughSpace
	}
	buf[*pos] = v
	*pos++
	return nil
}

func ReadUint8(buf []byte, pos *int) (uint8, error) {
	if remaining(buf, pos) < Uint8Size {
		return 0, ErrNotEnoughBytes
	}
	return fixedWindow(buf, pos, Uint8Size)[0], nil
}

func WriteUint16(buf []byte, pos *int, v uint16) error {
	if remaining(buf, pos) < Uint16Size {
		return ErrNotEnoughSpace
	}
	le.PutUint16(fixedWindow(buf, pos, Uint16Size), v)
	return nil
}

func ReadUint16(buf []byte, pos *int) (uint16, error) {
	if remaining(buf, pos) < Uint16Size {
		return 0, ErrNotEnoughBytes
	}
	return le.Uint16(fixedWindow(buf, pos, Uint16Size)), nil
}

func WriteInt16(buf []byte, pos *int, v int16) error {
	if remaining(buf, pos) < Int16Size {
		return ErrNotEnoughSpace
	}
	// #nosec G115 -- two's complement bit pattern
	le.PutUint16(fixedWindow(buf, pos, Int16Size), uint16(v))
	return nil
}

func ReadInt16(buf []byte, pos *int) (int16, error) {
	if remaining(buf, pos) < Int16Size {
		return 0, ErrNotEnoughBytes
	}
	return int16(le.Uint16(fixedWindow(buf, pos, Int16Size))), nil
}

func WriteUint32(buf []byte, pos *int, v uint32) error {
	if remaining(buf, pos) < Uint32Size {
		return ErrNotEnoughSpace
	}
	le.PutUint32(fixedWindow(buf, pos, Uint32Size), v)
	return nil
}

func ReadUint32(buf []byte, pos *int) (uint32, error) {
	if remaining(buf, pos) < Uint32Size {
		return 0, ErrNotEnoughBytes
	}
	return le.Uint32(fixedWindow(buf, pos, Uint32Size)), nil
}

func WriteInt32(buf []byte, pos *int, v int32) error {
	if remaining(buf, pos) < Int32Size {
		return ErrNotEnoughSpace
	}
	// #nosec G115 -- two's complement bit pattern
	le.PutUint32(fixedWindow(buf, pos, Int32Size), uint32(v))
	return nil
}

func ReadInt32(buf []byte, pos *int) (int32, error) {
	if remaining(buf, pos) < Int32Size {
		return 0, ErrNotEnoughBytes
	}
	return int32(le.Uint32(fixedWindow(buf, pos, Int32Size))), nil
}

func WriteUint64(buf []byte, pos *int, v uint64) error {
	if remaining(buf, pos) < Uint64Size {
		return ErrNotEnoughSpace
	}
	le.PutUint64(fixedWindow(buf, pos, Uint64Size), v)
	return nil
}

func ReadUint64(buf []byte, pos *int) (uint64, error) {
	if remaining(buf, pos) < Uint64Size {
		return 0, ErrNotEnoughBytes
	}
	return le.Uint64(fixedWindow(buf, pos, Uint64Size)), nil
}

func WriteInt64(buf []byte, pos *int, v int64) error {
	if remaining(buf, pos) < Int64Size {
		return ErrNotEnoughSpace
	}
	// #nosec G115 -- two's complement bit pattern
	le.PutUint64(fixedWindow(buf, pos, Int64Size), uint64(v))
	return nil
}

func ReadInt64(buf []byte, pos *int) (int64, error) {
	if remaining(buf, pos) < Int64Size {
		return 0, ErrNotEnoughBytes
	}
	return int64(le.Uint64(fixedWindow(buf, pos, Int64Size))), nil
}

// WriteFloat32 writes the IEEE-754 bit pattern of v
func WriteFloat32(buf []byte, pos *int, v float32) error {
	return WriteUint32(buf, pos, math.Float32bits(v))
}

func ReadFloat32(buf []byte, pos *int) (float32, error) {
	bits, err := ReadUint32(buf, pos)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// WriteFloat64 writes the IEEE-754 bit pattern of v
func WriteFloat64(buf []byte, pos *int, v float64) error {
	return WriteUint64(buf, pos, math.Float64bits(v))
}

func ReadFloat64(buf []byte, pos *int) (float64, error) {
	bits, err := ReadUint64(buf, pos)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

func WriteBool(buf []byte, pos *int, v bool) error {
	var b uint8
	if v {
		b = 1
	}
	return WriteUint8(buf, pos, b)
}

// ReadBool reads a single byte. Only 1 decodes as true
func ReadBool(buf []byte, pos *int) (bool, error) {
	b, err := ReadUint8(buf, pos)
	if err != nil {
		return false, err
	}
	return b == 1, nil
}

// WriteChar writes the low byte of r. Non-ASCII runes do not survive a round trip
func WriteChar(buf []byte, pos *int, r rune) error {
	return WriteUint8(buf, pos, byte(r))
}

func ReadChar(buf []byte, pos *int) (rune, error) {
	b, err := ReadUint8(buf, pos)
	if err != nil {
		return 0, err
	}
	return rune(b), nil
}
