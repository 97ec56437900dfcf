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
	"errors"
	"fmt"
)

var (
	// ErrNotEnoughSpace is returned when a write runs past the end of the buffer
	ErrNotEnoughSpace = errors.New("codec: not enough space in buffer")
	// ErrNotEnoughBytes is returned when a read runs past the end of the input
	ErrNotEnoughBytes = errors.New("codec: not enough bytes")
	// ErrVarintOverflow is returned for varints that do not fit in 32 bits
	ErrVarintOverflow = errors.New("codec: varint overflows 32 bits")
	// ErrLengthLimit is returned for length prefixes above MaxSequenceLength
	ErrLengthLimit = errors.New("codec: length prefix exceeds limit")
	// ErrTrailingBytes is returned by Unmarshal when input remains after decoding
	ErrTrailingBytes = errors.New("codec: trailing bytes after value")
)

// MaxSequenceLength bounds the element count of any decoded sequence,
// string or byte slice
const MaxSequenceLength = 1 << 20

// Sizer reports the exact number of bytes a value occupies when written
type Sizer interface {
	NumBytes() int
}

// Encoder is implemented by types with a canonical encoding
type Encoder interface {
	Sizer
	Write(buf []byte, pos *int) error
}

// Decoder is implemented by types that can be read back from their canonical encoding
type Decoder interface {
	Read(buf []byte, pos *int) error
}

// Marshal returns the canonical encoding of v in a buffer sized by NumBytes
func Marshal(v Encoder) ([]byte, error) {
	buf := make([]byte, v.NumBytes())
	pos := 0
	if err := v.Write(buf, &pos); err != nil {
		return nil, err
	}
	if pos != len(buf) {
		return nil, fmt.Errorf(
			"codec: wrote %d bytes, expected %d",
			pos,
			len(buf),
		)
	}
	return buf, nil
}

// Unmarshal decodes data into v, requiring that all of data is consumed
func Unmarshal(data []byte, v Decoder) error {
	pos := 0
	if err := v.Read(data, &pos); err != nil {
		return err
	}
	if pos != len(data) {
		return fmt.Errorf("%w: %d remaining", ErrTrailingBytes, len(data)-pos)
	}
	return nil
}

// remaining returns the number of bytes left after the cursor
func remaining(buf []byte, pos *int) int {
	if *pos < 0 || *pos > len(buf) {
		return 0
	}
	return len(buf) - *pos
}
