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

// Package codec implements the canonical binary encoding used by IOST for
// hashing and signing block headers and transactions.
//
// Every value is written into a caller-provided buffer at a cursor position
// that is threaded explicitly through each call, so that successive fields of
// a record can be serialized into one pre-sized buffer:
//
//	buf := make([]byte, head.NumBytes())
//	pos := 0
//	if err := head.Write(buf, &pos); err != nil {
//	    return err
//	}
//
// # Encoding rules
//
//   - Fixed-width integers are little-endian by byte index: byte i holds
//     bits [8i, 8i+8).
//   - Floats are written as their IEEE-754 bit pattern.
//   - bool and char occupy a single byte. char only keeps the low byte of
//     the rune.
//   - Lengths and counts use UnsignedInt, a 7-bit-per-byte varint whose
//     continuation flag is the high bit.
//   - Strings and byte slices are a length prefix followed by the raw bytes.
//   - Sequences are a count followed by each element; options are a bool
//     presence flag followed by the value when present.
//
// Decoding is strict: a value that runs past the end of the input fails with
// ErrNotEnoughBytes, and nothing is partially filled. Length prefixes are
// bounded by the remaining input and by MaxSequenceLength.
package codec
