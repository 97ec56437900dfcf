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

// SequenceSize returns the encoded size of a count-prefixed sequence
func SequenceSize[T Sizer](items []T) int {
	n := LengthSize(len(items))
	for _, item := range items {
		n += item.NumBytes()
	}
	return n
}

// WriteSequence writes the element count followed by each element
func WriteSequence[T Encoder](buf []byte, pos *int, items []T) error {
	if err := WriteLength(buf, pos, len(items)); err != nil {
		return err
	}
	for _, item := range items {
		if err := item.Write(buf, pos); err != nil {
			return err
		}
	}
	return nil
}

// ReadSequence reads a count-prefixed sequence. Every element must encode to
// at least one byte, which bounds the count by the remaining input.
func ReadSequence[T any, PT interface {
	*T
	Decoder
}](buf []byte, pos *int) ([]T, error) {
	n, err := ReadLength(buf, pos, 1)
	if err != nil {
		return nil, err
	}
	ret := make([]T, n)
	for i := range ret {
		if err := PT(&ret[i]).Read(buf, pos); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// StringsSize returns the encoded size of a count-prefixed string sequence
func StringsSize(items []string) int {
	n := LengthSize(len(items))
	for _, item := range items {
		n += StringSize(item)
	}
	return n
}

func WriteStrings(buf []byte, pos *int, items []string) error {
	if err := WriteLength(buf, pos, len(items)); err != nil {
		return err
	}
	for _, item := range items {
		if err := WriteString(buf, pos, item); err != nil {
			return err
		}
	}
	return nil
}

func ReadStrings(buf []byte, pos *int) ([]string, error) {
	n, err := ReadLength(buf, pos, 1)
	if err != nil {
		return nil, err
	}
	ret := make([]string, n)
	for i := range ret {
		if ret[i], err = ReadString(buf, pos); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// Option is a value that may be absent. It encodes as a bool presence flag
// followed by the value when present
type Option[T any] struct {
	Value T
	Valid bool
}

// Some returns a present Option holding v
func Some[T any](v T) Option[T] {
	return Option[T]{Value: v, Valid: true}
}

// None returns an absent Option
func None[T any]() Option[T] {
	return Option[T]{}
}

func OptionSize[T Sizer](o Option[T]) int {
	if !o.Valid {
		return BoolSize
	}
	return BoolSize + o.Value.NumBytes()
}

func WriteOption[T Encoder](buf []byte, pos *int, o Option[T]) error {
	if err := WriteBool(buf, pos, o.Valid); err != nil {
		return err
	}
	if !o.Valid {
		return nil
	}
	return o.Value.Write(buf, pos)
}

func ReadOption[T any, PT interface {
	*T
	Decoder
}](buf []byte, pos *int) (Option[T], error) {
	var ret Option[T]
	valid, err := ReadBool(buf, pos)
	if err != nil {
		return ret, err
	}
	if !valid {
		return ret, nil
	}
	if err := PT(&ret.Value).Read(buf, pos); err != nil {
		return ret, err
	}
	ret.Valid = true
	return ret, nil
}
