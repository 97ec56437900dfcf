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
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// jsonInt64 accepts either a JSON number or a decimal string, since node
// RPC responses quote 64-bit values. It always marshals as a string
type jsonInt64 int64

func (i *jsonInt64) UnmarshalJSON(data []byte) error {
	data = unquote(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*i = 0
		return nil
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("cannot parse %q as int64: %w", data, err)
	}
	*i = jsonInt64(v)
	return nil
}

func (i jsonInt64) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(strconv.FormatInt(int64(i), 10))), nil
}

// jsonFloat64 is the float counterpart of jsonInt64
type jsonFloat64 float64

func (f *jsonFloat64) UnmarshalJSON(data []byte) error {
	data = unquote(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("cannot parse %q as float64: %w", data, err)
	}
	*f = jsonFloat64(v)
	return nil
}

func (f jsonFloat64) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(strconv.FormatFloat(float64(f), 'f', -1, 64))), nil
}

// jsonUint8 accepts a JSON number or a decimal string
type jsonUint8 uint8

func (u *jsonUint8) UnmarshalJSON(data []byte) error {
	data = unquote(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*u = 0
		return nil
	}
	v, err := strconv.ParseUint(string(data), 10, 8)
	if err != nil {
		return fmt.Errorf("cannot parse %q as uint8: %w", data, err)
	}
	*u = jsonUint8(v)
	return nil
}

func unquote(data []byte) []byte {
	data = bytes.TrimSpace(data)
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		return data[1 : len(data)-1]
	}
	return data
}

var _ json.Unmarshaler = (*jsonInt64)(nil)
