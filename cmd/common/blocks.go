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

package common

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/blinklabs-io/goiost/chain"
)

var ErrNoBlocks = errors.New("no blocks in file")

// ReadBlocks reads a JSON file holding either a single block or an array of
// blocks in node RPC layout
func ReadBlocks(path string) ([]*chain.Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	blocks, err := ParseBlocks(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return blocks, nil
}

func ParseBlocks(data []byte) ([]*chain.Block, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrNoBlocks
	}
	if data[0] != '[' {
		b, err := chain.NewBlockFromJSON(data)
		if err != nil {
			return nil, err
		}
		return []*chain.Block{b}, nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode block list: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrNoBlocks
	}
	ret := make([]*chain.Block, 0, len(raw))
	for i, item := range raw {
		b, err := chain.NewBlockFromJSON(item)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		ret = append(ret, b)
	}
	return ret, nil
}
