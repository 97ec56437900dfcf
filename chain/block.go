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
	"encoding/json"
	"fmt"
)

// Block is a header with its producer signature, transactions and their
// receipts. Txs[i] is paired with Receipts[i]
type Block struct {
	Head          Head        `json:"head"`
	Sign          Sign        `json:"sign"`
	Receipts      []TxReceipt `json:"receipts"`
	Txs           []Tx        `json:"txs"`
	TxHashes      []string    `json:"txHashes"`
	ReceiptHashes []string    `json:"receiptHashes"`
	BlockType     string      `json:"blockType"`
}

// NewBlockFromJSON decodes a block in node RPC layout
func NewBlockFromJSON(data []byte) (*Block, error) {
	var b Block
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode block: %w", err)
	}
	return &b, nil
}

// Hash returns the header hash
func (b *Block) Hash() []byte {
	return b.Head.Hash()
}

// Number returns the block height
func (b *Block) Number() int64 {
	return b.Head.Number
}

// VerifySelf checks the producer signature against the header witness and
// that every transaction has a receipt
func (b *Block) VerifySelf() error {
	if err := b.Head.Verify(b.Sign); err != nil {
		return BlockVerifyError{
			Number:    b.Head.Number,
			Signature: b.Sign.Sig,
			Err:       err,
		}
	}
	if len(b.Txs) != len(b.Receipts) {
		return TxReceiptCountError{
			Number:   b.Head.Number,
			Txs:      len(b.Txs),
			Receipts: len(b.Receipts),
		}
	}
	return nil
}

