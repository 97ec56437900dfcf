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

// Package test provides deterministic keys and block chains for tests
package test

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/blinklabs-io/goiost/chain"
	"github.com/blinklabs-io/goiost/keys"
)

// BlockInterval is the spacing of fixture block timestamps in nanoseconds
const BlockInterval = int64(500_000_000)

// DecodeHexString is a helper function for tests that decodes hex strings. It doesn't return
// an error value, which makes it usable inline.
func DecodeHexString(hexData string) []byte {
	// Strip off any leading/trailing whitespace in hex string
	hexData = strings.TrimSpace(hexData)
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		panic(fmt.Sprintf("error decoding hex: %s", err))
	}
	return decoded
}

// WitnessKeys returns n Ed25519 key pairs derived from label. The same
// label and index always yield the same key
func WitnessKeys(label string, n int) []*keys.KeyPair {
	ret := make([]*keys.KeyPair, n)
	for i := range ret {
		seed := keys.Hash([]byte(label + "/" + strconv.Itoa(i)))
		kp, err := keys.NewKeyPair(keys.AlgorithmEd25519, seed)
		if err != nil {
			panic(fmt.Sprintf("error deriving witness key: %s", err))
		}
		ret[i] = kp
	}
	return ret
}

// WitnessIDs returns the witness identities of kps
func WitnessIDs(kps []*keys.KeyPair) []string {
	ret := make([]string, len(kps))
	for i, kp := range kps {
		ret[i] = kp.ID()
	}
	return ret
}

// NewBlock returns a block at number on top of parentHash, signed by kp
func NewBlock(
	parentHash []byte,
	number int64,
	kp *keys.KeyPair,
	receipts ...chain.TxReceipt,
) *chain.Block {
	b := &chain.Block{
		Head: chain.Head{
			Version:             1,
			ParentHash:          parentHash,
			TxMerkleHash:        keys.Hash([]byte("tx/" + strconv.FormatInt(number, 10))),
			TxReceiptMerkleHash: keys.Hash([]byte("receipt/" + strconv.FormatInt(number, 10))),
			Info:                []byte{},
			Number:              number,
			Witness:             kp.ID(),
			Time:                number * BlockInterval,
		},
		Receipts:  receipts,
		BlockType: "NORMAL",
	}
	// stat receipts come from base transactions; pair each with a tx
	b.Txs = make([]chain.Tx, len(receipts))
	for i := range b.Txs {
		b.Txs[i] = chain.Tx{
			Time:        b.Head.Time,
			Expiration:  b.Head.Time + BlockInterval,
			GasRatio:    chain.DefaultGasRatio,
			GasLimit:    chain.DefaultGasLimit,
			AmountLimit: []chain.AmountLimit{chain.UnlimitedAmount},
		}
	}
	sign, err := chain.SignHead(&b.Head, kp)
	if err != nil {
		panic(fmt.Sprintf("error signing block: %s", err))
	}
	b.Sign = sign
	return b
}

// NewStatBlock returns a block carrying a witness stat receipt that names
// pending as the next producer set
func NewStatBlock(
	parentHash []byte,
	number int64,
	kp *keys.KeyPair,
	pending []string,
) *chain.Block {
	receipt, err := chain.NewWitnessStatReceipt(pending, pending)
	if err != nil {
		panic(fmt.Sprintf("error building stat receipt: %s", err))
	}
	return NewBlock(
		parentHash,
		number,
		kp,
		chain.TxReceipt{
			TxHash:   "base",
			Receipts: []chain.Receipt{receipt},
		},
	)
}

// Follow returns blocks chained on top of parent, one per signer in order
func Follow(parent *chain.Block, signers []*keys.KeyPair) []*chain.Block {
	ret := make([]*chain.Block, 0, len(signers))
	prevHash := parent.Hash()
	prevNumber := parent.Number()
	for _, kp := range signers {
		b := NewBlock(prevHash, prevNumber+1, kp)
		ret = append(ret, b)
		prevHash = b.Hash()
		prevNumber = b.Number()
	}
	return ret
}

// Resign replaces the signature of b after its header has been modified
func Resign(b *chain.Block, kp *keys.KeyPair) {
	b.Head.Witness = kp.ID()
	sign, err := chain.SignHead(&b.Head, kp)
	if err != nil {
		panic(fmt.Sprintf("error signing block: %s", err))
	}
	b.Sign = sign
}
