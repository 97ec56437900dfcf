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
	"errors"

	"github.com/blinklabs-io/goiost/codec"
)

var ErrBlockHashMismatch = errors.New("block hash does not match header")

// BlockHead is a header and its producer signature flattened into one
// record, for when blocks travel without transactions. Hash is optional and
// checked against the header when set
type BlockHead struct {
	Version             int64
	ParentHash          []byte
	TxMerkleHash        []byte
	TxReceiptMerkleHash []byte
	Info                []byte
	Number              int64
	Witness             string
	Time                int64
	Hash                []byte
	Algorithm           uint8
	Sig                 string
	PubKey              string
}

// NewBlockHead flattens the header and signature of b
func NewBlockHead(b *Block) BlockHead {
	return BlockHead{
		Version:             b.Head.Version,
		ParentHash:          b.Head.ParentHash,
		TxMerkleHash:        b.Head.TxMerkleHash,
		TxReceiptMerkleHash: b.Head.TxReceiptMerkleHash,
		Info:                b.Head.Info,
		Number:              b.Head.Number,
		Witness:             b.Head.Witness,
		Time:                b.Head.Time,
		Hash:                b.Hash(),
		Algorithm:           b.Sign.Algorithm,
		Sig:                 b.Sign.Sig,
		PubKey:              b.Sign.PubKey,
	}
}

func (bh *BlockHead) Head() Head {
	return Head{
		Version:             bh.Version,
		ParentHash:          bh.ParentHash,
		TxMerkleHash:        bh.TxMerkleHash,
		TxReceiptMerkleHash: bh.TxReceiptMerkleHash,
		Info:                bh.Info,
		Number:              bh.Number,
		Witness:             bh.Witness,
		Time:                bh.Time,
	}
}

func (bh *BlockHead) Sign() Sign {
	return Sign{
		Algorithm: bh.Algorithm,
		Sig:       bh.Sig,
		PubKey:    bh.PubKey,
	}
}

// VerifySelf checks the producer signature against the header witness
func (bh *BlockHead) VerifySelf() error {
	head := bh.Head()
	if len(bh.Hash) > 0 && !bytes.Equal(bh.Hash, head.Hash()) {
		return BlockVerifyError{
			Number:    bh.Number,
			Signature: bh.Sig,
			Err:       ErrBlockHashMismatch,
		}
	}
	if err := head.Verify(bh.Sign()); err != nil {
		return BlockVerifyError{
			Number:    bh.Number,
			Signature: bh.Sig,
			Err:       err,
		}
	}
	return nil
}

func (bh *BlockHead) NumBytes() int {
	head := bh.Head()
	return head.NumBytes() +
		codec.BytesSize(bh.Hash) +
		codec.Uint8Size +
		codec.StringSize(bh.Sig) +
		codec.StringSize(bh.PubKey)
}

func (bh *BlockHead) Write(buf []byte, pos *int) error {
	head := bh.Head()
	if err := head.Write(buf, pos); err != nil {
		return err
	}
	if err := codec.WriteBytes(buf, pos, bh.Hash); err != nil {
		return err
	}
	if err := codec.WriteUint8(buf, pos, bh.Algorithm); err != nil {
		return err
	}
	if err := codec.WriteString(buf, pos, bh.Sig); err != nil {
		return err
	}
	return codec.WriteString(buf, pos, bh.PubKey)
}

func (bh *BlockHead) Read(buf []byte, pos *int) error {
	var head Head
	if err := head.Read(buf, pos); err != nil {
		return err
	}
	var err error
	if bh.Hash, err = codec.ReadBytes(buf, pos); err != nil {
		return err
	}
	if bh.Algorithm, err = codec.ReadUint8(buf, pos); err != nil {
		return err
	}
	if bh.Sig, err = codec.ReadString(buf, pos); err != nil {
		return err
	}
	if bh.PubKey, err = codec.ReadString(buf, pos); err != nil {
		return err
	}
	bh.Version = head.Version
	bh.ParentHash = head.ParentHash
	bh.TxMerkleHash = head.TxMerkleHash
	bh.TxReceiptMerkleHash = head.TxReceiptMerkleHash
	bh.Info = head.Info
	bh.Number = head.Number
	bh.Witness = head.Witness
	bh.Time = head.Time
	return nil
}
