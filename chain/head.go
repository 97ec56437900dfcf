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

// Package chain models IOST block headers, blocks, receipts and
// transactions together with their canonical encodings and signatures.
package chain

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/blinklabs-io/goiost/codec"
	"github.com/blinklabs-io/goiost/keys"
)

// Head is a block header. Its canonical encoding is the field order below
type Head struct {
	Version             int64
	ParentHash          []byte
	TxMerkleHash        []byte
	TxReceiptMerkleHash []byte
	Info                []byte
	Number              int64
	Witness             string
	Time                int64
}

func (h *Head) NumBytes() int {
	return codec.Int64Size +
		codec.BytesSize(h.ParentHash) +
		codec.BytesSize(h.TxMerkleHash) +
		codec.BytesSize(h.TxReceiptMerkleHash) +
		codec.BytesSize(h.Info) +
		codec.Int64Size +
		codec.StringSize(h.Witness) +
		codec.Int64Size
}

func (h *Head) Write(buf []byte, pos *int) error {
	if err := codec.WriteInt64(buf, pos, h.Version); err != nil {
		return err
	}
	for _, b := range [][]byte{h.ParentHash, h.TxMerkleHash, h.TxReceiptMerkleHash, h.Info} {
		if err := codec.WriteBytes(buf, pos, b); err != nil {
			return err
		}
	}
	if err := codec.WriteInt64(buf, pos, h.Number); err != nil {
		return err
	}
	if err := codec.WriteString(buf, pos, h.Witness); err != nil {
		return err
	}
	return codec.WriteInt64(buf, pos, h.Time)
}

func (h *Head) Read(buf []byte, pos *int) error {
	var err error
	if h.Version, err = codec.ReadInt64(buf, pos); err != nil {
		return err
	}
	for _, dst := range []*[]byte{&h.ParentHash, &h.TxMerkleHash, &h.TxReceiptMerkleHash, &h.Info} {
		if *dst, err = codec.ReadBytes(buf, pos); err != nil {
			return err
		}
	}
	if h.Number, err = codec.ReadInt64(buf, pos); err != nil {
		return err
	}
	if h.Witness, err = codec.ReadString(buf, pos); err != nil {
		return err
	}
	h.Time, err = codec.ReadInt64(buf, pos)
	return err
}

// Bytes returns the canonical encoding that block producers sign
func (h *Head) Bytes() []byte {
	// Marshal can only fail if NumBytes and Write disagree
	data, err := codec.Marshal(h)
	if err != nil {
		panic(fmt.Sprintf("chain: encoding head: %s", err))
	}
	return data
}

// Hash returns the SHA3-256 digest of the canonical header bytes
func (h *Head) Hash() []byte {
	return keys.Hash(h.Bytes())
}

// Verify checks that sign is a valid signature over the header hash by the
// key named in Witness
func (h *Head) Verify(sign Sign) error {
	alg, err := sign.SigningAlgorithm()
	if err != nil {
		return err
	}
	pub, err := keys.DecodeBase58(h.Witness)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidWitness, h.Witness, err)
	}
	sig, err := keys.DecodeBase64(sign.Sig)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSignatureEncoding, err)
	}
	ok, err := keys.Verify(alg, h.Hash(), pub, sig)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSignatureMismatch
	}
	return nil
}

type headJSON struct {
	Version             jsonInt64 `json:"version"`
	ParentHash          []byte    `json:"parent_hash"`
	TxMerkleHash        []byte    `json:"tx_merkle_hash"`
	TxReceiptMerkleHash []byte    `json:"tx_receipt_merkle_hash"`
	Info                []byte    `json:"info"`
	Number              jsonInt64 `json:"number"`
	Witness             string    `json:"witness"`
	Time                jsonInt64 `json:"time"`
}

func (h *Head) UnmarshalJSON(data []byte) error {
	var tmp headJSON
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*h = Head{
		Version:             int64(tmp.Version),
		ParentHash:          tmp.ParentHash,
		TxMerkleHash:        tmp.TxMerkleHash,
		TxReceiptMerkleHash: tmp.TxReceiptMerkleHash,
		Info:                tmp.Info,
		Number:              int64(tmp.Number),
		Witness:             tmp.Witness,
		Time:                int64(tmp.Time),
	}
	return nil
}

func (h Head) MarshalJSON() ([]byte, error) {
	return json.Marshal(headJSON{
		Version:             jsonInt64(h.Version),
		ParentHash:          h.ParentHash,
		TxMerkleHash:        h.TxMerkleHash,
		TxReceiptMerkleHash: h.TxReceiptMerkleHash,
		Info:                h.Info,
		Number:              jsonInt64(h.Number),
		Witness:             h.Witness,
		Time:                jsonInt64(h.Time),
	})
}

func (h *Head) String() string {
	return "Head<number=" + strconv.FormatInt(h.Number, 10) + ", witness=" + h.Witness + ">"
}
