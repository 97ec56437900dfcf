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
	"time"

	"github.com/blinklabs-io/goiost/codec"
	"github.com/blinklabs-io/goiost/keys"
)

const (
	DefaultGasRatio = 1.0
	DefaultGasLimit = 1000000.0
)

// Tx is an IOST transaction
type Tx struct {
	// Time and Expiration are Unix nanoseconds
	Time       int64
	Expiration int64
	GasRatio   float64
	GasLimit   float64
	// Delay is in nanoseconds. Zero for non-deferred transactions
	Delay         int64
	ChainID       uint32
	Actions       []Action
	AmountLimit   []AmountLimit
	Publisher     string
	PublisherSigs []Signature
	Signers       []string
	Signatures    []Signature
}

// NewTx returns an unsigned transaction created at now and expiring after
// expiry, with default gas settings and no amount limit
func NewTx(actions []Action, chainID uint32, now time.Time, expiry time.Duration) *Tx {
	return &Tx{
		Time:        now.UnixNano(),
		Expiration:  now.Add(expiry).UnixNano(),
		GasRatio:    DefaultGasRatio,
		GasLimit:    DefaultGasLimit,
		ChainID:     chainID,
		Actions:     actions,
		AmountLimit: []AmountLimit{UnlimitedAmount},
	}
}

// Bytes returns the encoding that signatures are computed over: time,
// expiration, gas ratio and gas limit scaled by 100, delay, chain ID, the
// empty referred transaction, signers, actions and amount limits. Signers
// sign the encoding without signatures, the publisher signs it with them
func (t *Tx) Bytes(withSign bool) []byte {
	var e signingEncoder
	e.writeInt64(t.Time)
	e.writeInt64(t.Expiration)
	e.writeInt64(int64(t.GasRatio * 100))
	e.writeInt64(int64(t.GasLimit * 100))
	e.writeInt64(t.Delay)
	// #nosec G115 -- chain IDs are signed as int32
	e.writeInt32(int32(t.ChainID))
	// referred tx, always empty
	e.writeBytes(nil)
	e.writeStrings(t.Signers)
	writeItems(&e, t.Actions, Action.signingBytes)
	writeItems(&e, t.AmountLimit, AmountLimit.signingBytes)
	if withSign {
		writeItems(&e, t.Signatures, Signature.signingBytes)
	}
	return e.buf
}

// SignerDigest is the message signers sign
func (t *Tx) SignerDigest() []byte {
	return keys.Hash(t.Bytes(false))
}

// PublisherDigest is the message the publisher signs
func (t *Tx) PublisherDigest() []byte {
	return keys.Hash(t.Bytes(true))
}

// Hash identifies the transaction by its full canonical encoding, including
// publisher signatures
func (t *Tx) Hash() []byte {
	data, err := codec.Marshal(t)
	if err != nil {
		panic(fmt.Sprintf("chain: encoding tx: %s", err))
	}
	return keys.Hash(data)
}

// AddSignature appends a signer signature. Signers must be final before
// signatures are added
func (t *Tx) AddSignature(kp *keys.KeyPair) error {
	sig, err := SignSignature(t.SignerDigest(), kp)
	if err != nil {
		return err
	}
	t.Signatures = append(t.Signatures, sig)
	return nil
}

// Sign sets the publisher and appends a publisher signature. It must be
// called after all signer signatures have been added
func (t *Tx) Sign(publisher string, kp *keys.KeyPair) error {
	t.Publisher = publisher
	sig, err := SignSignature(t.PublisherDigest(), kp)
	if err != nil {
		return err
	}
	t.PublisherSigs = append(t.PublisherSigs, sig)
	return nil
}

// Verify checks every signer and publisher signature
func (t *Tx) Verify() error {
	if len(t.Signatures) > 0 {
		digest := t.SignerDigest()
		for i, sig := range t.Signatures {
			ok, err := sig.Verify(digest)
			if err != nil {
				return fmt.Errorf("%w %d: %w", ErrInvalidSignature, i, err)
			}
			if !ok {
				return fmt.Errorf("%w %d", ErrInvalidSignature, i)
			}
		}
	}
	if len(t.PublisherSigs) > 0 {
		digest := t.PublisherDigest()
		for i, sig := range t.PublisherSigs {
			ok, err := sig.Verify(digest)
			if err != nil {
				return fmt.Errorf("%w %d: %w", ErrInvalidPublisherSignature, i, err)
			}
			if !ok {
				return fmt.Errorf("%w %d", ErrInvalidPublisherSignature, i)
			}
		}
	}
	return nil
}

func (t *Tx) NumBytes() int {
	return 3*codec.Int64Size + 2*codec.Float64Size + codec.Uint32Size +
		codec.SequenceSize(t.Actions) +
		codec.SequenceSize(t.AmountLimit) +
		codec.StringSize(t.Publisher) +
		codec.SequenceSize(t.PublisherSigs) +
		codec.StringsSize(t.Signers) +
		codec.SequenceSize(t.Signatures)
}

func (t *Tx) Write(buf []byte, pos *int) error {
	if err := codec.WriteInt64(buf, pos, t.Time); err != nil {
		return err
	}
	if err := codec.WriteInt64(buf, pos, t.Expiration); err != nil {
		return err
	}
	if err := codec.WriteFloat64(buf, pos, t.GasRatio); err != nil {
		return err
	}
	if err := codec.WriteFloat64(buf, pos, t.GasLimit); err != nil {
		return err
	}
	if err := codec.WriteInt64(buf, pos, t.Delay); err != nil {
		return err
	}
	if err := codec.WriteUint32(buf, pos, t.ChainID); err != nil {
		return err
	}
	if err := codec.WriteSequence(buf, pos, t.Actions); err != nil {
		return err
	}
	if err := codec.WriteSequence(buf, pos, t.AmountLimit); err != nil {
		return err
	}
	if err := codec.WriteString(buf, pos, t.Publisher); err != nil {
		return err
	}
	if err := codec.WriteSequence(buf, pos, t.PublisherSigs); err != nil {
		return err
	}
	if err := codec.WriteStrings(buf, pos, t.Signers); err != nil {
		return err
	}
	return codec.WriteSequence(buf, pos, t.Signatures)
}

func (t *Tx) Read(buf []byte, pos *int) error {
	var err error
	if t.Time, err = codec.ReadInt64(buf, pos); err != nil {
		return err
	}
	if t.Expiration, err = codec.ReadInt64(buf, pos); err != nil {
		return err
	}
	if t.GasRatio, err = codec.ReadFloat64(buf, pos); err != nil {
		return err
	}
	if t.GasLimit, err = codec.ReadFloat64(buf, pos); err != nil {
		return err
	}
	if t.Delay, err = codec.ReadInt64(buf, pos); err != nil {
		return err
	}
	if t.ChainID, err = codec.ReadUint32(buf, pos); err != nil {
		return err
	}
	if t.Actions, err = codec.ReadSequence[Action](buf, pos); err != nil {
		return err
	}
	if t.AmountLimit, err = codec.ReadSequence[AmountLimit](buf, pos); err != nil {
		return err
	}
	if t.Publisher, err = codec.ReadString(buf, pos); err != nil {
		return err
	}
	if t.PublisherSigs, err = codec.ReadSequence[Signature](buf, pos); err != nil {
		return err
	}
	if t.Signers, err = codec.ReadStrings(buf, pos); err != nil {
		return err
	}
	t.Signatures, err = codec.ReadSequence[Signature](buf, pos)
	return err
}

type txJSON struct {
	Time          jsonInt64     `json:"time"`
	Expiration    jsonInt64     `json:"expiration"`
	GasRatio      jsonFloat64   `json:"gasRatio"`
	GasLimit      jsonFloat64   `json:"gasLimit"`
	Delay         jsonInt64     `json:"delay"`
	ChainID       uint32        `json:"chain_id"`
	Actions       []Action      `json:"actions"`
	AmountLimit   []AmountLimit `json:"amountLimit"`
	Publisher     string        `json:"publisher"`
	PublisherSigs []Signature   `json:"publishSigns"`
	Signers       []string      `json:"signers"`
	Signatures    []Signature   `json:"signatures"`
}

func (t *Tx) UnmarshalJSON(data []byte) error {
	var tmp txJSON
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*t = Tx{
		Time:          int64(tmp.Time),
		Expiration:    int64(tmp.Expiration),
		GasRatio:      float64(tmp.GasRatio),
		GasLimit:      float64(tmp.GasLimit),
		Delay:         int64(tmp.Delay),
		ChainID:       tmp.ChainID,
		Actions:       tmp.Actions,
		AmountLimit:   tmp.AmountLimit,
		Publisher:     tmp.Publisher,
		PublisherSigs: tmp.PublisherSigs,
		Signers:       tmp.Signers,
		Signatures:    tmp.Signatures,
	}
	return nil
}

func (t Tx) MarshalJSON() ([]byte, error) {
	return json.Marshal(txJSON{
		Time:          jsonInt64(t.Time),
		Expiration:    jsonInt64(t.Expiration),
		GasRatio:      jsonFloat64(t.GasRatio),
		GasLimit:      jsonFloat64(t.GasLimit),
		Delay:         jsonInt64(t.Delay),
		ChainID:       t.ChainID,
		Actions:       t.Actions,
		AmountLimit:   t.AmountLimit,
		Publisher:     t.Publisher,
		PublisherSigs: t.PublisherSigs,
		Signers:       t.Signers,
		Signatures:    t.Signatures,
	})
}
