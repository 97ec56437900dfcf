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

	"github.com/blinklabs-io/goiost/codec"
	"github.com/blinklabs-io/goiost/keys"
)

// Action is a single contract call inside a transaction
type Action struct {
	Contract   string
	ActionName string
	Data       string
}

func NewAction(contract string, actionName string, data string) Action {
	return Action{Contract: contract, ActionName: actionName, Data: data}
}

// NewTransferAction builds a token.iost transfer of amount IOST
func NewTransferAction(from, to, amount, memo string) (Action, error) {
	data, err := json.Marshal([]string{"iost", from, to, amount, memo})
	if err != nil {
		return Action{}, err
	}
	return NewAction("token.iost", "transfer", string(data)), nil
}

func (a Action) NumBytes() int {
	return codec.StringSize(a.Contract) +
		codec.StringSize(a.ActionName) +
		codec.StringSize(a.Data)
}

func (a Action) Write(buf []byte, pos *int) error {
	for _, s := range []string{a.Contract, a.ActionName, a.Data} {
		if err := codec.WriteString(buf, pos, s); err != nil {
			return err
		}
	}
	return nil
}

func (a *Action) Read(buf []byte, pos *int) error {
	for _, dst := range []*string{&a.Contract, &a.ActionName, &a.Data} {
		var err error
		if *dst, err = codec.ReadString(buf, pos); err != nil {
			return err
		}
	}
	return nil
}

func (a *Action) UnmarshalJSON(data []byte) error {
	var tmp struct {
		Contract      string `json:"contract"`
		ActionName    string `json:"actionName"`
		ActionNameAlt string `json:"action_name"`
		Data          string `json:"data"`
	}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	a.Contract = tmp.Contract
	a.ActionName = tmp.ActionName
	if a.ActionName == "" {
		a.ActionName = tmp.ActionNameAlt
	}
	a.Data = tmp.Data
	return nil
}

func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Contract   string `json:"contract"`
		ActionName string `json:"actionName"`
		Data       string `json:"data"`
	}{a.Contract, a.ActionName, a.Data})
}

func (a Action) String() string {
	return fmt.Sprintf("%s/%s(%s)", a.Contract, a.ActionName, a.Data)
}

// AmountLimit caps how much of a token a transaction may spend
type AmountLimit struct {
	Token string `json:"token"`
	Value string `json:"value"`
}

// UnlimitedAmount allows any token in any amount
var UnlimitedAmount = AmountLimit{Token: "*", Value: "unlimited"}

func (l AmountLimit) NumBytes() int {
	return codec.StringSize(l.Token) + codec.StringSize(l.Value)
}

func (l AmountLimit) Write(buf []byte, pos *int) error {
	if err := codec.WriteString(buf, pos, l.Token); err != nil {
		return err
	}
	return codec.WriteString(buf, pos, l.Value)
}

func (l *AmountLimit) Read(buf []byte, pos *int) error {
	var err error
	if l.Token, err = codec.ReadString(buf, pos); err != nil {
		return err
	}
	l.Value, err = codec.ReadString(buf, pos)
	return err
}

// Signature is a transaction signature. Signature and PublicKey are base64
// encoded, Algorithm is an algorithm name such as "ED25519"
type Signature struct {
	Algorithm string `json:"algorithm"`
	Signature string `json:"signature"`
	PublicKey string `json:"public_key"`
}

// UnmarshalJSON also accepts the block signature layout, where the
// algorithm is a numeric tag and the fields are named sig and pub_key
func (s *Signature) UnmarshalJSON(data []byte) error {
	var tmp struct {
		Algorithm json.RawMessage `json:"algorithm"`
		Signature string          `json:"signature"`
		Sig       string          `json:"sig"`
		PublicKey string          `json:"public_key"`
		PubKey    string          `json:"pub_key"`
	}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*s = Signature{
		Signature: tmp.Signature,
		PublicKey: tmp.PublicKey,
	}
	if s.Signature == "" {
		s.Signature = tmp.Sig
	}
	if s.PublicKey == "" {
		s.PublicKey = tmp.PubKey
	}
	if len(tmp.Algorithm) == 0 {
		return nil
	}
	if err := json.Unmarshal(tmp.Algorithm, &s.Algorithm); err == nil {
		return nil
	}
	var tag jsonUint8
	if err := json.Unmarshal(tmp.Algorithm, &tag); err != nil {
		return fmt.Errorf("signature algorithm: %w", err)
	}
	alg, err := keys.AlgorithmFromTag(uint8(tag))
	if err != nil {
		return err
	}
	s.Algorithm = alg.String()
	return nil
}

// SignSignature signs message with kp
func SignSignature(message []byte, kp *keys.KeyPair) (Signature, error) {
	sig, err := kp.Sign(message)
	if err != nil {
		return Signature{}, err
	}
	return Signature{
		Algorithm: kp.Algorithm.String(),
		Signature: keys.EncodeBase64(sig),
		PublicKey: keys.EncodeBase64(kp.Public),
	}, nil
}

// Verify reports whether s is a valid signature over message. Malformed
// fields are returned as errors
func (s Signature) Verify(message []byte) (bool, error) {
	alg, err := keys.ParseAlgorithm(s.Algorithm)
	if err != nil {
		return false, err
	}
	pub, err := keys.DecodeBase64(s.PublicKey)
	if err != nil {
		return false, fmt.Errorf("public key: %w: %w", ErrInvalidSignatureEncoding, err)
	}
	sig, err := keys.DecodeBase64(s.Signature)
	if err != nil {
		return false, fmt.Errorf("signature: %w: %w", ErrInvalidSignatureEncoding, err)
	}
	return keys.Verify(alg, message, pub, sig)
}

func (s Signature) NumBytes() int {
	return codec.StringSize(s.Algorithm) +
		codec.StringSize(s.Signature) +
		codec.StringSize(s.PublicKey)
}

func (s Signature) Write(buf []byte, pos *int) error {
	for _, v := range []string{s.Algorithm, s.Signature, s.PublicKey} {
		if err := codec.WriteString(buf, pos, v); err != nil {
			return err
		}
	}
	return nil
}

func (s *Signature) Read(buf []byte, pos *int) error {
	for _, dst := range []*string{&s.Algorithm, &s.Signature, &s.PublicKey} {
		var err error
		if *dst, err = codec.ReadString(buf, pos); err != nil {
			return err
		}
	}
	return nil
}
