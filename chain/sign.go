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

	"github.com/blinklabs-io/goiost/keys"
)

// Sign is a block producer's signature over a header hash
type Sign struct {
	Algorithm uint8
	// Sig is the base64 encoded signature
	Sig string
	// PubKey is informational. Verification always uses the header witness
	PubKey string
}

// SigningAlgorithm resolves the algorithm tag. Tag 0 is treated as Ed25519,
// which is what witnesses sign with
func (s Sign) SigningAlgorithm() (keys.Algorithm, error) {
	if s.Algorithm == 0 {
		return keys.AlgorithmEd25519, nil
	}
	return keys.AlgorithmFromTag(s.Algorithm)
}

// SignHead signs the header hash with kp
func SignHead(h *Head, kp *keys.KeyPair) (Sign, error) {
	sig, err := kp.Sign(h.Hash())
	if err != nil {
		return Sign{}, err
	}
	return Sign{
		Algorithm: uint8(kp.Algorithm),
		Sig:       keys.EncodeBase64(sig),
		PubKey:    keys.EncodeBase64(kp.Public),
	}, nil
}

type signJSON struct {
	Algorithm jsonUint8 `json:"algorithm"`
	Sig       string    `json:"sig"`
	PubKey    string    `json:"pub_key"`
}

func (s *Sign) UnmarshalJSON(data []byte) error {
	var tmp signJSON
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	s.Algorithm = uint8(tmp.Algorithm)
	s.Sig = tmp.Sig
	s.PubKey = tmp.PubKey
	return nil
}

func (s Sign) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Algorithm uint8  `json:"algorithm"`
		Sig       string `json:"sig"`
		PubKey    string `json:"pub_key"`
	}{s.Algorithm, s.Sig, s.PubKey})
}
