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

package chain_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/blinklabs-io/goiost/chain"
	"github.com/blinklabs-io/goiost/codec"
	"github.com/blinklabs-io/goiost/internal/test"
	"github.com/blinklabs-io/goiost/keys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadBytesLayout(t *testing.T) {
	h := chain.Head{
		Version:    1,
		ParentHash: []byte{0xaa},
		Number:     1200,
		Witness:    "ab",
	}
	expected := test.DecodeHexString(
		"0100000000000000" + // version
			"01aa" + // parent hash
			"00" + "00" + "00" + // tx merkle, receipt merkle, info
			"b004000000000000" + // number
			"026162" + // witness
			"0000000000000000", // time
	)
	assert.Equal(t, expected, h.Bytes())
	assert.Equal(t, len(expected), h.NumBytes())
}

func TestHeadDeterministic(t *testing.T) {
	kp := test.WitnessKeys("head", 1)[0]
	b := test.NewBlock(keys.Hash([]byte("parent")), 42, kp)
	first := b.Head.Bytes()
	hash := b.Head.Hash()
	for range 5 {
		assert.Equal(t, first, b.Head.Bytes())
		assert.Equal(t, hash, b.Head.Hash())
	}
	assert.Equal(t, keys.Hash(first), hash)
	assert.Len(t, hash, 32)

	// an equal value built separately encodes identically
	clone := b.Head
	clone.ParentHash = append([]byte(nil), b.Head.ParentHash...)
	assert.Equal(t, first, clone.Bytes())
}

func TestHeadCodecRoundTrip(t *testing.T) {
	kp := test.WitnessKeys("head", 1)[0]
	b := test.NewBlock(keys.Hash([]byte("parent")), 2401, kp)
	var decoded chain.Head
	require.NoError(t, codec.Unmarshal(b.Head.Bytes(), &decoded))
	assert.Equal(t, b.Head, decoded)

	// truncated input
	data := b.Head.Bytes()
	err := codec.Unmarshal(data[:len(data)-1], &decoded)
	assert.ErrorIs(t, err, codec.ErrNotEnoughBytes)
}

func TestHeadVerify(t *testing.T) {
	kps := test.WitnessKeys("verify", 2)
	b := test.NewBlock(nil, 7, kps[0])
	require.NoError(t, b.Head.Verify(b.Sign))

	other := b.Head
	other.Witness = kps[1].ID()
	assert.ErrorIs(t, other.Verify(b.Sign), chain.ErrSignatureMismatch)

	other = b.Head
	other.Witness = "0OIl"
	assert.ErrorIs(t, other.Verify(b.Sign), chain.ErrInvalidWitness)

	sign := b.Sign
	sign.Sig = "not base64!"
	assert.ErrorIs(t, b.Head.Verify(sign), chain.ErrInvalidSignatureEncoding)

	sign = b.Sign
	sign.Algorithm = 7
	assert.ErrorIs(t, b.Head.Verify(sign), keys.ErrUnknownAlgorithm)

	// a zero tag is treated as ed25519
	sign = b.Sign
	sign.Algorithm = 0
	assert.NoError(t, b.Head.Verify(sign))
}

func TestHeadVerifySecp256k1(t *testing.T) {
	kp, err := keys.NewKeyPair(keys.AlgorithmSecp256k1, keys.Hash([]byte("secp witness")))
	require.NoError(t, err)
	b := test.NewBlock(nil, 3, kp)
	assert.Equal(t, uint8(keys.AlgorithmSecp256k1), b.Sign.Algorithm)
	require.NoError(t, b.VerifySelf())
}

func TestHeadJSON(t *testing.T) {
	data := []byte(`{
		"version": "1",
		"parent_hash": "qg==",
		"tx_merkle_hash": "",
		"tx_receipt_merkle_hash": null,
		"info": "",
		"number": 1200,
		"witness": "ab",
		"time": "0"
	}`)
	var h chain.Head
	require.NoError(t, json.Unmarshal(data, &h))
	assert.Equal(t, int64(1), h.Version)
	assert.Equal(t, []byte{0xaa}, h.ParentHash)
	assert.Equal(t, int64(1200), h.Number)
	assert.Equal(t, "ab", h.Witness)

	out, err := json.Marshal(h)
	require.NoError(t, err)
	var again chain.Head
	require.NoError(t, json.Unmarshal(out, &again))
	assert.Equal(t, h.Bytes(), again.Bytes())

	err = json.Unmarshal([]byte(`{"number": "12x"}`), &h)
	assert.Error(t, err)
}

func TestSignJSON(t *testing.T) {
	var s chain.Sign
	require.NoError(t, json.Unmarshal([]byte(`{"algorithm":"2","sig":"c2ln","pub_key":"cGs="}`), &s))
	assert.Equal(t, chain.Sign{Algorithm: 2, Sig: "c2ln", PubKey: "cGs="}, s)
	alg, err := s.SigningAlgorithm()
	require.NoError(t, err)
	assert.Equal(t, keys.AlgorithmEd25519, alg)
}

func TestBlockVerifyErrorCarriesSignature(t *testing.T) {
	kp := test.WitnessKeys("err", 1)[0]
	b := test.NewBlock(nil, 10, kp)
	b.Head.Number = 11
	err := b.VerifySelf()
	require.ErrorIs(t, err, chain.ErrBlockVerify)
	var verifyErr chain.BlockVerifyError
	require.True(t, errors.As(err, &verifyErr))
	assert.Equal(t, b.Sign.Sig, verifyErr.Signature)
	assert.Equal(t, int64(11), verifyErr.Number)
	assert.ErrorIs(t, err, chain.ErrSignatureMismatch)
}
