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

package keys

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcutil/base58"
	"golang.org/x/crypto/sha3"
)

var ErrInvalidBase58 = errors.New("invalid base58 string")

// KeyPair holds a secret key together with its derived public key
type KeyPair struct {
	Algorithm Algorithm
	Secret    []byte
	Public    []byte
}

// NewKeyPair derives the public key for secret
func NewKeyPair(alg Algorithm, secret []byte) (*KeyPair, error) {
	pub, err := PublicKey(alg, secret)
	if err != nil {
		return nil, err
	}
	return &KeyPair{
		Algorithm: alg,
		Secret:    append([]byte(nil), secret...),
		Public:    pub,
	}, nil
}

// NewKeyPairFromBase58 decodes a base58 secret key, as exported by IOST wallets
func NewKeyPairFromBase58(alg Algorithm, secret string) (*KeyPair, error) {
	raw, err := DecodeBase58(secret)
	if err != nil {
		return nil, err
	}
	return NewKeyPair(alg, raw)
}

// GenerateKey creates a new key pair using entropy from r. When r is nil,
// crypto/rand is used.
func GenerateKey(alg Algorithm, r io.Reader) (*KeyPair, error) {
	if r == nil {
		r = rand.Reader
	}
	var size int
	switch alg {
	case AlgorithmSecp256k1:
		size = Secp256k1SecretKeySize
	case AlgorithmEd25519:
		size = Ed25519SeedSize
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, alg)
	}
	// A secp256k1 draw is out of range with negligible probability; retry a
	// bounded number of times rather than looping forever on a broken reader
	for range 8 {
		secret := make([]byte, size)
		if _, err := io.ReadFull(r, secret); err != nil {
			return nil, fmt.Errorf("failed to read key entropy: %w", err)
		}
		kp, err := NewKeyPair(alg, secret)
		if errors.Is(err, ErrInvalidSecretKey) {
			continue
		}
		return kp, err
	}
	return nil, fmt.Errorf("%w: entropy source produced no valid key", ErrInvalidSecretKey)
}

// Sign signs message with the pair's secret key
func (k *KeyPair) Sign(message []byte) ([]byte, error) {
	return Sign(k.Algorithm, message, k.Secret)
}

// Verify checks signature over message against the pair's public key
func (k *KeyPair) Verify(message []byte, signature []byte) (bool, error) {
	return Verify(k.Algorithm, message, k.Public, signature)
}

// ID returns the base58 encoding of the public key, which is how block
// producers are identified in headers and producer lists
func (k *KeyPair) ID() string {
	return EncodeBase58(k.Public)
}

// Hash returns the SHA3-256 digest of data
func Hash(data []byte) []byte {
	h := sha3.Sum256(data)
	return h[:]
}

func EncodeBase58(data []byte) string {
	return base58.Encode(data)
}

// DecodeBase58 decodes s, failing on characters outside the bitcoin alphabet
func DecodeBase58(s string) ([]byte, error) {
	if s == "" {
		return []byte{}, nil
	}
	ret := base58.Decode(s)
	if len(ret) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBase58, s)
	}
	return ret, nil
}

func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

func DecodeBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
