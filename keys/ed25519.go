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
	"bytes"
	"crypto/ed25519"
	"fmt"

	"filippo.io/edwards25519"
)

const (
	Ed25519SeedSize      = ed25519.SeedSize
	Ed25519SecretKeySize = ed25519.PrivateKeySize
	Ed25519PublicKeySize = ed25519.PublicKeySize
	Ed25519SignatureSize = ed25519.SignatureSize
)

// ed25519PrivateKey accepts either a 32-byte seed or the 64-byte seed || public
// key form used by IOST wallets. For the latter, the embedded public key must
// match the one derived from the seed.
func ed25519PrivateKey(secret []byte) (ed25519.PrivateKey, error) {
	switch len(secret) {
	case Ed25519SeedSize:
		return ed25519.NewKeyFromSeed(secret), nil
	case Ed25519SecretKeySize:
		key := ed25519.NewKeyFromSeed(secret[:Ed25519SeedSize])
		if !bytes.Equal(key[Ed25519SeedSize:], secret[Ed25519SeedSize:]) {
			return nil, fmt.Errorf(
				"%w: ed25519 public half does not match seed",
				ErrInvalidSecretKey,
			)
		}
		return key, nil
	default:
		return nil, fmt.Errorf(
			"%w: ed25519 secret key must be %d or %d bytes, got %d",
			ErrInvalidSecretKey,
			Ed25519SeedSize,
			Ed25519SecretKeySize,
			len(secret),
		)
	}
}

func signEd25519(message []byte, secret []byte) ([]byte, error) {
	key, err := ed25519PrivateKey(secret)
	if err != nil {
		return nil, err
	}
	return ed25519.Sign(key, message), nil
}

func verifyEd25519(
	message []byte,
	publicKey []byte,
	signature []byte,
) (bool, error) {
	if len(publicKey) != Ed25519PublicKeySize {
		return false, fmt.Errorf(
			"%w: ed25519 public key must be %d bytes, got %d",
			ErrInvalidPublicKey,
			Ed25519PublicKeySize,
			len(publicKey),
		)
	}
	if len(signature) != Ed25519SignatureSize {
		return false, fmt.Errorf(
			"%w: ed25519 signature must be %d bytes, got %d",
			ErrInvalidSignature,
			Ed25519SignatureSize,
			len(signature),
		)
	}
	// Reject encodings that are not points on the curve
	if _, err := new(edwards25519.Point).SetBytes(publicKey); err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}
	return ed25519.Verify(publicKey, message, signature), nil
}

func publicKeyEd25519(secret []byte) ([]byte, error) {
	key, err := ed25519PrivateKey(secret)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(key[Ed25519SeedSize:]), nil
}
