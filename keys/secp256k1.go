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
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

const (
	Secp256k1SecretKeySize = 32
	// Compressed SEC1 encoding
	Secp256k1PublicKeySize = 33
	// Compact R || S encoding
	Secp256k1SignatureSize = 64
	// secp256k1 signs a precomputed 32-byte digest
	Secp256k1DigestSize = 32
)

func secp256k1PrivateKey(secret []byte) (*secp256k1.PrivateKey, error) {
	if len(secret) != Secp256k1SecretKeySize {
		return nil, fmt.Errorf(
			"%w: secp256k1 secret key must be %d bytes, got %d",
			ErrInvalidSecretKey,
			Secp256k1SecretKeySize,
			len(secret),
		)
	}
	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(secret); overflow || scalar.IsZero() {
		return nil, fmt.Errorf(
			"%w: secp256k1 secret key out of range",
			ErrInvalidSecretKey,
		)
	}
	return secp256k1.NewPrivateKey(&scalar), nil
}

func checkSecp256k1Digest(digest []byte) error {
	if len(digest) != Secp256k1DigestSize {
		return fmt.Errorf(
			"%w: secp256k1 digest must be %d bytes, got %d",
			ErrInvalidDigest,
			Secp256k1DigestSize,
			len(digest),
		)
	}
	return nil
}

func signSecp256k1(digest []byte, secret []byte) ([]byte, error) {
	if err := checkSecp256k1Digest(digest); err != nil {
		return nil, err
	}
	key, err := secp256k1PrivateKey(secret)
	if err != nil {
		return nil, err
	}
	// The compact form carries a leading recovery byte which is not part of
	// the on-chain signature
	compact := ecdsa.SignCompact(key, digest, true)
	return compact[1:], nil
}

func verifySecp256k1(
	digest []byte,
	publicKey []byte,
	signature []byte,
) (bool, error) {
	if err := checkSecp256k1Digest(digest); err != nil {
		return false, err
	}
	if len(publicKey) != Secp256k1PublicKeySize {
		return false, fmt.Errorf(
			"%w: secp256k1 public key must be %d bytes, got %d",
			ErrInvalidPublicKey,
			Secp256k1PublicKeySize,
			len(publicKey),
		)
	}
	if len(signature) != Secp256k1SignatureSize {
		return false, fmt.Errorf(
			"%w: secp256k1 signature must be %d bytes, got %d",
			ErrInvalidSignature,
			Secp256k1SignatureSize,
			len(signature),
		)
	}
	pubKey, err := secp256k1.ParsePubKey(publicKey)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}
	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(signature[:32]); overflow || r.IsZero() {
		return false, fmt.Errorf("%w: R out of range", ErrInvalidSignature)
	}
	if overflow := s.SetByteSlice(signature[32:]); overflow || s.IsZero() {
		return false, fmt.Errorf("%w: S out of range", ErrInvalidSignature)
	}
	return ecdsa.NewSignature(&r, &s).Verify(digest, pubKey), nil
}

func publicKeySecp256k1(secret []byte) ([]byte, error) {
	key, err := secp256k1PrivateKey(secret)
	if err != nil {
		return nil, err
	}
	return key.PubKey().SerializeCompressed(), nil
}
