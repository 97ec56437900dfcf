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

// Package keys implements the signature algorithms used by IOST accounts and
// block producers, along with the key and signature encodings used on chain.
package keys

import (
	"errors"
	"fmt"
	"strings"
)

// Algorithm identifies a signature scheme. The numeric values match the
// algorithm tag carried in block and transaction signatures.
type Algorithm uint8

const (
	AlgorithmSecp256k1 Algorithm = 1
	AlgorithmEd25519   Algorithm = 2
)

// Algorithm names as used in transaction signatures
const (
	Secp256k1Name = "SECP256K1"
	Ed25519Name   = "ED25519"
)

var (
	ErrUnknownAlgorithm = errors.New("unknown signature algorithm")
	ErrInvalidPublicKey = errors.New("invalid public key")
	ErrInvalidSecretKey = errors.New("invalid secret key")
	ErrInvalidSignature = errors.New("invalid signature encoding")
	ErrInvalidDigest    = errors.New("invalid message digest")
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmSecp256k1:
		return Secp256k1Name
	case AlgorithmEd25519:
		return Ed25519Name
	default:
		return fmt.Sprintf("Algorithm(%d)", uint8(a))
	}
}

// Valid reports whether a is a supported algorithm
func (a Algorithm) Valid() bool {
	switch a {
	case AlgorithmSecp256k1, AlgorithmEd25519:
		return true
	default:
		return false
	}
}

// ParseAlgorithm returns the algorithm for a name such as "ed25519" or "SECP256K1"
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToUpper(name) {
	case Secp256k1Name:
		return AlgorithmSecp256k1, nil
	case Ed25519Name:
		return AlgorithmEd25519, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// AlgorithmFromTag returns the algorithm for a wire tag
func AlgorithmFromTag(tag uint8) (Algorithm, error) {
	a := Algorithm(tag)
	if !a.Valid() {
		return 0, fmt.Errorf("%w: tag %d", ErrUnknownAlgorithm, tag)
	}
	return a, nil
}

// Sign signs message with secret using the given algorithm
func Sign(alg Algorithm, message []byte, secret []byte) ([]byte, error) {
	switch alg {
	case AlgorithmSecp256k1:
		return signSecp256k1(message, secret)
	case AlgorithmEd25519:
		return signEd25519(message, secret)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, alg)
	}
}

// Verify checks signature over message against publicKey. A well-formed
// signature that does not match returns false with a nil error. Malformed
// keys or signatures return an error.
func Verify(
	alg Algorithm,
	message []byte,
	publicKey []byte,
	signature []byte,
) (bool, error) {
	switch alg {
	case AlgorithmSecp256k1:
		return verifySecp256k1(message, publicKey, signature)
	case AlgorithmEd25519:
		return verifyEd25519(message, publicKey, signature)
	default:
		return false, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, alg)
	}
}

// PublicKey derives the public key for secret
func PublicKey(alg Algorithm, secret []byte) ([]byte, error) {
	switch alg {
	case AlgorithmSecp256k1:
		return publicKeySecp256k1(secret)
	case AlgorithmEd25519:
		return publicKeyEd25519(secret)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, alg)
	}
}
