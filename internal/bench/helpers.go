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

// Package bench provides benchmark fixtures for header verification and
// epoch updates.
package bench

import (
	"fmt"

	"github.com/blinklabs-io/goiost/chain"
	"github.com/blinklabs-io/goiost/internal/test"
	"github.com/blinklabs-io/goiost/keys"
)

// EpochFixture is an epoch boundary block with the chain endorsing it
type EpochFixture struct {
	Name       string
	Algorithm  keys.Algorithm
	Committee  []*keys.KeyPair
	Checkpoint *chain.Block
	Boundary   *chain.Block
	Supporting []*chain.Block
}

// AlgorithmNames returns the names accepted by LoadEpochFixture
func AlgorithmNames() []string {
	return []string{keys.Ed25519Name, keys.Secp256k1Name}
}

// LoadEpochFixture builds a checkpoint at interval announcing a committee of
// size members, and a boundary at 2*interval endorsed by quorum members of
// that committee
func LoadEpochFixture(algorithm string, interval int64, size int, quorum int) (*EpochFixture, error) {
	alg, err := keys.ParseAlgorithm(algorithm)
	if err != nil {
		return nil, err
	}
	if quorum > size {
		return nil, fmt.Errorf("quorum %d exceeds committee size %d", quorum, size)
	}
	committee := make([]*keys.KeyPair, size)
	for i := range committee {
		seed := keys.Hash(fmt.Appendf(nil, "bench/%s/%d", algorithm, i))
		kp, err := keys.NewKeyPair(alg, seed)
		if err != nil {
			return nil, err
		}
		committee[i] = kp
	}
	ids := test.WitnessIDs(committee)
	checkpoint := test.NewStatBlock(nil, interval, committee[0], ids)
	boundary := test.NewStatBlock(
		keys.Hash([]byte("bench-parent")),
		2*interval,
		committee[0],
		ids,
	)
	return &EpochFixture{
		Name:       algorithm,
		Algorithm:  alg,
		Committee:  committee,
		Checkpoint: checkpoint,
		Boundary:   boundary,
		Supporting: test.Follow(boundary, committee[:quorum]),
	}, nil
}

// MustLoadEpochFixture is like LoadEpochFixture but panics on error
func MustLoadEpochFixture(algorithm string, interval int64, size int, quorum int) *EpochFixture {
	fixture, err := LoadEpochFixture(algorithm, interval, size, quorum)
	if err != nil {
		panic(err)
	}
	return fixture
}
