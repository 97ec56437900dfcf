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

package spv

import (
	"fmt"

	"github.com/blinklabs-io/goiost/cbor"
	"github.com/blinklabs-io/goiost/storage"
)

const snapshotVersion = 1

type snapshot struct {
	cbor.StructAsArray
	Version             uint
	VoteInterval        int64
	VerifierNum         int
	Quorum              int
	MaxSupportingBlocks int
	Epochs              []storage.EpochRecord
}

// Snapshot returns a CBOR encoding of the committee parameters and every
// tracked epoch
func (v *Verifier) Snapshot() ([]byte, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	snap := snapshot{
		Version:             snapshotVersion,
		VoteInterval:        v.config.VoteInterval,
		VerifierNum:         v.config.VerifierNum,
		Quorum:              v.config.Quorum,
		MaxSupportingBlocks: v.config.MaxSupportingBlocks,
		Epochs:              make([]storage.EpochRecord, 0, len(v.starts)),
	}
	for _, start := range v.starts {
		snap.Epochs = append(snap.Epochs, storage.EpochRecord{
			Start:     start,
			Producers: v.epochs[start],
		})
	}
	return cbor.Encode(&snap)
}

// Restore creates a verifier from the output of Snapshot. The snapshot's
// committee parameters apply unless WithConfig is given
func Restore(data []byte, opts ...VerifierOptionFunc) (*Verifier, error) {
	var snap snapshot
	if err := cbor.DecodeFull(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	if len(snap.Epochs) == 0 {
		return nil, ErrNoEpochs
	}
	config := Config{
		VoteInterval:        snap.VoteInterval,
		VerifierNum:         snap.VerifierNum,
		Quorum:              snap.Quorum,
		MaxSupportingBlocks: snap.MaxSupportingBlocks,
	}
	v, err := newVerifier(append([]VerifierOptionFunc{WithConfig(config)}, opts...)...)
	if err != nil {
		return nil, err
	}
	for _, rec := range snap.Epochs {
		if err := v.checkEpoch(rec.Start, rec.Producers); err != nil {
			return nil, err
		}
		if err := v.persist(rec.Start, rec.Producers); err != nil {
			return nil, err
		}
		v.insert(rec.Start, rec.Producers)
	}
	v.logger.Info("restored from snapshot", "epochs", len(snap.Epochs))
	return v, nil
}
