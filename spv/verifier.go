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

// Package spv tracks IOST producer sets epoch by epoch and checks that
// blocks are endorsed by a quorum of the producers of their epoch.
package spv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/blinklabs-io/goiost/chain"
	"github.com/blinklabs-io/goiost/pipeline"
	"github.com/blinklabs-io/goiost/storage"
)

// Verifier maps epoch start block numbers to the producer list trusted for
// that epoch. Epochs are only added through Init and UpdateEpoch, and only
// removed by Prune
type Verifier struct {
	mu     sync.RWMutex
	config Config
	logger *slog.Logger
	store  storage.EpochStore

	// supporting blocks are verified in parallel when above 1
	verifyWorkers int
	metrics       *pipeline.Metrics

	// starts is kept sorted and mirrors the keys of epochs
	starts []int64
	epochs map[int64][]string
}

func newVerifier(opts ...VerifierOptionFunc) (*Verifier, error) {
	v := &Verifier{
		config: DefaultConfig(),
		epochs: make(map[int64][]string),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.logger == nil {
		v.logger = slog.Default()
	}
	v.logger = v.logger.With("component", "spv")
	if err := v.config.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// Init creates a verifier trusting the producer list announced by checkpoint.
// The checkpoint itself is trusted and its signature is not checked
func Init(checkpoint *chain.Block, opts ...VerifierOptionFunc) (*Verifier, error) {
	v, err := newVerifier(opts...)
	if err != nil {
		return nil, err
	}
	if checkpoint == nil {
		return nil, fmt.Errorf("%w: nil checkpoint", ErrBlock)
	}
	number := checkpoint.Number()
	if number%v.config.VoteInterval != 0 {
		return nil, InvalidSPVStartBlockError{Number: number}
	}
	ws, ok := chain.WitnessStatusFromBlock(checkpoint)
	if !ok {
		return nil, fmt.Errorf(
			"%w: %s receipt not found at block %d",
			ErrBlock,
			chain.FuncNameWitnessStat,
			number,
		)
	}
	if len(ws.PendingList) != v.config.VerifierNum {
		return nil, fmt.Errorf(
			"%w: pending list length %d at block %d, expected %d",
			ErrBlock,
			len(ws.PendingList),
			number,
			v.config.VerifierNum,
		)
	}
	if err := v.persist(number, ws.PendingList); err != nil {
		return nil, err
	}
	v.insert(number, ws.PendingList)
	v.logger.Info(
		"initialized from checkpoint",
		"number", number,
		"producers", len(ws.PendingList),
	)
	return v, nil
}

// Load creates a verifier from the epochs held in store. The store is also
// used for epochs accepted later
func Load(store storage.EpochStore, opts ...VerifierOptionFunc) (*Verifier, error) {
	v, err := newVerifier(append(opts, WithStore(store))...)
	if err != nil {
		return nil, err
	}
	starts, err := store.Epochs()
	if err != nil {
		return nil, fmt.Errorf("list stored epochs: %w", err)
	}
	if len(starts) == 0 {
		return nil, ErrNoEpochs
	}
	for _, start := range starts {
		producers, err := store.GetEpoch(start)
		if err != nil {
			return nil, fmt.Errorf("load epoch %d: %w", start, err)
		}
		if err := v.checkEpoch(start, producers); err != nil {
			return nil, err
		}
		v.insert(start, producers)
	}
	v.logger.Info("loaded epochs from store", "epochs", len(starts))
	return v, nil
}

// checkEpoch validates a restored epoch
func (v *Verifier) checkEpoch(start int64, producers []string) error {
	if start%v.config.VoteInterval != 0 {
		return fmt.Errorf("%w: epoch %d", ErrMisalignedBlock, start)
	}
	if len(producers) != v.config.VerifierNum {
		return fmt.Errorf(
			"%w: epoch %d has %d producers, expected %d",
			ErrBlock,
			start,
			len(producers),
			v.config.VerifierNum,
		)
	}
	if _, ok := v.epochs[start]; ok {
		return fmt.Errorf("duplicate epoch %d", start)
	}
	return nil
}

// Config returns the committee parameters
func (v *Verifier) Config() Config {
	return v.config
}

// UpdateEpoch trusts the producer list announced by boundary once boundary
// has been endorsed by the producers of the current epoch. On any error the
// tracked epochs are left unchanged
func (v *Verifier) UpdateEpoch(boundary *chain.Block, supporting []*chain.Block) error {
	if boundary == nil {
		return UpdateEpochError{Reason: "nil block", Err: ErrBlock}
	}
	number := boundary.Number()
	if err := v.updateEpoch(boundary, supporting); err != nil {
		v.logger.Warn(
			"rejected epoch update",
			"number", number,
			"supporting", len(supporting),
			"error", err,
		)
		return err
	}
	return nil
}

func (v *Verifier) updateEpoch(boundary *chain.Block, supporting []*chain.Block) error {
	number := boundary.Number()
	if number%v.config.VoteInterval != 0 {
		return UpdateEpochError{
			Number: number,
			Reason: fmt.Sprintf("invalid spv start block %d", number),
			Err:    ErrMisalignedBlock,
		}
	}
	ws, ok := chain.WitnessStatusFromBlock(boundary)
	if !ok {
		return UpdateEpochError{
			Number: number,
			Reason: fmt.Sprintf(
				"%s receipt not found, hash: %x",
				chain.FuncNameWitnessStat,
				boundary.Hash(),
			),
		}
	}
	if len(ws.PendingList) != v.config.VerifierNum {
		return UpdateEpochError{
			Number: number,
			Reason: fmt.Sprintf(
				"invalid pending list length %d",
				len(ws.PendingList),
			),
		}
	}
	if err := v.verifySignatures(boundary, supporting); err != nil {
		return err
	}
	// epoch lookup, chain walk and insert under a single write lock
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.checkWitness(boundary, supporting); err != nil {
		return err
	}
	if existing, ok := v.epochs[number]; ok {
		if slices.Equal(existing, ws.PendingList) {
			v.logger.Debug("epoch already tracked", "number", number)
			return nil
		}
		return UpdateEpochError{
			Number: number,
			Reason: "conflicting producer list",
			Err:    ErrEpochConflict,
		}
	}
	if err := v.persist(number, ws.PendingList); err != nil {
		return UpdateEpochError{
			Number: number,
			Reason: "persist epoch",
			Err:    err,
		}
	}
	v.insert(number, ws.PendingList)
	v.logger.Info(
		"accepted new epoch",
		"number", number,
		"supporting", len(supporting),
	)
	return nil
}

// CheckBlock checks that block is endorsed by a quorum of the producers of
// its epoch through the supporting blocks built on top of it
func (v *Verifier) CheckBlock(block *chain.Block, supporting []*chain.Block) error {
	if block == nil {
		return fmt.Errorf("%w: nil block", ErrBlock)
	}
	if err := v.verifySignatures(block, supporting); err != nil {
		return err
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	if err := v.checkWitness(block, supporting); err != nil {
		return err
	}
	v.logger.Debug(
		"accepted block",
		"number", block.Number(),
		"supporting", len(supporting),
	)
	return nil
}

// verifySignatures self-verifies block and its supporting blocks. It reads
// no verifier state beyond the config and needs no lock
func (v *Verifier) verifySignatures(block *chain.Block, supporting []*chain.Block) error {
	if limit := v.config.SupportingLimit(); len(supporting) > limit {
		return BlockWitnessError{
			Number: block.Number(),
			Reason: fmt.Sprintf("%d supporting blocks, limit %d", len(supporting), limit),
			Err:    ErrTooManyBlocks,
		}
	}
	if err := block.VerifySelf(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBlockSignature, err)
	}
	for i, b := range supporting {
		if b == nil {
			return fmt.Errorf("%w: supporting block %d is nil", ErrInvalidBlockSignature, i)
		}
	}
	if err := v.verifySupporting(supporting); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBlockSignature, err)
	}
	return nil
}

// checkWitness must be called with v.mu held, after verifySignatures
func (v *Verifier) checkWitness(block *chain.Block, supporting []*chain.Block) error {
	number := block.Number()
	epochStart := v.config.EpochStart(number)
	producers, ok := v.epochs[epochStart]
	if !ok {
		return BlockWitnessError{
			Number: number,
			Reason: fmt.Sprintf(
				"cannot update producer list at block %d: %s",
				number,
				ErrUnknownEpoch,
			),
			Err: ErrUnknownEpoch,
		}
	}
	parentHash := block.Hash()
	parentNumber := number
	valid := make(map[string]struct{}, len(producers))
	for _, b := range supporting {
		if !bytes.Equal(parentHash, b.Head.ParentHash) {
			return BlockWitnessError{
				Number: b.Number(),
				Reason: fmt.Sprintf("invalid block hash at block %d", b.Number()),
				Err:    ErrBrokenChain,
			}
		}
		if parentNumber+1 != b.Number() {
			return BlockWitnessError{
				Number: b.Number(),
				Reason: fmt.Sprintf("invalid block number at block %d", b.Number()),
				Err:    ErrBrokenChain,
			}
		}
		if slices.Contains(producers, b.Head.Witness) {
			valid[b.Head.Witness] = struct{}{}
		}
		parentHash = b.Hash()
		parentNumber = b.Number()
	}
	if len(valid) < v.config.QuorumSize() {
		return BlockWitnessError{
			Number: number,
			Reason: fmt.Sprintf(
				"valid witness not enough %d, need %d",
				len(valid),
				v.config.QuorumSize(),
			),
			Err: ErrQuorumNotMet,
		}
	}
	return nil
}

func (v *Verifier) verifySupporting(supporting []*chain.Block) error {
	if v.verifyWorkers > 1 {
		return pipeline.VerifyBlocks(
			context.Background(),
			supporting,
			pipeline.WithWorkers(v.verifyWorkers),
			pipeline.WithMetrics(v.metrics),
			pipeline.WithLogger(v.logger),
		)
	}
	for _, b := range supporting {
		if err := b.VerifySelf(); err != nil {
			return err
		}
	}
	return nil
}

// persist writes an epoch to the configured store, if any
func (v *Verifier) persist(start int64, producers []string) error {
	if v.store == nil {
		return nil
	}
	if err := v.store.PutEpoch(start, producers); err != nil {
		return fmt.Errorf("store epoch %d: %w", start, err)
	}
	return nil
}

// insert must be called with v.mu held, or before v is shared
func (v *Verifier) insert(start int64, producers []string) {
	idx, found := slices.BinarySearch(v.starts, start)
	if !found {
		v.starts = slices.Insert(v.starts, idx, start)
	}
	v.epochs[start] = slices.Clone(producers)
}

// Producers returns the producer list trusted for the epoch starting at start
func (v *Verifier) Producers(start int64) ([]string, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	producers, ok := v.epochs[start]
	if !ok {
		return nil, false
	}
	return slices.Clone(producers), true
}

// Epochs returns the tracked epoch starts in ascending order
func (v *Verifier) Epochs() []int64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.starts)
}

// LatestEpoch returns the most recent tracked epoch start
func (v *Verifier) LatestEpoch() (int64, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if len(v.starts) == 0 {
		return 0, false
	}
	return v.starts[len(v.starts)-1], true
}

// Prune forgets epochs starting before the given block number. The latest
// epoch is always kept. It returns the number of epochs removed
func (v *Verifier) Prune(before int64) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.starts) == 0 {
		return 0, nil
	}
	n, _ := slices.BinarySearch(v.starts, before)
	n = min(n, len(v.starts)-1)
	var errs []error
	for _, start := range v.starts[:n] {
		if v.store != nil {
			if err := v.store.DeleteEpoch(start); err != nil {
				errs = append(errs, fmt.Errorf("delete epoch %d: %w", start, err))
			}
		}
		delete(v.epochs, start)
	}
	v.starts = slices.Delete(v.starts, 0, n)
	if n > 0 {
		v.logger.Debug("pruned epochs", "count", n, "before", before)
	}
	return n, errors.Join(errs...)
}
