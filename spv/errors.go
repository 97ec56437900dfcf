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
	"errors"
	"fmt"
)

var (
	// ErrBlock is returned when a checkpoint lacks a usable witness status
	ErrBlock = errors.New("invalid IOST block")
	// ErrInvalidBlockSignature is returned when a candidate or supporting
	// block fails self verification
	ErrInvalidBlockSignature = errors.New("invalid block signature")
	ErrUpdateEpoch           = errors.New("cannot update epoch")
	ErrBlockWitness          = errors.New("block witness check failed")
	ErrNoEpochs              = errors.New("no epochs to restore")

	// Causes wrapped by BlockWitnessError and UpdateEpochError
	ErrUnknownEpoch    = errors.New("cannot find producer info of previous epoch")
	ErrBrokenChain     = errors.New("supporting chain is not contiguous")
	ErrQuorumNotMet    = errors.New("valid witness not enough")
	ErrTooManyBlocks   = errors.New("too many supporting blocks")
	ErrEpochConflict   = errors.New("epoch already tracked with different producers")
	ErrMisalignedBlock = errors.New("block is not on an epoch boundary")
)

// InvalidSPVStartBlockError is returned by Init for a checkpoint that is not
// on an epoch boundary
type InvalidSPVStartBlockError struct {
	Number int64
}

func (e InvalidSPVStartBlockError) Error() string {
	return fmt.Sprintf("invalid spv start block %d", e.Number)
}

func (InvalidSPVStartBlockError) Is(target error) bool {
	return target == ErrMisalignedBlock
}

// UpdateEpochError is returned when a boundary block cannot start a new epoch
type UpdateEpochError struct {
	Number int64
	Reason string
	Err    error
}

func (e UpdateEpochError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot update epoch at block %d: %s: %v", e.Number, e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot update epoch at block %d: %s", e.Number, e.Reason)
}

func (e UpdateEpochError) Unwrap() error { return e.Err }

func (UpdateEpochError) Is(target error) bool {
	return target == ErrUpdateEpoch
}

// BlockWitnessError is returned when a block is not endorsed by a quorum of
// the producers of its epoch
type BlockWitnessError struct {
	Number int64
	Reason string
	Err    error
}

func (e BlockWitnessError) Error() string {
	return fmt.Sprintf("block %d: %s", e.Number, e.Reason)
}

func (e BlockWitnessError) Unwrap() error { return e.Err }

func (BlockWitnessError) Is(target error) bool {
	return target == ErrBlockWitness
}
