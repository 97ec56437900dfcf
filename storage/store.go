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

// Package storage persists the producer list of each tracked epoch
package storage

import (
	"errors"
	"fmt"

	"github.com/blinklabs-io/goiost/cbor"
)

var ErrNotFound = errors.New("epoch not found")

// EpochStore persists producer lists keyed by epoch start block number.
// Implementations must be safe for concurrent use
type EpochStore interface {
	PutEpoch(start int64, producers []string) error
	// GetEpoch returns ErrNotFound for unknown epochs
	GetEpoch(start int64) ([]string, error)
	// Epochs returns the stored epoch starts in ascending order
	Epochs() ([]int64, error)
	DeleteEpoch(start int64) error
	Close() error
}

// EpochRecord is the stored form of an epoch
type EpochRecord struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Start     int64
	Producers []string
}

func (r *EpochRecord) UnmarshalCBOR(cborData []byte) error {
	return r.UnmarshalCborGeneric(cborData, r)
}

func (r *EpochRecord) MarshalCBOR() ([]byte, error) {
	if data := r.Cbor(); data != nil {
		return data, nil
	}
	return cbor.EncodeGeneric(r)
}

// EncodeEpochRecord returns the CBOR encoding of an epoch record
func EncodeEpochRecord(start int64, producers []string) ([]byte, error) {
	return cbor.Encode(&EpochRecord{Start: start, Producers: producers})
}

// DecodeEpochRecord decodes a record and checks that it belongs to start
func DecodeEpochRecord(start int64, data []byte) (*EpochRecord, error) {
	var rec EpochRecord
	if err := cbor.DecodeFull(data, &rec); err != nil {
		return nil, fmt.Errorf("decode epoch %d: %w", start, err)
	}
	if rec.Start != start {
		return nil, fmt.Errorf(
			"epoch record mismatch: key %d, record %d",
			start,
			rec.Start,
		)
	}
	return &rec, nil
}
