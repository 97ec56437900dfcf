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

// Package pebble stores epochs in a pebble database. Values are
// snappy-compressed CBOR epoch records
package pebble

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"

	"github.com/blinklabs-io/goiost/storage"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/golang/snappy"
)

var epochKeyPrefix = []byte("epoch/")

// Store is a pebble-backed storage.EpochStore
type Store struct {
	db     *pebble.DB
	logger *slog.Logger
}

var _ storage.EpochStore = (*Store)(nil)

// Open opens or creates a store in dir
func Open(dir string, logger *slog.Logger) (*Store, error) {
	return OpenWithFS(dir, vfs.Default, logger)
}

// OpenWithFS is like Open but uses the given filesystem, such as vfs.NewMem()
func OpenWithFS(dir string, fs vfs.FS, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "storage", "dir", dir)
	db, err := pebble.Open(dir, &pebble.Options{
		FS:     fs,
		Logger: &pebbleLogger{logger: logger},
	})
	if err != nil {
		return nil, fmt.Errorf("open epoch store: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// epochKey encodes start so that byte order matches numeric order
func epochKey(start int64) []byte {
	key := make([]byte, len(epochKeyPrefix)+8)
	copy(key, epochKeyPrefix)
	// #nosec G115 -- flipping the sign bit is an order-preserving bijection
	binary.BigEndian.PutUint64(key[len(epochKeyPrefix):], uint64(start)^(1<<63))
	return key
}

func epochFromKey(key []byte) (int64, error) {
	if len(key) != len(epochKeyPrefix)+8 {
		return 0, fmt.Errorf("invalid epoch key length %d", len(key))
	}
	// #nosec G115 -- inverse of epochKey
	return int64(binary.BigEndian.Uint64(key[len(epochKeyPrefix):]) ^ (1 << 63)), nil
}

func (s *Store) PutEpoch(start int64, producers []string) error {
	data, err := storage.EncodeEpochRecord(start, producers)
	if err != nil {
		return err
	}
	if err := s.db.Set(epochKey(start), snappy.Encode(nil, data), pebble.Sync); err != nil {
		return fmt.Errorf("put epoch %d: %w", start, err)
	}
	s.logger.Debug("stored epoch", "start", start, "producers", len(producers))
	return nil
}

func (s *Store) GetEpoch(start int64) ([]string, error) {
	value, closer, err := s.db.Get(epochKey(start))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get epoch %d: %w", start, err)
	}
	defer closer.Close()
	// snappy.Decode allocates, so the result outlives closer
	data, err := snappy.Decode(nil, value)
	if err != nil {
		return nil, fmt.Errorf("decompress epoch %d: %w", start, err)
	}
	rec, err := storage.DecodeEpochRecord(start, data)
	if err != nil {
		return nil, err
	}
	return rec.Producers, nil
}

func (s *Store) Epochs() ([]int64, error) {
	upper := append([]byte(nil), epochKeyPrefix...)
	upper[len(upper)-1]++
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: epochKeyPrefix,
		UpperBound: upper,
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()
	var ret []int64
	for iter.First(); iter.Valid(); iter.Next() {
		start, err := epochFromKey(iter.Key())
		if err != nil {
			return nil, err
		}
		ret = append(ret, start)
	}
	return ret, iter.Error()
}

func (s *Store) DeleteEpoch(start int64) error {
	if err := s.db.Delete(epochKey(start), pebble.Sync); err != nil {
		return fmt.Errorf("delete epoch %d: %w", start, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// pebbleLogger routes pebble's internal logging through slog
type pebbleLogger struct {
	logger *slog.Logger
}

func (l *pebbleLogger) Infof(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *pebbleLogger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *pebbleLogger) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.logger.Error(msg)
	panic(msg)
}
