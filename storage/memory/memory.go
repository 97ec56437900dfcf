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

package memory

import (
	"slices"
	"sync"

	"github.com/blinklabs-io/goiost/storage"
)

// Store is an in-memory implementation of storage.EpochStore
type Store struct {
	mu     sync.RWMutex
	epochs map[int64][]string
}

var _ storage.EpochStore = (*Store)(nil)

// New creates a new in-memory store
func New() *Store {
	return &Store{
		epochs: make(map[int64][]string),
	}
}

func (m *Store) PutEpoch(start int64, producers []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.epochs[start] = slices.Clone(producers)
	return nil
}

func (m *Store) GetEpoch(start int64) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	producers, ok := m.epochs[start]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return slices.Clone(producers), nil
}

func (m *Store) Epochs() ([]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ret := make([]int64, 0, len(m.epochs))
	for start := range m.epochs {
		ret = append(ret, start)
	}
	slices.Sort(ret)
	return ret, nil
}

func (m *Store) DeleteEpoch(start int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.epochs, start)
	return nil
}

func (m *Store) Close() error {
	return nil
}
