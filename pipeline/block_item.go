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

package pipeline

import (
	"sync"
	"time"

	"github.com/blinklabs-io/goiost/chain"
)

// BlockItem represents a block as it moves through a worker pool.
// It is thread-safe and tracks the verification result.
type BlockItem struct {
	// Immutable fields (set at construction, never modified)
	block *chain.Block
	index int

	mu        sync.RWMutex
	processed bool
	err       error
	duration  time.Duration
}

// NewBlockItem creates a new BlockItem for the block at position index of
// its batch
func NewBlockItem(block *chain.Block, index int) *BlockItem {
	return &BlockItem{
		block: block,
		index: index,
	}
}

func (b *BlockItem) Block() *chain.Block {
	return b.block
}

func (b *BlockItem) Index() int {
	return b.index
}

// SetResult records the outcome of processing the item
func (b *BlockItem) SetResult(err error, duration time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.processed = true
	b.err = err
	b.duration = duration
}

// Err returns the processing error, if any
func (b *BlockItem) Err() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.err
}

// IsProcessed returns whether a stage recorded a result for the item
func (b *BlockItem) IsProcessed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.processed
}

func (b *BlockItem) Duration() time.Duration {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.duration
}
