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

// Package pipeline verifies block signatures in parallel.
package pipeline

import (
	"context"
	"errors"
	"time"
)

// ErrNilStage is returned when a nil stage is passed to a worker pool.
var ErrNilStage = errors.New("pipeline: nil stage")

// Stage represents a processing stage for block items.
type Stage interface {
	// Name returns the name of the stage for logging and metrics.
	Name() string
	// Process processes a single block item. Returns an error if processing fails.
	Process(ctx context.Context, item *BlockItem) error
}

// VerifyStage checks the producer signature and receipt count of each block
type VerifyStage struct{}

func (VerifyStage) Name() string {
	return "verify"
}

func (VerifyStage) Process(ctx context.Context, item *BlockItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	err := item.Block().VerifySelf()
	item.SetResult(err, time.Since(start))
	return err
}
