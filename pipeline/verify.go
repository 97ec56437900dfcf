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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/blinklabs-io/goiost/chain"
)

var ErrNilBlock = errors.New("pipeline: nil block")

// Config holds configuration for VerifyBlocks.
type Config struct {
	// Workers is the number of parallel verify workers.
	Workers int
	// Metrics receives per-block results; may be nil.
	Metrics *Metrics
	// Logger is passed to the worker pool; may be nil.
	Logger *slog.Logger
}

// OptionFunc is a functional option for configuring VerifyBlocks.
type OptionFunc func(*Config)

// DefaultConfig uses one worker per CPU
func DefaultConfig() Config {
	return Config{
		Workers: runtime.NumCPU(),
	}
}

func WithWorkers(workers int) OptionFunc {
	return func(c *Config) {
		c.Workers = workers
	}
}

func WithMetrics(metrics *Metrics) OptionFunc {
	return func(c *Config) {
		c.Metrics = metrics
	}
}

func WithLogger(logger *slog.Logger) OptionFunc {
	return func(c *Config) {
		c.Logger = logger
	}
}

// VerifyBlocks checks every block with VerifySelf using a pool of workers.
// When several blocks fail, the error of the one with the lowest index is
// returned, so the result matches checking the blocks in order
func VerifyBlocks(ctx context.Context, blocks []*chain.Block, opts ...OptionFunc) error {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if len(blocks) == 0 {
		return nil
	}
	for i, b := range blocks {
		if b == nil {
			return fmt.Errorf("%w at index %d", ErrNilBlock, i)
		}
	}
	input := make(chan *BlockItem, len(blocks))
	output := make(chan *BlockItem, len(blocks))
	for i, b := range blocks {
		input <- NewBlockItem(b, i)
	}
	close(input)
	pool := NewStageWorkerPool(StageWorkerPoolConfig{
		Stage:         VerifyStage{},
		NumWorkers:    min(config.Workers, len(blocks)),
		Input:         input,
		Output:        output,
		RecordMetrics: VerifyMetricsRecorder(config.Metrics),
		Logger:        config.Logger,
	})
	pool.Start(ctx)
	pool.Stop()
	close(output)
	if err := ctx.Err(); err != nil {
		if config.Metrics != nil {
			config.Metrics.recordBatch(true)
		}
		return err
	}
	if config.Metrics != nil {
		config.Metrics.recordBatch(false)
	}
	var failed *BlockItem
	for item := range output {
		if item.Err() == nil {
			continue
		}
		if failed == nil || item.Index() < failed.Index() {
			failed = item
		}
	}
	if failed != nil {
		return failed.Err()
	}
	return nil
}
