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
	"log/slog"
	"sync"
	"sync/atomic"
)

// MetricsRecorder is a function that records metrics for a processed block item.
// It receives the item that was processed and the error (if any) from processing.
type MetricsRecorder func(item *BlockItem, err error)

// StageWorkerPool runs multiple workers in parallel for a given stage.
type StageWorkerPool struct {
	stage         Stage
	numWorkers    int
	input         <-chan *BlockItem
	output        chan<- *BlockItem
	recordMetrics MetricsRecorder
	logger        *slog.Logger
	wg            sync.WaitGroup
	started       atomic.Bool
}

// StageWorkerPoolConfig holds configuration for creating a StageWorkerPool.
type StageWorkerPoolConfig struct {
	// Stage is the processing stage to use (required, panics if nil).
	Stage Stage
	// NumWorkers is the number of parallel workers; defaults to 1 if <= 0.
	NumWorkers int
	// Input is the channel to receive block items from.
	Input <-chan *BlockItem
	// Output is the channel to send processed items to.
	Output chan<- *BlockItem
	// RecordMetrics is called after processing to record metrics.
	// If nil, no metrics are recorded.
	RecordMetrics MetricsRecorder
	// Logger receives per-item failures, labelled with the stage name.
	// Defaults to slog.Default().
	Logger *slog.Logger
}

// NewStageWorkerPool creates a new worker pool for the given stage.
//
// Note: If input or output channels are nil, workers will block until the
// context passed to Start is done.
func NewStageWorkerPool(config StageWorkerPoolConfig) *StageWorkerPool {
	if config.Stage == nil {
		panic(ErrNilStage)
	}
	numWorkers := config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = 1
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &StageWorkerPool{
		stage:         config.Stage,
		numWorkers:    numWorkers,
		input:         config.Input,
		output:        config.Output,
		recordMetrics: config.RecordMetrics,
		logger: logger.With(
			"component", "pipeline",
			"stage", config.Stage.Name(),
		),
	}
}

// Start starts the worker pool. Call Stop to wait for completion.
// This method is idempotent - calling it multiple times has no effect.
func (p *StageWorkerPool) Start(ctx context.Context) {
	if p.started.Swap(true) {
		return
	}
	for range p.numWorkers {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

// Stop waits for all workers to complete.
func (p *StageWorkerPool) Stop() {
	p.wg.Wait()
}

func (p *StageWorkerPool) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case item, ok := <-p.input:
			if !ok {
				return
			}

			err := p.stage.Process(ctx, item)
			if err != nil {
				p.logger.Debug(
					"stage failed",
					"index", item.Index(),
					"block", item.Block().Number(),
					"error", err,
				)
			}

			// Record metrics only for actual processing attempts (not context cancellation)
			if p.recordMetrics != nil &&
				!errors.Is(err, context.Canceled) &&
				!errors.Is(err, context.DeadlineExceeded) {
				p.recordMetrics(item, err)
			}

			// Forward even on error so the collector sees every item
			select {
			case p.output <- item:
			case <-ctx.Done():
				return
			}
		}
	}
}

// VerifyMetricsRecorder returns a MetricsRecorder for the verify stage.
func VerifyMetricsRecorder(metrics *Metrics) MetricsRecorder {
	if metrics == nil {
		return nil
	}
	return func(item *BlockItem, err error) {
		metrics.RecordVerify(item.Duration(), err)
	}
}
