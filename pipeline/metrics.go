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
	"sync/atomic"
	"time"
)

// Metrics tracks verification counts across batches.
// Uses atomic counters for thread-safe operation.
type Metrics struct {
	blocksVerified     atomic.Uint64
	verifyErrors       atomic.Uint64
	verifyNanos        atomic.Int64
	batchesSubmitted   atomic.Uint64
	batchesInterrupted atomic.Uint64
}

// Stats contains a snapshot of verification metrics.
type Stats struct {
	// BlocksVerified is the total number of blocks with a valid signature.
	BlocksVerified uint64
	// VerifyErrors is the total number of blocks that failed verification.
	VerifyErrors uint64
	// VerifyTime is the summed verification time over all workers.
	VerifyTime time.Duration
	// Batches is the number of batches submitted.
	Batches uint64
	// Interrupted is the number of batches cut short by their context.
	Interrupted uint64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordVerify records a verification result.
func (m *Metrics) RecordVerify(duration time.Duration, err error) {
	if err != nil {
		m.verifyErrors.Add(1)
	} else {
		m.blocksVerified.Add(1)
	}
	m.verifyNanos.Add(int64(duration))
}

func (m *Metrics) recordBatch(interrupted bool) {
	m.batchesSubmitted.Add(1)
	if interrupted {
		m.batchesInterrupted.Add(1)
	}
}

// Stats returns a snapshot of the current metrics.
func (m *Metrics) Stats() Stats {
	return Stats{
		BlocksVerified: m.blocksVerified.Load(),
		VerifyErrors:   m.verifyErrors.Load(),
		VerifyTime:     time.Duration(m.verifyNanos.Load()),
		Batches:        m.batchesSubmitted.Load(),
		Interrupted:    m.batchesInterrupted.Load(),
	}
}

// Reset resets all metrics.
func (m *Metrics) Reset() {
	m.blocksVerified.Store(0)
	m.verifyErrors.Store(0)
	m.verifyNanos.Store(0)
	m.batchesSubmitted.Store(0)
	m.batchesInterrupted.Store(0)
}
