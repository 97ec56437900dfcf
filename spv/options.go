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
	"log/slog"

	"github.com/blinklabs-io/goiost/pipeline"
	"github.com/blinklabs-io/goiost/storage"
)

// VerifierOptionFunc is a type that represents functions that modify the Verifier config
type VerifierOptionFunc func(*Verifier)

// WithConfig specifies the committee parameters
func WithConfig(config Config) VerifierOptionFunc {
	return func(v *Verifier) {
		v.config = config
	}
}

// WithLogger specifies the logger. slog.Default() is used otherwise
func WithLogger(logger *slog.Logger) VerifierOptionFunc {
	return func(v *Verifier) {
		v.logger = logger
	}
}

// WithStore specifies a store that every accepted epoch is written to
func WithStore(store storage.EpochStore) VerifierOptionFunc {
	return func(v *Verifier) {
		v.store = store
	}
}

// WithVerifyWorkers verifies supporting block signatures with the given number
// of parallel workers
func WithVerifyWorkers(workers int) VerifierOptionFunc {
	return func(v *Verifier) {
		v.verifyWorkers = workers
	}
}

// WithMetrics specifies where parallel verification results are counted
func WithMetrics(metrics *pipeline.Metrics) VerifierOptionFunc {
	return func(v *Verifier) {
		v.metrics = metrics
	}
}
