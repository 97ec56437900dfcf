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

package spv_test

import (
	"log/slog"
	"strconv"
	"testing"

	"github.com/blinklabs-io/goiost/chain"
	"github.com/blinklabs-io/goiost/internal/test"
	"github.com/blinklabs-io/goiost/keys"
	"github.com/blinklabs-io/goiost/spv"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var discardLogger = slog.New(slog.DiscardHandler)

// committee returns the keys of the producer set announced at number
func committee(number int64) []*keys.KeyPair {
	return test.WitnessKeys("epoch-"+strconv.FormatInt(number, 10), spv.VerifierNum)
}

// newTracking returns a verifier initialized at a checkpoint at 1200
func newTracking(t *testing.T, opts ...spv.VerifierOptionFunc) *spv.Verifier {
	t.Helper()
	checkpoint := test.NewStatBlock(nil, 1200, committee(0)[0], test.WitnessIDs(committee(1200)))
	v, err := spv.Init(checkpoint, append([]spv.VerifierOptionFunc{spv.WithLogger(discardLogger)}, opts...)...)
	require.NoError(t, err)
	return v
}

// boundary returns a stat block at number announcing committee(number),
// produced by a member of the previous committee
func boundary(number int64) *chain.Block {
	prev := committee(number - spv.VoteInterval)
	parent := keys.Hash([]byte("parent-" + strconv.FormatInt(number, 10)))
	return test.NewStatBlock(parent, number, prev[0], test.WitnessIDs(committee(number)))
}

// endorse returns supporting blocks on top of b, produced in turn by the
// members of the committee trusted for b at the given indexes
func endorse(b *chain.Block, epochStart int64, members ...int) []*chain.Block {
	kps := committee(epochStart)
	signers := make([]*keys.KeyPair, len(members))
	for i, idx := range members {
		signers[i] = kps[idx]
	}
	return test.Follow(b, signers)
}

func seq(n int) []int {
	ret := make([]int, n)
	for i := range ret {
		ret[i] = i
	}
	return ret
}
