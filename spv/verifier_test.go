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
	"errors"
	"sync"
	"testing"

	"github.com/blinklabs-io/goiost/chain"
	"github.com/blinklabs-io/goiost/internal/test"
	"github.com/blinklabs-io/goiost/internal/testdata"
	"github.com/blinklabs-io/goiost/keys"
	"github.com/blinklabs-io/goiost/pipeline"
	"github.com/blinklabs-io/goiost/spv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	v := newTracking(t)
	assert.Equal(t, []int64{1200}, v.Epochs())
	producers, ok := v.Producers(1200)
	require.True(t, ok)
	assert.Equal(t, test.WitnessIDs(committee(1200)), producers)
	latest, ok := v.LatestEpoch()
	require.True(t, ok)
	assert.Equal(t, int64(1200), latest)

	_, ok = v.Producers(2400)
	assert.False(t, ok)
}

func TestInitErrors(t *testing.T) {
	kp := committee(0)[0]
	ids := test.WitnessIDs(committee(1200))

	_, err := spv.Init(test.NewStatBlock(nil, 1201, kp, ids))
	var startErr spv.InvalidSPVStartBlockError
	require.ErrorAs(t, err, &startErr)
	assert.Equal(t, int64(1201), startErr.Number)

	_, err = spv.Init(test.NewBlock(nil, 1200, kp))
	assert.ErrorIs(t, err, spv.ErrBlock)

	_, err = spv.Init(test.NewStatBlock(nil, 1200, kp, ids[:16]))
	assert.ErrorIs(t, err, spv.ErrBlock)

	_, err = spv.Init(test.NewStatBlock(nil, 1200, kp, append(ids, "extra")))
	assert.ErrorIs(t, err, spv.ErrBlock)

	_, err = spv.Init(nil)
	assert.ErrorIs(t, err, spv.ErrBlock)

	_, err = spv.Init(
		test.NewStatBlock(nil, 1200, kp, ids),
		spv.WithConfig(spv.Config{VoteInterval: 1200, VerifierNum: 17, Quorum: 30}),
	)
	assert.ErrorIs(t, err, spv.ErrInvalidConfig)
}

func TestEndToEnd(t *testing.T) {
	v := newTracking(t)

	// ten distinct producers are not enough
	b := boundary(2400)
	err := v.UpdateEpoch(b, endorse(b, 1200, seq(10)...))
	require.ErrorIs(t, err, spv.ErrBlockWitness)
	require.ErrorIs(t, err, spv.ErrQuorumNotMet)
	assert.Equal(t, []int64{1200}, v.Epochs())

	require.NoError(t, v.UpdateEpoch(b, endorse(b, 1200, seq(12)...)))
	assert.Equal(t, []int64{1200, 2400}, v.Epochs())
	producers, ok := v.Producers(2400)
	require.True(t, ok)
	assert.Equal(t, test.WitnessIDs(committee(2400)), producers)

	// the next epoch must be endorsed by the new committee
	b = boundary(3600)
	err = v.UpdateEpoch(b, endorse(b, 1200, seq(17)...))
	require.ErrorIs(t, err, spv.ErrQuorumNotMet)
	require.NoError(t, v.UpdateEpoch(b, endorse(b, 2400, seq(17)...)))
	assert.Equal(t, []int64{1200, 2400, 3600}, v.Epochs())
}

func TestQuorumBoundary(t *testing.T) {
	testDefs := []struct {
		name    string
		members []int
		ok      bool
	}{
		{"eleven", seq(11), false},
		{"twelve", seq(12), true},
		{"seventeen", seq(17), true},
		{"eleven with repeats", append(seq(11), 0, 1, 2, 3), false},
		{"twelve with repeats", []int{0, 1, 0, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 11}, true},
		{"none", nil, false},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			v := newTracking(t)
			b := boundary(2400)
			err := v.UpdateEpoch(b, endorse(b, 1200, testDef.members...))
			if testDef.ok {
				require.NoError(t, err)
				assert.Equal(t, []int64{1200, 2400}, v.Epochs())
			} else {
				require.ErrorIs(t, err, spv.ErrQuorumNotMet)
				assert.Equal(t, []int64{1200}, v.Epochs())
			}
		})
	}
}

func TestOutsidersDoNotCount(t *testing.T) {
	v := newTracking(t)
	b := boundary(2400)
	outsiders := test.WitnessKeys("outsiders", 6)
	signers := append(committee(1200)[:11], outsiders...)
	err := v.UpdateEpoch(b, test.Follow(b, signers))
	require.ErrorIs(t, err, spv.ErrQuorumNotMet)
	var witnessErr spv.BlockWitnessError
	require.ErrorAs(t, err, &witnessErr)
	assert.Equal(t, int64(2400), witnessErr.Number)
	assert.Contains(t, witnessErr.Reason, "valid witness not enough 11")
}

func TestChainContinuity(t *testing.T) {
	kps := committee(1200)
	testDefs := []struct {
		name   string
		modify func(blocks []*chain.Block)
	}{
		{
			name: "number gap",
			modify: func(blocks []*chain.Block) {
				blocks[3].Head.Number++
				test.Resign(blocks[3], kps[3])
			},
		},
		{
			name: "repeated number",
			modify: func(blocks []*chain.Block) {
				blocks[3].Head.Number--
				test.Resign(blocks[3], kps[3])
			},
		},
		{
			name: "parent hash mismatch",
			modify: func(blocks []*chain.Block) {
				blocks[5].Head.ParentHash = keys.Hash([]byte("elsewhere"))
				test.Resign(blocks[5], kps[5])
			},
		},
		{
			name: "reordered",
			modify: func(blocks []*chain.Block) {
				blocks[4], blocks[5] = blocks[5], blocks[4]
			},
		},
		{
			name: "first block not on candidate",
			modify: func(blocks []*chain.Block) {
				blocks[0].Head.ParentHash = nil
				test.Resign(blocks[0], kps[0])
			},
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			v := newTracking(t)
			b := boundary(2400)
			supporting := endorse(b, 1200, seq(17)...)
			testDef.modify(supporting)
			err := v.UpdateEpoch(b, supporting)
			require.ErrorIs(t, err, spv.ErrBrokenChain)
			require.ErrorIs(t, err, spv.ErrBlockWitness)
			assert.Equal(t, []int64{1200}, v.Epochs())
		})
	}
}

func TestInvalidSignatures(t *testing.T) {
	v := newTracking(t)
	b := boundary(2400)
	supporting := endorse(b, 1200, seq(12)...)

	// a supporting block claims a witness that did not sign it
	forged := *supporting[6]
	forged.Head.Witness = committee(1200)[13].ID()
	supporting[6] = &forged
	err := v.UpdateEpoch(b, supporting)
	require.ErrorIs(t, err, spv.ErrInvalidBlockSignature)
	require.ErrorIs(t, err, chain.ErrBlockVerify)
	assert.Equal(t, []int64{1200}, v.Epochs())

	// the candidate itself is tampered
	tampered := *b
	tampered.Head.Time++
	err = v.UpdateEpoch(&tampered, endorse(&tampered, 1200, seq(12)...))
	require.ErrorIs(t, err, spv.ErrInvalidBlockSignature)

	// tx and receipt counts differ
	unpaired := *b
	unpaired.Txs = nil
	err = v.UpdateEpoch(&unpaired, endorse(&unpaired, 1200, seq(12)...))
	require.ErrorIs(t, err, spv.ErrInvalidBlockSignature)
	var countErr chain.TxReceiptCountError
	require.ErrorAs(t, err, &countErr)
}

func TestUpdateEpochPreconditions(t *testing.T) {
	v := newTracking(t)
	prev := committee(1200)

	misaligned := test.NewStatBlock(nil, 2401, prev[0], test.WitnessIDs(committee(2400)))
	err := v.UpdateEpoch(misaligned, endorse(misaligned, 1200, seq(12)...))
	var updateErr spv.UpdateEpochError
	require.ErrorAs(t, err, &updateErr)
	assert.Equal(t, int64(2401), updateErr.Number)
	assert.ErrorIs(t, err, spv.ErrUpdateEpoch)

	noStat := test.NewBlock(nil, 2400, prev[0])
	err = v.UpdateEpoch(noStat, endorse(noStat, 1200, seq(12)...))
	require.ErrorAs(t, err, &updateErr)
	assert.Equal(t, int64(2400), updateErr.Number)

	short := test.NewStatBlock(nil, 2400, prev[0], test.WitnessIDs(committee(2400))[:16])
	err = v.UpdateEpoch(short, endorse(short, 1200, seq(12)...))
	require.ErrorIs(t, err, spv.ErrUpdateEpoch)
	assert.Contains(t, err.Error(), "invalid pending list length 16")

	// no trusted epoch precedes 4800
	far := boundary(4800)
	err = v.UpdateEpoch(far, endorse(far, 3600, seq(12)...))
	require.ErrorIs(t, err, spv.ErrUnknownEpoch)

	assert.ErrorIs(t, v.UpdateEpoch(nil, nil), spv.ErrUpdateEpoch)
	assert.Equal(t, []int64{1200}, v.Epochs())
}

func TestUpdateEpochRepeated(t *testing.T) {
	v := newTracking(t)
	b := boundary(2400)
	require.NoError(t, v.UpdateEpoch(b, endorse(b, 1200, seq(12)...)))
	// same announcement again is accepted without change
	require.NoError(t, v.UpdateEpoch(b, endorse(b, 1200, seq(12)...)))

	other := test.NewStatBlock(
		b.Head.ParentHash,
		2400,
		committee(1200)[1],
		test.WitnessIDs(committee(9999)),
	)
	err := v.UpdateEpoch(other, endorse(other, 1200, seq(12)...))
	require.ErrorIs(t, err, spv.ErrEpochConflict)
	producers, _ := v.Producers(2400)
	assert.Equal(t, test.WitnessIDs(committee(2400)), producers)
}

func TestSupportingLimit(t *testing.T) {
	v := newTracking(t, spv.WithConfig(spv.Config{
		VoteInterval:        spv.VoteInterval,
		VerifierNum:         spv.VerifierNum,
		MaxSupportingBlocks: 12,
	}))
	b := boundary(2400)
	err := v.UpdateEpoch(b, endorse(b, 1200, seq(13)...))
	require.ErrorIs(t, err, spv.ErrTooManyBlocks)
	require.NoError(t, v.UpdateEpoch(b, endorse(b, 1200, seq(12)...)))
}

func TestCheckBlock(t *testing.T) {
	v := newTracking(t)
	kps := committee(1200)
	block := test.NewBlock(keys.Hash([]byte("p")), 1500, kps[4])
	require.NoError(t, v.CheckBlock(block, endorse(block, 1200, seq(12)...)))
	err := v.CheckBlock(block, endorse(block, 1200, seq(11)...))
	require.ErrorIs(t, err, spv.ErrQuorumNotMet)

	// blocks of an untracked epoch
	late := test.NewBlock(nil, 2401, kps[4])
	err = v.CheckBlock(late, endorse(late, 1200, seq(12)...))
	require.ErrorIs(t, err, spv.ErrUnknownEpoch)

	b := boundary(2400)
	require.NoError(t, v.UpdateEpoch(b, endorse(b, 1200, seq(12)...)))
	late = test.NewBlock(nil, 2401, committee(2400)[7])
	require.NoError(t, v.CheckBlock(late, endorse(late, 2400, seq(12)...)))

	assert.ErrorIs(t, v.CheckBlock(nil, nil), spv.ErrBlock)
}

func TestSmallCommittee(t *testing.T) {
	config := spv.Config{VoteInterval: 10, VerifierNum: 4}
	kps := test.WitnessKeys("small", 4)
	next := test.WitnessKeys("small-next", 4)
	checkpoint := test.NewStatBlock(nil, 10, kps[0], test.WitnessIDs(kps))
	v, err := spv.Init(checkpoint, spv.WithConfig(config), spv.WithLogger(discardLogger))
	require.NoError(t, err)

	b := test.NewStatBlock(nil, 20, kps[1], test.WitnessIDs(next))
	err = v.UpdateEpoch(b, test.Follow(b, kps[:2]))
	require.ErrorIs(t, err, spv.ErrQuorumNotMet)
	require.NoError(t, v.UpdateEpoch(b, test.Follow(b, kps[:3])))
	assert.Equal(t, []int64{10, 20}, v.Epochs())
}

func TestPrune(t *testing.T) {
	v := newTracking(t)
	for _, number := range []int64{2400, 3600, 4800} {
		b := boundary(number)
		require.NoError(t, v.UpdateEpoch(b, endorse(b, number-spv.VoteInterval, seq(12)...)))
	}
	n, err := v.Prune(1200)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = v.Prune(3600)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []int64{3600, 4800}, v.Epochs())

	// blocks of a pruned epoch can no longer be checked
	old := test.NewBlock(nil, 1500, committee(1200)[0])
	err = v.CheckBlock(old, endorse(old, 1200, seq(12)...))
	require.ErrorIs(t, err, spv.ErrUnknownEpoch)

	// the latest epoch is always kept
	n, err = v.Prune(1 << 40)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []int64{4800}, v.Epochs())
}

func TestConcurrentChecks(t *testing.T) {
	v := newTracking(t)
	block := test.NewBlock(keys.Hash([]byte("p")), 1300, committee(1200)[2])
	supporting := endorse(block, 1200, seq(12)...)
	b := boundary(2400)
	bSupporting := endorse(b, 1200, seq(12)...)

	var wg sync.WaitGroup
	errs := make(chan error, 17)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- v.CheckBlock(block, supporting)
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		errs <- v.UpdateEpoch(b, bSupporting)
	}()
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, []int64{1200, 2400}, v.Epochs())
}

func TestSignaturesCheckedBeforeEpochLookup(t *testing.T) {
	v := newTracking(t)
	// 6000 lies in an epoch the verifier does not track
	b := boundary(6000)
	supporting := endorse(b, 4800, seq(12)...)
	err := v.CheckBlock(b, supporting)
	require.ErrorIs(t, err, spv.ErrUnknownEpoch)

	forged := *supporting[2]
	forged.Head.Witness = committee(4800)[14].ID()
	supporting[2] = &forged
	err = v.CheckBlock(b, supporting)
	require.ErrorIs(t, err, spv.ErrInvalidBlockSignature)
	assert.NotErrorIs(t, err, spv.ErrUnknownEpoch)
	err = v.UpdateEpoch(b, supporting)
	require.ErrorIs(t, err, spv.ErrInvalidBlockSignature)
	assert.Equal(t, []int64{1200}, v.Epochs())
}

func TestConcurrentDuplicateUpdates(t *testing.T) {
	v := newTracking(t, spv.WithVerifyWorkers(2))
	b := boundary(2400)
	supporting := endorse(b, 1200, seq(12)...)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- v.UpdateEpoch(b, supporting)
		}()
	}
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = v.Epochs()
			_, _ = v.Producers(2400)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, []int64{1200, 2400}, v.Epochs())
}

func TestErrorMessages(t *testing.T) {
	err := spv.InvalidSPVStartBlockError{Number: 5}
	assert.Equal(t, "invalid spv start block 5", err.Error())
	assert.True(t, errors.Is(err, spv.ErrMisalignedBlock))
	witnessErr := spv.BlockWitnessError{Number: 7, Reason: "valid witness not enough 3", Err: spv.ErrQuorumNotMet}
	assert.Equal(t, "block 7: valid witness not enough 3", witnessErr.Error())
}

func TestParallelVerify(t *testing.T) {
	metrics := pipeline.NewMetrics()
	v := newTracking(t, spv.WithVerifyWorkers(4), spv.WithMetrics(metrics))
	b := boundary(2400)
	supporting := endorse(b, 1200, seq(12)...)

	// two forged blocks; the first one is reported
	for _, idx := range []int{9, 4} {
		forged := *supporting[idx]
		forged.Head.Witness = committee(1200)[16].ID()
		supporting[idx] = &forged
	}
	err := v.UpdateEpoch(b, supporting)
	require.ErrorIs(t, err, spv.ErrInvalidBlockSignature)
	var verifyErr chain.BlockVerifyError
	require.ErrorAs(t, err, &verifyErr)
	assert.Equal(t, int64(2405), verifyErr.Number)
	assert.Equal(t, uint64(2), metrics.Stats().VerifyErrors)

	require.NoError(t, v.UpdateEpoch(b, endorse(b, 1200, seq(12)...)))
	assert.Equal(t, []int64{1200, 2400}, v.Epochs())
	assert.Equal(t, uint64(2), metrics.Stats().Batches)
}

func TestInitFromRPCBlock(t *testing.T) {
	checkpoint, err := chain.NewBlockFromJSON(testdata.CheckpointBlockJSON)
	require.NoError(t, err)
	config := spv.DefaultConfig()
	config.VerifierNum = 1
	v, err := spv.Init(checkpoint, spv.WithConfig(config), spv.WithLogger(discardLogger))
	require.NoError(t, err)
	producers, ok := v.Producers(testdata.CheckpointNumber)
	require.True(t, ok)
	assert.Equal(t, []string{testdata.CheckpointWitness}, producers)

	// the mainnet committee size does not match the announced list
	_, err = spv.Init(checkpoint, spv.WithLogger(discardLogger))
	require.ErrorIs(t, err, spv.ErrBlock)
}
