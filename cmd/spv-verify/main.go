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

package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/blinklabs-io/goiost/cmd/common"
	"github.com/blinklabs-io/goiost/spv"
	"github.com/blinklabs-io/goiost/storage"
	"github.com/blinklabs-io/goiost/storage/memory"
	"github.com/blinklabs-io/goiost/storage/pebble"
)

type fileList []string

func (l *fileList) String() string {
	return strings.Join(*l, ",")
}

func (l *fileList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

type spvVerifyFlags struct {
	*common.GlobalFlags
	checkpoint   string
	snapshot     string
	saveSnapshot string
	updates      fileList
	checks       fileList
	workers      int
}

func main() {
	// Parse commandline
	f := spvVerifyFlags{
		GlobalFlags: common.NewGlobalFlags(),
	}
	f.Flagset.StringVar(
		&f.checkpoint,
		"checkpoint",
		"",
		"JSON file with the trusted epoch boundary block",
	)
	f.Flagset.StringVar(
		&f.snapshot,
		"snapshot",
		"",
		"restore tracked epochs from a snapshot file",
	)
	f.Flagset.StringVar(
		&f.saveSnapshot,
		"save-snapshot",
		"",
		"write tracked epochs to a snapshot file on exit",
	)
	f.Flagset.Var(
		&f.updates,
		"update",
		"JSON file with an epoch boundary block followed by its supporting blocks (repeatable)",
	)
	f.Flagset.Var(
		&f.checks,
		"check",
		"JSON file with a block followed by its supporting blocks (repeatable)",
	)
	f.Flagset.IntVar(
		&f.workers,
		"workers",
		runtime.NumCPU(),
		"number of parallel signature verification workers",
	)
	f.Parse()

	store, err := openStore(f)
	if err != nil {
		fmt.Printf("ERROR: failed to open store: %s\n", err)
		os.Exit(1)
	}
	defer store.Close()

	v, err := newVerifier(f, store)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		store.Close()
		os.Exit(1)
	}
	if err := run(f, v); err != nil {
		fmt.Printf("ERROR: %s\n", err)
		store.Close()
		os.Exit(1)
	}
}

func openStore(f spvVerifyFlags) (storage.EpochStore, error) {
	if f.StoreDir == "" {
		return memory.New(), nil
	}
	return pebble.Open(f.StoreDir, f.Logger)
}

func newVerifier(f spvVerifyFlags, store storage.EpochStore) (*spv.Verifier, error) {
	opts := []spv.VerifierOptionFunc{
		spv.WithLogger(f.Logger),
		spv.WithStore(store),
		spv.WithVerifyWorkers(f.workers),
	}
	if f.snapshot != "" {
		data, err := os.ReadFile(f.snapshot)
		if err != nil {
			return nil, fmt.Errorf("read snapshot: %w", err)
		}
		// A config file overrides the parameters stored in the snapshot
		if f.ConfigFile != "" {
			opts = append(opts, spv.WithConfig(f.Config))
		}
		return spv.Restore(data, opts...)
	}
	opts = append(opts, spv.WithConfig(f.Config))
	v, err := spv.Load(store, opts...)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, spv.ErrNoEpochs) {
		return nil, err
	}
	if f.checkpoint == "" {
		return nil, errors.New("store is empty and no checkpoint was given")
	}
	blocks, err := common.ReadBlocks(f.checkpoint)
	if err != nil {
		return nil, err
	}
	return spv.Init(blocks[0], opts...)
}

func run(f spvVerifyFlags, v *spv.Verifier) error {
	for _, path := range f.updates {
		blocks, err := common.ReadBlocks(path)
		if err != nil {
			return err
		}
		if err := v.UpdateEpoch(blocks[0], blocks[1:]); err != nil {
			return fmt.Errorf("epoch rejected: %w", err)
		}
		fmt.Printf("epoch %d: accepted\n", blocks[0].Number())
	}
	for _, path := range f.checks {
		blocks, err := common.ReadBlocks(path)
		if err != nil {
			return err
		}
		if err := v.CheckBlock(blocks[0], blocks[1:]); err != nil {
			return fmt.Errorf("block rejected: %w", err)
		}
		fmt.Printf(
			"block %d (%s): accepted\n",
			blocks[0].Number(),
			blocks[0].Head.String(),
		)
	}
	if latest, ok := v.LatestEpoch(); ok {
		fmt.Printf("latest epoch = %d, tracked epochs = %d\n", latest, len(v.Epochs()))
	}
	if f.saveSnapshot != "" {
		data, err := v.Snapshot()
		if err != nil {
			return err
		}
		if err := os.WriteFile(f.saveSnapshot, data, 0o600); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
	}
	return nil
}
