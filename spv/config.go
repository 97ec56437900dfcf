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
	"errors"
	"fmt"
)

const (
	// VoteInterval is the number of blocks in an epoch
	VoteInterval int64 = 1200
	// VerifierNum is the size of a producer set
	VerifierNum = 17
)

// Config holds the committee parameters. Zero Quorum and
// MaxSupportingBlocks select their derived defaults
type Config struct {
	VoteInterval        int64 `yaml:"voteInterval"`
	VerifierNum         int   `yaml:"verifierNum"`
	Quorum              int   `yaml:"quorum"`
	MaxSupportingBlocks int   `yaml:"maxSupportingBlocks"`
}

var ErrInvalidConfig = errors.New("invalid verifier config")

// DefaultConfig returns the mainnet committee parameters
func DefaultConfig() Config {
	return Config{
		VoteInterval: VoteInterval,
		VerifierNum:  VerifierNum,
	}
}

// QuorumSize returns the number of distinct producers needed to accept a
// block. Unless set explicitly it is the supermajority 2N/3+1, which is 12
// for 17 producers
func (c Config) QuorumSize() int {
	if c.Quorum > 0 {
		return c.Quorum
	}
	return 2*c.VerifierNum/3 + 1
}

// SupportingLimit returns the maximum accepted supporting chain length
func (c Config) SupportingLimit() int {
	if c.MaxSupportingBlocks > 0 {
		return c.MaxSupportingBlocks
	}
	return int(2 * c.VoteInterval)
}

// EpochStart returns the start of the epoch whose producers authorize the
// block at number. A block on a boundary belongs to the previous epoch
func (c Config) EpochStart(number int64) int64 {
	if number%c.VoteInterval == 0 {
		return number - c.VoteInterval
	}
	return number / c.VoteInterval * c.VoteInterval
}

func (c Config) Validate() error {
	if c.VoteInterval <= 0 {
		return fmt.Errorf("%w: vote interval %d", ErrInvalidConfig, c.VoteInterval)
	}
	if c.VerifierNum <= 0 {
		return fmt.Errorf("%w: verifier num %d", ErrInvalidConfig, c.VerifierNum)
	}
	if c.Quorum < 0 || c.QuorumSize() > c.VerifierNum {
		return fmt.Errorf(
			"%w: quorum %d for %d verifiers",
			ErrInvalidConfig,
			c.Quorum,
			c.VerifierNum,
		)
	}
	if c.MaxSupportingBlocks < 0 {
		return fmt.Errorf(
			"%w: max supporting blocks %d",
			ErrInvalidConfig,
			c.MaxSupportingBlocks,
		)
	}
	return nil
}
