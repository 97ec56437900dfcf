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

// Package goiost provides named IOST network definitions. The verifier lives
// in the spv package, the header model in chain.
package goiost

import "github.com/blinklabs-io/goiost/spv"

// Network definitions
var (
	NetworkMainnet = Network{
		Name:    "mainnet",
		ChainId: 1024,
	}
	NetworkTestnet = Network{
		Name:    "testnet",
		ChainId: 1023,
	}
	NetworkLocalnet = Network{
		Name:    "localnet",
		ChainId: 1020,
	}

	NetworkInvalid = Network{
		Name:    "invalid",
		ChainId: 0,
	} // NetworkInvalid is used as a return value for lookup functions when a network isn't found
)

// List of valid networks for use in lookup functions
var networks = []Network{
	NetworkMainnet,
	NetworkTestnet,
	NetworkLocalnet,
}

// NetworkByName returns a predefined network by name
func NetworkByName(name string) Network {
	for _, network := range networks {
		if network.Name == name {
			return network
		}
	}
	return NetworkInvalid
}

// NetworkByChainId returns a predefined network by chain ID
func NetworkByChainId(chainId uint32) Network {
	for _, network := range networks {
		if network.ChainId == chainId {
			return network
		}
	}
	return NetworkInvalid
}

// Network represents an IOST network
type Network struct {
	Name    string
	ChainId uint32 // chain ID signed into transactions
	// Committee parameters. Zero values select the spv defaults
	VoteInterval int64
	VerifierNum  int
}

// SPVConfig returns the verifier configuration for the network
func (n Network) SPVConfig() spv.Config {
	config := spv.DefaultConfig()
	if n.VoteInterval > 0 {
		config.VoteInterval = n.VoteInterval
	}
	if n.VerifierNum > 0 {
		config.VerifierNum = n.VerifierNum
	}
	return config
}

func (n Network) String() string {
	return n.Name
}
