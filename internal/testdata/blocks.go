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

// Package testdata provides shared block data for tests and benchmarks.
package testdata

import (
	_ "embed"
	"encoding/hex"
	"strings"
)

// Epoch boundary block at 12000 in node RPC layout, produced by the key
// 2yquS3ySrGWPEKywCPzX4RTJugqRh7kJSo5aehsLYPEWkUxBWA39oMrZ7ZxuM4fgyXYs2cPwh5n8aNNpH5x2VyK1
// Its stat receipt names the producer as the only pending witness
//
//go:embed checkpoint_block.json
var CheckpointBlockJSON []byte

const (
	CheckpointNumber  = 12000
	CheckpointWitness = "Gcv8c2tH8qZrUYnKdEEdTtASsxivic2834MQW6mgxqto"
	// SHA3-256 of the canonical header bytes
	CheckpointHeadHashHex  = "8ecae8f3a970a7bb16680f1f399a147856be4617ca37fe0ff9baa288e7817ebc"
	CheckpointHeadBytesHex = "0100000000000000" +
		"20a3b194fe816af8826c6ed8ddf26da386ebd53136420ac129a4343d25caa4ba94" +
		"209748d38b009bde19398dce06ce209dcd8ddbde18a580853c9128cf9a11d1145f" +
		"204b915a34e9ecfff9f4aaf42abb2ee7e2a78642d8b30d81a17bb45104412ef407" +
		"00" +
		"e02e000000000000" +
		"2c476376386332744838715a7255596e4b6445456454744153737869766963323833344d5157366d677871746f" +
		"68395539af7f3016"
)

// MustDecodeHex decodes a hex string, ignoring whitespace, and panics on error
func MustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	if err != nil {
		panic("testdata: invalid hex: " + err.Error())
	}
	return b
}
