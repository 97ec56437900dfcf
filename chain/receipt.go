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

package chain

import (
	"encoding/json"
)

// FuncNameWitnessStat tags the receipt that carries the producer vote result
const FuncNameWitnessStat = "vote_producer.iost/stat"

// Receipt is an event emitted by a contract call
type Receipt struct {
	FuncName string `json:"funcName"`
	Content  string `json:"content"`
}

type TxReceiptStatus struct {
	Code    int32  `json:"code"`
	Message string `json:"message"`
}

// TxReceipt is the execution result of the transaction at the same position
// in the block
type TxReceipt struct {
	TxHash   string                 `json:"txHash"`
	GasUsage json.Number            `json:"gasUsage"`
	RAMUsage map[string]json.Number `json:"ramUsage"`
	Status   TxReceiptStatus        `json:"status"`
	Returns  []string               `json:"returns"`
	Receipts []Receipt              `json:"receipts"`
}

// WitnessStatus is the producer vote result. PendingList is the producer set
// for the next epoch
type WitnessStatus struct {
	PendingList []string `json:"pendingList"`
	CurrentList []string `json:"currentList"`
}

// WitnessStatusFromBlock returns the first witness stat receipt in the block
// that decodes. Candidates that fail to decode are skipped
func WitnessStatusFromBlock(b *Block) (*WitnessStatus, bool) {
	for _, txReceipt := range b.Receipts {
		for _, receipt := range txReceipt.Receipts {
			if receipt.FuncName != FuncNameWitnessStat {
				continue
			}
			var ws WitnessStatus
			if err := json.Unmarshal([]byte(receipt.Content), &ws); err != nil {
				continue
			}
			return &ws, true
		}
	}
	return nil, false
}

// NewWitnessStatReceipt builds a stat receipt announcing pending as the next
// producer set
func NewWitnessStatReceipt(pending, current []string) (Receipt, error) {
	content, err := json.Marshal(WitnessStatus{
		PendingList: pending,
		CurrentList: current,
	})
	if err != nil {
		return Receipt{}, err
	}
	return Receipt{
		FuncName: FuncNameWitnessStat,
		Content:  string(content),
	}, nil
}
