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

package chain_test

import (
	"encoding/json"
	"testing"

	"github.com/blinklabs-io/goiost/chain"
	"github.com/blinklabs-io/goiost/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockVerifySelf(t *testing.T) {
	kps := test.WitnessKeys("block", 17)
	b := test.NewStatBlock(nil, 1200, kps[0], test.WitnessIDs(kps))
	require.NoError(t, b.VerifySelf())

	b.Txs = b.Txs[:0]
	err := b.VerifySelf()
	require.ErrorIs(t, err, chain.ErrBlockVerify)
	var countErr chain.TxReceiptCountError
	require.ErrorAs(t, err, &countErr)
	assert.Equal(t, 0, countErr.Txs)
	assert.Equal(t, 1, countErr.Receipts)
}

func TestWitnessStatusFromBlock(t *testing.T) {
	kps := test.WitnessKeys("stat", 17)
	ids := test.WitnessIDs(kps)

	testDefs := []struct {
		name     string
		receipts []chain.TxReceipt
		found    bool
	}{
		{
			name:     "no receipts",
			receipts: nil,
		},
		{
			name: "other function",
			receipts: []chain.TxReceipt{{Receipts: []chain.Receipt{
				{FuncName: "token.iost/transfer", Content: `{"pendingList":["x"]}`},
			}}},
		},
		{
			name: "undecodable stat",
			receipts: []chain.TxReceipt{{Receipts: []chain.Receipt{
				{FuncName: chain.FuncNameWitnessStat, Content: `[1,2`},
			}}},
		},
		{
			name: "second candidate decodes",
			receipts: []chain.TxReceipt{
				{Receipts: []chain.Receipt{
					{FuncName: chain.FuncNameWitnessStat, Content: `"oops"`},
				}},
				{Receipts: []chain.Receipt{
					{FuncName: "token.iost/transfer", Content: `[]`},
					mustStatReceipt(t, ids),
				}},
			},
			found: true,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			b := &chain.Block{Receipts: testDef.receipts}
			ws, ok := chain.WitnessStatusFromBlock(b)
			require.Equal(t, testDef.found, ok)
			if testDef.found {
				assert.Equal(t, ids, ws.PendingList)
				assert.Equal(t, ids, ws.CurrentList)
			} else {
				assert.Nil(t, ws)
			}
		})
	}
}

func mustStatReceipt(t *testing.T, pending []string) chain.Receipt {
	t.Helper()
	r, err := chain.NewWitnessStatReceipt(pending, pending)
	require.NoError(t, err)
	return r
}

func TestBlockJSONRoundTrip(t *testing.T) {
	kps := test.WitnessKeys("json", 17)
	b := test.NewStatBlock([]byte{1, 2, 3}, 2400, kps[3], test.WitnessIDs(kps))
	data, err := json.Marshal(b)
	require.NoError(t, err)

	decoded, err := chain.NewBlockFromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, b.Hash(), decoded.Hash())
	assert.Equal(t, b.Sign, decoded.Sign)
	require.NoError(t, decoded.VerifySelf())
	ws, ok := chain.WitnessStatusFromBlock(decoded)
	require.True(t, ok)
	assert.Len(t, ws.PendingList, 17)
}

func TestNewBlockFromJSONRPCLayout(t *testing.T) {
	data := []byte(`{
		"head": {
			"version": "1",
			"parent_hash": "AQID",
			"tx_merkle_hash": "",
			"tx_receipt_merkle_hash": "",
			"info": "",
			"number": "2401",
			"witness": "Gcv8c2tH8qZrUYnKdEEdTtASsxivic2834MQW6mgxqto",
			"time": "1598918258274417000"
		},
		"sign": {"algorithm": 2, "sig": "AAAA", "pub_key": ""},
		"receipts": [{
			"txHash": "h",
			"gasUsage": 1.5,
			"ramUsage": {"admin": "12"},
			"status": {"code": 0, "message": ""},
			"returns": ["[]"],
			"receipts": [{"funcName": "vote_producer.iost/stat", "content": "{\"pendingList\":[\"a\"],\"currentList\":[]}"}]
		}],
		"txs": [{
			"time": "1598918258274417000",
			"expiration": "1598918348274417000",
			"gasRatio": "1",
			"gasLimit": 1000000,
			"delay": "0",
			"chain_id": 1024,
			"actions": [{"contract": "token.iost", "action_name": "transfer", "data": "[]"}],
			"amountLimit": [{"token": "*", "value": "unlimited"}],
			"publisher": "admin",
			"publishSigns": [{"algorithm": 2, "sig": "c2ln", "pub_key": "cGs="}],
			"signers": []
		}],
		"txHashes": ["h"],
		"receiptHashes": ["r"],
		"blockType": "NORMAL"
	}`)
	b, err := chain.NewBlockFromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, int64(2401), b.Number())
	assert.Equal(t, []byte{1, 2, 3}, b.Head.ParentHash)
	assert.Equal(t, int64(1598918258274417000), b.Head.Time)
	require.Len(t, b.Txs, 1)
	tx := b.Txs[0]
	assert.Equal(t, 1.0, tx.GasRatio)
	assert.Equal(t, uint32(1024), tx.ChainID)
	assert.Equal(t, "transfer", tx.Actions[0].ActionName)
	require.Len(t, tx.PublisherSigs, 1)
	assert.Equal(t, "ED25519", tx.PublisherSigs[0].Algorithm)
	assert.Equal(t, "c2ln", tx.PublisherSigs[0].Signature)
	assert.Equal(t, "cGs=", tx.PublisherSigs[0].PublicKey)

	ws, ok := chain.WitnessStatusFromBlock(b)
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, ws.PendingList)

	// the signature is garbage
	assert.ErrorIs(t, b.VerifySelf(), chain.ErrBlockVerify)

	_, err = chain.NewBlockFromJSON([]byte(`{"head": []}`))
	assert.Error(t, err)
}
