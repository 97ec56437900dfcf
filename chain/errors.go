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
	"errors"
	"fmt"
)

var (
	ErrInvalidWitness            = errors.New("invalid witness identity")
	ErrInvalidSignatureEncoding  = errors.New("invalid signature encoding")
	ErrSignatureMismatch         = errors.New("signature does not match")
	ErrInvalidSignature          = errors.New("invalid signer signature")
	ErrInvalidPublisherSignature = errors.New("invalid publisher signature")

	// ErrBlockVerify matches any BlockVerifyError or TxReceiptCountError
	ErrBlockVerify = errors.New("block verification failed")
)

// BlockVerifyError is returned when a block signature does not verify
type BlockVerifyError struct {
	Number    int64
	Signature string
	Err       error
}

func (e BlockVerifyError) Error() string {
	return fmt.Sprintf(
		"the signature of block %d is wrong (%s): %v",
		e.Number,
		e.Signature,
		e.Err,
	)
}

func (e BlockVerifyError) Unwrap() error { return e.Err }

func (BlockVerifyError) Is(target error) bool {
	return target == ErrBlockVerify
}

// TxReceiptCountError is returned when a block's transactions and receipts
// cannot be paired by position
type TxReceiptCountError struct {
	Number   int64
	Txs      int
	Receipts int
}

func (e TxReceiptCountError) Error() string {
	return fmt.Sprintf(
		"block %d: tx len %d does not match receipt len %d",
		e.Number,
		e.Txs,
		e.Receipts,
	)
}

func (TxReceiptCountError) Is(target error) bool {
	return target == ErrBlockVerify
}
