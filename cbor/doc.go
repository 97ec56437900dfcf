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

// Package cbor wraps github.com/fxamacker/cbor/v2 with the deterministic
// settings used for persisted verifier state.
//
// Records embed StructAsArray to encode as CBOR arrays. Types that need their
// original bytes back, such as stored epoch records, embed DecodeStoreCbor
// and implement UnmarshalCBOR with UnmarshalCborGeneric:
//
//	type Record struct {
//	    cbor.StructAsArray
//	    cbor.DecodeStoreCbor
//	    Start int64
//	}
//
//	func (r *Record) UnmarshalCBOR(data []byte) error {
//	    return r.UnmarshalCborGeneric(data, r)
//	}
//
// Encoding always sorts map keys (SortCoreDeterministic), so equal values
// produce identical bytes.
package cbor
