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

package cbor

import (
	"errors"
	"reflect"

	_cbor "github.com/fxamacker/cbor/v2"
	"github.com/jinzhu/copier"
)

// Create an alias for RawMessage for convenience
type RawMessage = _cbor.RawMessage

// Useful for embedding and easier to remember
type StructAsArray struct {
	// Tells the CBOR decoder to convert to/from a struct and a CBOR array
	_ struct{} `cbor:",toarray"`
}

type DecodeStoreCborInterface interface {
	Cbor() []byte
}

type DecodeStoreCbor struct {
	cborData []byte
}

// Cbor returns the original CBOR for the object
func (d *DecodeStoreCbor) Cbor() []byte {
	return d.cborData
}

// SetCbor stores a copy of the original CBOR for the object
func (d *DecodeStoreCbor) SetCbor(cborData []byte) {
	if cborData == nil {
		d.cborData = nil
		return
	}
	d.cborData = make([]byte, len(cborData))
	copy(d.cborData, cborData)
}

// UnmarshalCborGeneric decodes the specified CBOR into the destination object without using the
// destination object's UnmarshalCBOR() function
func (d *DecodeStoreCbor) UnmarshalCborGeneric(
	cborData []byte,
	dest DecodeStoreCborInterface,
) error {
	tmpType, err := genericType(reflect.TypeOf(dest))
	if err != nil {
		return err
	}
	// Decode CBOR into temporary object
	tmpDest := reflect.New(tmpType)
	if _, err := Decode(cborData, tmpDest.Interface()); err != nil {
		return err
	}
	// Copy values from temporary object into destination object
	if err := copier.Copy(dest, tmpDest.Interface()); err != nil {
		return err
	}
	// This must be done after the copy above, which would otherwise wipe it
	d.SetCbor(cborData)
	return nil
}

// genericType returns a struct type with the exported fields of the struct
// pointed to by t, minus DecodeStoreCbor. The result has none of the
// original type's methods, so custom (un)marshalers are bypassed
func genericType(t reflect.Type) (reflect.Type, error) {
	if t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return nil, errors.New("destination must be a pointer to a struct")
	}
	typeElem := t.Elem()
	genericTypeCacheMutex.RLock()
	ret, ok := genericTypeCache[typeElem]
	genericTypeCacheMutex.RUnlock()
	if ok {
		return ret, nil
	}
	fields := []reflect.StructField{}
	for i := 0; i < typeElem.NumField(); i++ {
		tmpField := typeElem.Field(i)
		if tmpField.IsExported() && tmpField.Name != "DecodeStoreCbor" {
			fields = append(fields, tmpField)
		}
	}
	ret = reflect.StructOf(fields)
	genericTypeCacheMutex.Lock()
	genericTypeCache[typeElem] = ret
	genericTypeCacheMutex.Unlock()
	return ret, nil
}
