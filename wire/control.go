// Copyright 2025 PolyCrypt GmbH
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

package wire

import (
	"bytes"
	"errors"

	xdr3 "github.com/stellar/go-xdr/xdr3"
	"github.com/stellar/go/xdr"

	"perun.network/perun-channel-core/wire/scval"
)

const (
	SymbolControlOpen            xdr.ScSymbol = "open"
	SymbolControlDisputeDeadline xdr.ScSymbol = "dispute_deadline"
)

// Control is the lifecycle part of a stored channel record. DisputeDeadline
// is non-zero only while a unilateral close is pending.
type Control struct {
	Open            bool
	DisputeDeadline xdr.Uint64
}

// ToScVal converts a Control to an xdr.ScVal.
func (c Control) ToScVal() (xdr.ScVal, error) {
	open, err := scval.WrapBool(c.Open)
	if err != nil {
		return xdr.ScVal{}, err
	}
	deadline, err := scval.WrapUint64(c.DisputeDeadline)
	if err != nil {
		return xdr.ScVal{}, err
	}
	m, err := MakeSymbolScMap(
		[]xdr.ScSymbol{
			SymbolControlOpen,
			SymbolControlDisputeDeadline,
		},
		[]xdr.ScVal{open, deadline},
	)
	if err != nil {
		return xdr.ScVal{}, err
	}
	return scval.WrapScMap(m)
}

// FromScVal converts an xdr.ScVal to a Control.
func (c *Control) FromScVal(v xdr.ScVal) error {
	m, ok := v.GetMap()
	if !ok {
		return errors.New("expected map")
	}
	if len(*m) != 2 { //nolint:gomnd
		return errors.New("expected map of length 2")
	}
	openVal, err := GetScMapValueFromSymbol(SymbolControlOpen, *m)
	if err != nil {
		return err
	}
	open, ok := openVal.GetB()
	if !ok {
		return errors.New("expected bool")
	}
	deadlineVal, err := GetScMapValueFromSymbol(SymbolControlDisputeDeadline, *m)
	if err != nil {
		return err
	}
	deadline, ok := deadlineVal.GetU64()
	if !ok {
		return errors.New("expected uint64")
	}
	c.Open = open
	c.DisputeDeadline = deadline
	return nil
}

// EncodeTo encodes a Control to an xdr.Encoder.
func (c Control) EncodeTo(e *xdr3.Encoder) error {
	v, err := c.ToScVal()
	if err != nil {
		return err
	}
	return v.EncodeTo(e)
}

// DecodeFrom decodes a Control from an xdr.Decoder.
func (c *Control) DecodeFrom(d *xdr3.Decoder) (int, error) {
	var v xdr.ScVal
	i, err := d.Decode(&v)
	if err != nil {
		return i, err
	}
	return i, c.FromScVal(v)
}

// MarshalBinary encodes a Control to a binary format.
func (c Control) MarshalBinary() ([]byte, error) {
	buf := bytes.Buffer{}
	e := xdr3.NewEncoder(&buf)
	err := c.EncodeTo(e)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a Control from a binary format.
func (c *Control) UnmarshalBinary(data []byte) error {
	d := xdr3.NewDecoder(bytes.NewReader(data))
	_, err := c.DecodeFrom(d)
	return err
}

// ControlFromScVal converts an xdr.ScVal to a Control.
func ControlFromScVal(v xdr.ScVal) (Control, error) {
	var c Control
	err := (&c).FromScVal(v)
	return c, err
}
