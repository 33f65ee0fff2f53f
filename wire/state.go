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
	SymbolStateTotalDeposited xdr.ScSymbol = "total_deposited"
	SymbolStateBalA           xdr.ScSymbol = "bal_a"
	SymbolStateBalB           xdr.ScSymbol = "bal_b"
	SymbolStateNonce          xdr.ScSymbol = "nonce"
)

// State is the financial part of a stored channel record. Balances are
// unsigned 128-bit values.
type State struct {
	TotalDeposited xdr.UInt128Parts
	BalA           xdr.UInt128Parts
	BalB           xdr.UInt128Parts
	Nonce          xdr.Uint64
}

// ToScVal converts a State to an xdr.ScVal.
func (s State) ToScVal() (xdr.ScVal, error) {
	total, err := scval.WrapUInt128Parts(s.TotalDeposited)
	if err != nil {
		return xdr.ScVal{}, err
	}
	balA, err := scval.WrapUInt128Parts(s.BalA)
	if err != nil {
		return xdr.ScVal{}, err
	}
	balB, err := scval.WrapUInt128Parts(s.BalB)
	if err != nil {
		return xdr.ScVal{}, err
	}
	nonce, err := scval.WrapUint64(s.Nonce)
	if err != nil {
		return xdr.ScVal{}, err
	}
	m, err := MakeSymbolScMap(
		[]xdr.ScSymbol{
			SymbolStateTotalDeposited,
			SymbolStateBalA,
			SymbolStateBalB,
			SymbolStateNonce,
		},
		[]xdr.ScVal{total, balA, balB, nonce},
	)
	if err != nil {
		return xdr.ScVal{}, err
	}
	return scval.WrapScMap(m)
}

// FromScVal converts an xdr.ScVal to a State.
func (s *State) FromScVal(v xdr.ScVal) error {
	m, ok := v.GetMap()
	if !ok {
		return errors.New("expected map")
	}
	if len(*m) != 4 { //nolint:gomnd
		return errors.New("expected map of length 4")
	}
	totalVal, err := GetScMapValueFromSymbol(SymbolStateTotalDeposited, *m)
	if err != nil {
		return err
	}
	total, ok := totalVal.GetU128()
	if !ok {
		return errors.New("expected u128")
	}
	balAVal, err := GetScMapValueFromSymbol(SymbolStateBalA, *m)
	if err != nil {
		return err
	}
	balA, ok := balAVal.GetU128()
	if !ok {
		return errors.New("expected u128")
	}
	balBVal, err := GetScMapValueFromSymbol(SymbolStateBalB, *m)
	if err != nil {
		return err
	}
	balB, ok := balBVal.GetU128()
	if !ok {
		return errors.New("expected u128")
	}
	nonceVal, err := GetScMapValueFromSymbol(SymbolStateNonce, *m)
	if err != nil {
		return err
	}
	nonce, ok := nonceVal.GetU64()
	if !ok {
		return errors.New("expected uint64")
	}
	s.TotalDeposited = total
	s.BalA = balA
	s.BalB = balB
	s.Nonce = nonce
	return nil
}

// EncodeTo encodes a State to an xdr.Encoder.
func (s State) EncodeTo(e *xdr3.Encoder) error {
	v, err := s.ToScVal()
	if err != nil {
		return err
	}
	return v.EncodeTo(e)
}

// DecodeFrom decodes a State from an xdr.Decoder.
func (s *State) DecodeFrom(d *xdr3.Decoder) (int, error) {
	var v xdr.ScVal
	i, err := d.Decode(&v)
	if err != nil {
		return i, err
	}
	return i, s.FromScVal(v)
}

// MarshalBinary encodes a State to a binary format.
func (s State) MarshalBinary() ([]byte, error) {
	buf := bytes.Buffer{}
	e := xdr3.NewEncoder(&buf)
	err := s.EncodeTo(e)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a State from a binary format.
func (s *State) UnmarshalBinary(data []byte) error {
	d := xdr3.NewDecoder(bytes.NewReader(data))
	_, err := s.DecodeFrom(d)
	return err
}

// StateFromScVal converts an xdr.ScVal to a State.
func StateFromScVal(v xdr.ScVal) (State, error) {
	var s State
	err := (&s).FromScVal(v)
	return s, err
}
