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
	"fmt"

	xdr3 "github.com/stellar/go-xdr/xdr3"
	"github.com/stellar/go/xdr"

	"perun.network/perun-channel-core/channel/types"
	wtypes "perun.network/perun-channel-core/wallet/types"
	"perun.network/perun-channel-core/wire/scval"
)

const (
	SymbolParamsA         xdr.ScSymbol = "a"
	SymbolParamsB         xdr.ScSymbol = "b"
	SymbolParamsChannelID xdr.ScSymbol = "channel_id"
)

// Params is the immutable identity part of a stored channel record: the
// free-form identifier and the two party addresses. Party A is the creator.
type Params struct {
	A         xdr.ScBytes
	B         xdr.ScBytes
	ChannelID xdr.ScBytes
}

// ToScVal converts Params to an xdr.ScVal.
func (p Params) ToScVal() (xdr.ScVal, error) {
	if len(p.ChannelID) < types.MinIDLength || len(p.ChannelID) > types.MaxIDLength {
		return xdr.ScVal{}, errors.New("invalid channel id length")
	}
	if len(p.A) != wtypes.AddressLength || len(p.B) != wtypes.AddressLength {
		return xdr.ScVal{}, errors.New("invalid party address length")
	}
	a, err := scval.WrapScBytes(p.A)
	if err != nil {
		return xdr.ScVal{}, err
	}
	b, err := scval.WrapScBytes(p.B)
	if err != nil {
		return xdr.ScVal{}, err
	}
	channelID, err := scval.WrapScBytes(p.ChannelID)
	if err != nil {
		return xdr.ScVal{}, err
	}
	m, err := MakeSymbolScMap(
		[]xdr.ScSymbol{
			SymbolParamsA,
			SymbolParamsB,
			SymbolParamsChannelID,
		},
		[]xdr.ScVal{a, b, channelID},
	)
	if err != nil {
		return xdr.ScVal{}, err
	}
	return scval.WrapScMap(m)
}

// FromScVal converts an xdr.ScVal to Params.
func (p *Params) FromScVal(v xdr.ScVal) error {
	m, ok := v.GetMap()
	if !ok {
		return errors.New("expected map")
	}
	if len(*m) != 3 { //nolint:gomnd
		return errors.New("expected map of length 3")
	}
	aVal, err := GetScMapValueFromSymbol(SymbolParamsA, *m)
	if err != nil {
		return err
	}
	a, ok := aVal.GetBytes()
	if !ok {
		return errors.New("expected bytes")
	}
	bVal, err := GetScMapValueFromSymbol(SymbolParamsB, *m)
	if err != nil {
		return err
	}
	b, ok := bVal.GetBytes()
	if !ok {
		return errors.New("expected bytes")
	}
	channelIDVal, err := GetScMapValueFromSymbol(SymbolParamsChannelID, *m)
	if err != nil {
		return err
	}
	channelID, ok := channelIDVal.GetBytes()
	if !ok {
		return errors.New("expected bytes")
	}
	if len(channelID) < types.MinIDLength || len(channelID) > types.MaxIDLength {
		return errors.New("invalid channel id length")
	}
	if len(a) != wtypes.AddressLength || len(b) != wtypes.AddressLength {
		return errors.New("invalid party address length")
	}
	p.A = a
	p.B = b
	p.ChannelID = channelID
	return nil
}

// EncodeTo encodes Params to an xdr.Encoder.
func (p Params) EncodeTo(e *xdr3.Encoder) error {
	v, err := p.ToScVal()
	if err != nil {
		return err
	}
	return v.EncodeTo(e)
}

// DecodeFrom decodes Params from an xdr.Decoder.
func (p *Params) DecodeFrom(d *xdr3.Decoder) (int, error) {
	var v xdr.ScVal
	i, err := d.Decode(&v)
	if err != nil {
		return i, err
	}
	return i, p.FromScVal(v)
}

// MarshalBinary encodes Params to a binary format.
func (p Params) MarshalBinary() ([]byte, error) {
	buf := bytes.Buffer{}
	e := xdr3.NewEncoder(&buf)
	err := p.EncodeTo(e)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes Params from a binary format.
func (p *Params) UnmarshalBinary(data []byte) error {
	d := xdr3.NewDecoder(bytes.NewReader(data))
	_, err := p.DecodeFrom(d)
	return err
}

// ParamsFromScVal converts an xdr.ScVal to Params.
func ParamsFromScVal(v xdr.ScVal) (Params, error) {
	var p Params
	err := (&p).FromScVal(v)
	return p, err
}

// MakeParams converts a channel key to its wire representation.
func MakeParams(key types.ChannelKey) (Params, error) {
	if len(key.ID) < types.MinIDLength || len(key.ID) > types.MaxIDLength {
		return Params{}, fmt.Errorf("invalid channel id length: %d", len(key.ID))
	}
	a, err := key.PartyA.MarshalBinary()
	if err != nil {
		return Params{}, err
	}
	b, err := key.PartyB.MarshalBinary()
	if err != nil {
		return Params{}, err
	}
	id := make([]byte, len(key.ID))
	copy(id, key.ID)
	return Params{A: a, B: b, ChannelID: id}, nil
}

// ToChannelKey converts wire Params back to a channel key.
func ToChannelKey(p Params) (types.ChannelKey, error) {
	var a, b wtypes.Participant
	if err := a.UnmarshalBinary(p.A); err != nil {
		return types.ChannelKey{}, err
	}
	if err := b.UnmarshalBinary(p.B); err != nil {
		return types.ChannelKey{}, err
	}
	id := make([]byte, len(p.ChannelID))
	copy(id, p.ChannelID)
	return types.MakeKey(id, a, b), nil
}
