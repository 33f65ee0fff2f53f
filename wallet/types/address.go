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

package types

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"perun.network/go-perun/wallet"
)

// AddressLength is the length of the binary representation of a Participant,
// in bytes.
const AddressLength = common.AddressLength

// Participant is one of the two identities bound to a payment channel. It is
// the 20-byte address derived from the participant's secp256k1 public key.
// Signature verification recovers the key from the signature and compares the
// derived address, so no public key is stored alongside it.
type Participant struct {
	Addr common.Address
}

var _ wallet.Address = (*Participant)(nil)

// NewParticipant creates a Participant from an address.
func NewParticipant(addr common.Address) *Participant {
	return &Participant{Addr: addr}
}

// ZeroAddress returns the all-zero participant.
func ZeroAddress() (*Participant, error) {
	return &Participant{}, nil
}

// Equal compares two participants for equality.
func (p *Participant) Equal(addr wallet.Address) bool {
	other, ok := addr.(*Participant)
	if !ok {
		return false
	}
	return p.Addr == other.Addr
}

// Cmp orders participants by their binary representation.
func (p *Participant) Cmp(other Participant) int {
	return bytes.Compare(p.Addr[:], other.Addr[:])
}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (p Participant) MarshalBinary() ([]byte, error) {
	data := make([]byte, AddressLength)
	copy(data, p.Addr[:])
	return data, nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (p *Participant) UnmarshalBinary(data []byte) error {
	if len(data) != AddressLength {
		return fmt.Errorf("invalid participant size: %d", len(data))
	}
	copy(p.Addr[:], data)
	return nil
}

// String returns the hex representation of the participant address.
func (p Participant) String() string {
	return p.Addr.Hex()
}

// AsParticipant converts a wallet.Address to a Participant, panicking on
// foreign address types.
func AsParticipant(address wallet.Address) *Participant {
	p, ok := address.(*Participant)
	if !ok {
		panic("address has invalid type")
	}
	return p
}
