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
	"encoding/hex"
	"math/big"

	wtypes "perun.network/perun-channel-core/wallet/types"
)

const (
	// MinIDLength is the minimum channel identifier length in bytes.
	MinIDLength = 1
	// MaxIDLength is the maximum channel identifier length in bytes.
	MaxIDLength = 32
)

// ChannelKey is the unique handle of a channel. PartyA is always the identity
// that issued the creating call; the key is the only place that records the
// initiator role, so every party-bound lookup embeds the caller.
type ChannelKey struct {
	ID     []byte
	PartyA wtypes.Participant
	PartyB wtypes.Participant
}

// MakeKey assembles a channel key from an identifier and two participants.
func MakeKey(id []byte, partyA, partyB wtypes.Participant) ChannelKey {
	return ChannelKey{ID: id, PartyA: partyA, PartyB: partyB}
}

// MapKey returns the registry key, the hex encoding of
// ID || PartyA || PartyB.
func (k ChannelKey) MapKey() string {
	b := make([]byte, 0, len(k.ID)+2*wtypes.AddressLength)
	b = append(b, k.ID...)
	b = append(b, k.PartyA.Addr[:]...)
	b = append(b, k.PartyB.Addr[:]...)
	return hex.EncodeToString(b)
}

// ChannelState is the mutable per-channel record. While the channel is open,
// BalA + BalB == TotalDeposited and both are within [0, MaxBalance]; once
// closed, all amounts are zero. Entries are never deleted, closure is
// recorded in place.
type ChannelState struct {
	// TotalDeposited is the total locked and not yet withdrawn.
	TotalDeposited *big.Int
	// BalA and BalB are the parties' currently claimable amounts.
	BalA *big.Int
	BalB *big.Int
	// Open is cleared exactly once, on close.
	Open bool
	// DisputeDeadline is the height at which a pending unilateral close
	// becomes finalizable, 0 while no dispute is pending.
	DisputeDeadline uint64
	// Nonce is a state-version counter reserved for replay protection. No
	// operation reads or advances it.
	Nonce uint64
}

// NewChannelState returns the state of a freshly created channel with the
// initiator's deposit fully credited to party A.
func NewChannelState(deposit *big.Int) ChannelState {
	return ChannelState{
		TotalDeposited: new(big.Int).Set(deposit),
		BalA:           new(big.Int).Set(deposit),
		BalB:           new(big.Int),
		Open:           true,
	}
}

// Clone returns a deep copy of the state.
func (s ChannelState) Clone() ChannelState {
	c := s
	c.TotalDeposited = new(big.Int).Set(s.TotalDeposited)
	c.BalA = new(big.Int).Set(s.BalA)
	c.BalB = new(big.Int).Set(s.BalB)
	return c
}

// Zero overwrites the record with the terminal closed state.
func (s *ChannelState) Zero() {
	s.TotalDeposited = new(big.Int)
	s.BalA = new(big.Int)
	s.BalB = new(big.Int)
	s.Open = false
	s.DisputeDeadline = 0
	s.Nonce = 0
}
