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
	"fmt"
	"math/big"

	"perun.network/perun-channel-core/channel/types"
)

// MakeSettlementMessage builds the canonical byte message both parties sign
// to settle a channel: the channel identifier followed by the two balances in
// fixed 16-byte big-endian encoding. Any change to this layout invalidates
// previously exchanged signatures.
func MakeSettlementMessage(id []byte, balA, balB *big.Int) ([]byte, error) {
	if len(id) < types.MinIDLength || len(id) > types.MaxIDLength {
		return nil, fmt.Errorf("invalid channel id length: %d", len(id))
	}
	if !types.ValidBalance(balA) || !types.ValidBalance(balB) {
		return nil, fmt.Errorf("balance out of range")
	}
	msg := make([]byte, len(id)+2*BalanceLength)
	copy(msg, id)
	balA.FillBytes(msg[len(id) : len(id)+BalanceLength])
	balB.FillBytes(msg[len(id)+BalanceLength:])
	return msg, nil
}
