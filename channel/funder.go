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

package channel

import (
	"context"
	"errors"
	"math/big"

	"perun.network/perun-channel-core/channel/types"
	"perun.network/perun-channel-core/event"
	wtypes "perun.network/perun-channel-core/wallet/types"
)

// Create opens a new channel between the caller and partyB and escrows the
// caller's initial deposit atomically with the insert. The caller is
// recorded as party A in the channel key; all later party-bound operations
// embed the caller the same way, so only the creator's calls resolve the
// entry.
func (h *Hub) Create(ctx context.Context, caller wtypes.Participant, id []byte, partyB wtypes.Participant, deposit *big.Int) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := validateChannelID(id); err != nil {
		return err
	}
	if err := validateParties(caller, partyB); err != nil {
		return err
	}
	if err := validateDeposit(deposit); err != nil {
		return err
	}
	key := types.MakeKey(id, caller, partyB)
	if _, err := h.reg.Get(key); err == nil {
		return types.ErrChannelExists
	} else if !errors.Is(err, types.ErrChannelNotFound) {
		return err
	}
	if err := h.checkEscrowCovers(); err != nil {
		return err
	}
	if err := h.cb.Deposit(ctx, caller, deposit); err != nil {
		return err
	}
	st := types.NewChannelState(deposit)
	if err := h.reg.InsertIfAbsent(key, st); err != nil {
		return err
	}
	h.Log().Debugf("channel created: %s, deposit %v", key.MapKey(), deposit)
	h.publish(event.TypeOpen, key, st)
	return nil
}

// Fund tops up an open channel. The amount is added, with overflow checks,
// to both the total deposit and party A's balance only: funding always
// credits the channel's creator, never the counterparty.
func (h *Hub) Fund(ctx context.Context, caller wtypes.Participant, id []byte, partyB wtypes.Participant, amount *big.Int) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := validateChannelID(id); err != nil {
		return err
	}
	if err := validateDeposit(amount); err != nil {
		return err
	}
	key := types.MakeKey(id, caller, partyB)
	st, err := h.reg.Get(key)
	if err != nil {
		return err
	}
	if !st.Open {
		return types.ErrChannelClosed
	}
	newTotal, ok := types.CheckedAdd(st.TotalDeposited, amount)
	if !ok {
		return types.ErrBalanceOverflow
	}
	newBalA, ok := types.CheckedAdd(st.BalA, amount)
	if !ok {
		return types.ErrBalanceOverflow
	}
	if err := h.checkEscrowCovers(); err != nil {
		return err
	}
	if err := h.cb.Deposit(ctx, caller, amount); err != nil {
		return err
	}
	st.TotalDeposited = newTotal
	st.BalA = newBalA
	if err := h.reg.Replace(key, st); err != nil {
		return err
	}
	h.Log().Debugf("channel funded: %s, amount %v", key.MapKey(), amount)
	h.publish(event.TypeFund, key, st)
	return nil
}
