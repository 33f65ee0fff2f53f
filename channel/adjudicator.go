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
	"math/big"

	"perun.network/perun-channel-core/channel/types"
	"perun.network/perun-channel-core/client"
	"perun.network/perun-channel-core/event"
	wtypes "perun.network/perun-channel-core/wallet/types"
	"perun.network/perun-channel-core/wire"
)

// Close settles an open channel cooperatively. Both parties must have signed
// the canonical settlement message over the proposed split, which must sum
// to the total deposit. Funds are paid out atomically with zeroing the
// record; the closed state is terminal.
func (h *Hub) Close(ctx context.Context, caller wtypes.Participant, id []byte, partyB wtypes.Participant, balA, balB *big.Int, sigA, sigB []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := validateChannelID(id); err != nil {
		return err
	}
	if err := validateBalance(balA); err != nil {
		return err
	}
	if err := validateBalance(balB); err != nil {
		return err
	}
	if err := validateSig(sigA); err != nil {
		return err
	}
	if err := validateSig(sigB); err != nil {
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
	if new(big.Int).Add(balA, balB).Cmp(st.TotalDeposited) != 0 {
		return types.ErrInsufficientFunds
	}
	msg, err := wire.MakeSettlementMessage(id, balA, balB)
	if err != nil {
		return err
	}
	if err := h.verifySettlement(msg, sigA, &key.PartyA); err != nil {
		return err
	}
	if err := h.verifySettlement(msg, sigB, &key.PartyB); err != nil {
		return err
	}
	return h.settle(ctx, event.TypeClosed, key, st, balA, balB)
}

// ForceClose initiates a unilateral close. Only the channel's creator can
// reach the record, because the lookup key embeds the caller as party A. The
// proposed split must sum to the total deposit and carry the initiator's
// signature over the canonical message. The record keeps its open flag; the
// proposed balances become finalizable once the dispute window elapses.
func (h *Hub) ForceClose(ctx context.Context, caller wtypes.Participant, id []byte, partyB wtypes.Participant, balA, balB *big.Int, sig []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := validateChannelID(id); err != nil {
		return err
	}
	if err := validateBalance(balA); err != nil {
		return err
	}
	if err := validateBalance(balB); err != nil {
		return err
	}
	if err := validateSig(sig); err != nil {
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
	if st.DisputeDeadline != 0 {
		// A dispute is already pending; the proposed state cannot be
		// superseded during the window.
		return types.ErrDisputePeriod
	}
	if new(big.Int).Add(balA, balB).Cmp(st.TotalDeposited) != 0 {
		return types.ErrInsufficientFunds
	}
	msg, err := wire.MakeSettlementMessage(id, balA, balB)
	if err != nil {
		return err
	}
	if err := h.verifySettlement(msg, sig, &key.PartyA); err != nil {
		return err
	}
	st.BalA = new(big.Int).Set(balA)
	st.BalB = new(big.Int).Set(balB)
	timeout := event.MakeHeightTimeout(h.cb.Height(), DisputeTimeout)
	st.DisputeDeadline = timeout.Deadline
	if err := h.reg.Replace(key, st); err != nil {
		return err
	}
	h.Log().Debugf("force close initiated: %s, deadline %d", key.MapKey(), st.DisputeDeadline)
	h.publish(event.TypeForceClose, key, st)
	return nil
}

// Resolve finalizes a pending unilateral close once the dispute window has
// elapsed, paying out the proposed balances exactly as a cooperative close
// would.
func (h *Hub) Resolve(ctx context.Context, caller wtypes.Participant, id []byte, partyB wtypes.Participant) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := validateChannelID(id); err != nil {
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
	if st.DisputeDeadline == 0 {
		return types.ErrDisputePeriod
	}
	timeout := event.HeightTimeout{Deadline: st.DisputeDeadline}
	if !timeout.Elapsed(h.cb.Height()) {
		return types.ErrDisputePeriod
	}
	if err := validateBalance(st.BalA); err != nil {
		return err
	}
	if err := validateBalance(st.BalB); err != nil {
		return err
	}
	return h.settle(ctx, event.TypeResolved, key, st, st.BalA, st.BalB)
}

// settle pays balA/balB out of escrow and records the terminal closed state,
// both as one logical step: the registry is rewritten only after the atomic
// payout succeeded.
func (h *Hub) settle(ctx context.Context, t event.Type, key types.ChannelKey, st types.ChannelState, balA, balB *big.Int) error {
	if err := h.checkEscrowCovers(); err != nil {
		return err
	}
	payoutA := new(big.Int).Set(balA)
	payoutB := new(big.Int).Set(balB)
	err := h.cb.PayOut(ctx,
		client.Payment{To: key.PartyA, Amount: payoutA},
		client.Payment{To: key.PartyB, Amount: payoutB},
	)
	if err != nil {
		return err
	}
	st.Zero()
	if err := h.reg.Replace(key, st); err != nil {
		return err
	}
	h.Log().Debugf("channel closed: %s, payout %v/%v", key.MapKey(), payoutA, payoutB)
	h.bus.Publish(event.Event{
		Type:   t,
		ID:     key.ID,
		BalA:   payoutA,
		BalB:   payoutB,
		Height: h.cb.Height(),
	})
	return nil
}

func (h *Hub) verifySettlement(msg, sig []byte, signer *wtypes.Participant) error {
	ok, err := h.verifier.Verify(msg, sig, signer)
	if err != nil || !ok {
		return types.ErrInvalidSignature
	}
	return nil
}
