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

	"perun.network/go-perun/log"
	"polycry.pt/poly-go/sync"

	"perun.network/perun-channel-core/channel/types"
	"perun.network/perun-channel-core/client"
	"perun.network/perun-channel-core/event"
	"perun.network/perun-channel-core/wallet"
	wtypes "perun.network/perun-channel-core/wallet/types"
)

// DisputeTimeout is the dispute window in height units, about one week at
// the ledger's nominal rate.
const DisputeTimeout = 1008

// Hub orchestrates all channel operations against the registry and the
// escrow backend. Operations run under a single mutex, standing in for the
// global serialization the ledger environment imposes; each one validates
// every precondition before the first mutation, so a failure never leaves a
// partial effect.
type Hub struct {
	log.Embedding

	reg      *Registry
	cb       *client.EscrowBackend
	verifier wallet.Verifier
	bus      *event.Bus

	mu sync.Mutex
}

// NewHub creates a hub. The bus may be nil if no event consumers exist.
func NewHub(reg *Registry, cb *client.EscrowBackend, verifier wallet.Verifier, bus *event.Bus) *Hub {
	return &Hub{
		Embedding: log.MakeEmbedding(log.Default()),
		reg:       reg,
		cb:        cb,
		verifier:  verifier,
		bus:       bus,
	}
}

// ChannelInfo returns a copy of the stored record for the given key, or
// ErrChannelNotFound. It never mutates state.
func (h *Hub) ChannelInfo(id []byte, partyA, partyB wtypes.Participant) (types.ChannelState, error) {
	if err := validateChannelID(id); err != nil {
		return types.ChannelState{}, err
	}
	return h.reg.Get(types.MakeKey(id, partyA, partyB))
}

// Sweep transfers the entire pooled escrow balance to the owner identity,
// bypassing all per-channel accounting. Emergency escape hatch only: channel
// records are left untouched and will no longer be covered by escrow.
func (h *Hub) Sweep(ctx context.Context, caller wtypes.Participant) (*big.Int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	owner := h.cb.Owner()
	if (owner == wtypes.Participant{}) || caller.Addr != owner.Addr {
		return nil, types.ErrNotAuthorized
	}
	amount, err := h.cb.SweepAll(ctx)
	if err != nil {
		return nil, err
	}
	h.bus.Publish(event.Event{
		Type:   event.TypeSwept,
		BalA:   amount,
		Height: h.cb.Height(),
	})
	return amount, nil
}

// checkEscrowCovers asserts the cross-channel invariant that the pooled
// escrow balance covers the sum of all open channels' deposits. A deposit
// about to be escrowed raises both sides equally, so the check holds for
// deposits and payouts alike.
func (h *Hub) checkEscrowCovers() error {
	total, err := h.reg.OpenDepositsTotal()
	if err != nil {
		return err
	}
	if balance := h.cb.EscrowBalance(); total.Cmp(balance) > 0 {
		h.Log().Errorf("escrow underfunded: open deposits %v, escrow %v", total, balance)
		return types.ErrEscrowUnderfunded
	}
	return nil
}

func (h *Hub) publish(t event.Type, key types.ChannelKey, st types.ChannelState) {
	h.bus.Publish(event.Event{
		Type:   t,
		ID:     key.ID,
		BalA:   new(big.Int).Set(st.BalA),
		BalB:   new(big.Int).Set(st.BalB),
		Height: h.cb.Height(),
	})
}
