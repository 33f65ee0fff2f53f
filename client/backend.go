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

package client

import (
	"context"
	"math/big"

	"github.com/pkg/errors"
	"perun.network/go-perun/log"

	wtypes "perun.network/perun-channel-core/wallet/types"
)

// EscrowBackend is the settlement engine. It routes every fund movement of a
// channel operation through one atomic ledger submission against the pooled
// escrow account, so a failed transfer leaves the accompanying registry
// update unapplied.
type EscrowBackend struct {
	log.Embedding

	ledger Ledger
	escrow wtypes.Participant
	owner  wtypes.Participant
}

// BackendConfig collects the collaborators of an EscrowBackend.
type BackendConfig struct {
	ledger Ledger
	escrow *wtypes.Participant
	owner  *wtypes.Participant
}

// SetLedger sets the ledger environment.
func (c *BackendConfig) SetLedger(l Ledger) {
	c.ledger = l
}

// SetEscrow sets the pooled escrow account.
func (c *BackendConfig) SetEscrow(p *wtypes.Participant) {
	c.escrow = p
}

// SetOwner sets the administrative owner identity.
func (c *BackendConfig) SetOwner(p *wtypes.Participant) {
	c.owner = p
}

// NewEscrowBackend creates a settlement engine from the given config. Ledger
// and escrow are mandatory; the owner defaults to the zero identity, which
// disables the administrative sweep.
func NewEscrowBackend(cfg BackendConfig) (*EscrowBackend, error) {
	if cfg.ledger == nil {
		return nil, errors.New("backend config has no ledger")
	}
	if cfg.escrow == nil {
		return nil, errors.New("backend config has no escrow account")
	}
	b := &EscrowBackend{
		Embedding: log.MakeEmbedding(log.Default()),
		ledger:    cfg.ledger,
		escrow:    *cfg.escrow,
	}
	if cfg.owner != nil {
		b.owner = *cfg.owner
	}
	return b, nil
}

// Height returns the ledger's current height.
func (b *EscrowBackend) Height() uint64 {
	return b.ledger.Height()
}

// Escrow returns the pooled escrow account identity.
func (b *EscrowBackend) Escrow() wtypes.Participant {
	return b.escrow
}

// Owner returns the administrative owner identity.
func (b *EscrowBackend) Owner() wtypes.Participant {
	return b.owner
}

// EscrowBalance returns the ledger balance of the pooled escrow account.
func (b *EscrowBackend) EscrowBalance() *big.Int {
	return b.ledger.Balance(b.escrow)
}

// Deposit moves amount from the payer into escrow as one atomic submission.
func (b *EscrowBackend) Deposit(ctx context.Context, from wtypes.Participant, amount *big.Int) error {
	err := b.ledger.Submit(ctx, []Payment{{From: from, To: b.escrow, Amount: amount}})
	return errors.WithMessage(err, "depositing into escrow")
}

// PayOut moves funds from escrow to the given recipients as one atomic
// submission. Zero amounts are skipped.
func (b *EscrowBackend) PayOut(ctx context.Context, outs ...Payment) error {
	payments := make([]Payment, 0, len(outs))
	for _, o := range outs {
		if o.Amount.Sign() == 0 {
			continue
		}
		payments = append(payments, Payment{From: b.escrow, To: o.To, Amount: o.Amount})
	}
	if len(payments) == 0 {
		return nil
	}
	err := b.ledger.Submit(ctx, payments)
	return errors.WithMessage(err, "paying out of escrow")
}

// SweepAll empties the escrow account to the owner, bypassing all channel
// accounting. Returns the amount moved.
func (b *EscrowBackend) SweepAll(ctx context.Context) (*big.Int, error) {
	amount := b.EscrowBalance()
	if amount.Sign() == 0 {
		return amount, nil
	}
	err := b.ledger.Submit(ctx, []Payment{{From: b.escrow, To: b.owner, Amount: amount}})
	if err != nil {
		return nil, errors.WithMessage(err, "sweeping escrow")
	}
	b.Log().Warnf("escrow swept: %v to owner %s", amount, b.owner)
	return amount, nil
}
