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

// Package payment is the party-side convenience layer over the channel hub:
// it opens and tops up channels for one account, exchanges settlement
// proposals with the counterparty out of band, and drives cooperative or
// forced settlement.
package payment

import (
	"context"
	"math/big"

	"github.com/pkg/errors"
	"perun.network/go-perun/log"

	"perun.network/perun-channel-core/channel"
	"perun.network/perun-channel-core/wallet"
	wtypes "perun.network/perun-channel-core/wallet/types"
	"perun.network/perun-channel-core/wire"
)

// PaymentClient operates channels on behalf of a single account.
type PaymentClient struct {
	log.Embedding

	account *wallet.Account
	hub     *channel.Hub
}

// NewPaymentClient creates a client for the given account.
func NewPaymentClient(acc *wallet.Account, hub *channel.Hub) *PaymentClient {
	return &PaymentClient{
		Embedding: log.MakeEmbedding(log.Default()),
		account:   acc,
		hub:       hub,
	}
}

// Participant returns the client's identity.
func (c *PaymentClient) Participant() *wtypes.Participant {
	return c.account.Participant()
}

// OpenChannel creates a channel to the given counterparty with an initial
// deposit.
func (c *PaymentClient) OpenChannel(ctx context.Context, id []byte, counterparty wtypes.Participant, deposit *big.Int) error {
	return c.hub.Create(ctx, *c.Participant(), id, counterparty, deposit)
}

// Deposit tops up a channel the client created.
func (c *PaymentClient) Deposit(ctx context.Context, id []byte, counterparty wtypes.Participant, amount *big.Int) error {
	return c.hub.Fund(ctx, *c.Participant(), id, counterparty, amount)
}

// SettlementProposal is a signed final balance split, passed between the
// parties out of band until it carries both signatures.
type SettlementProposal struct {
	ChannelID []byte
	BalA      *big.Int
	BalB      *big.Int
	SigA      []byte
	SigB      []byte
}

// ProposeSettlement builds a settlement proposal for the given split and
// signs it as the channel creator.
func (c *PaymentClient) ProposeSettlement(id []byte, balA, balB *big.Int) (*SettlementProposal, error) {
	msg, err := wire.MakeSettlementMessage(id, balA, balB)
	if err != nil {
		return nil, err
	}
	sig, err := c.account.SignData(msg)
	if err != nil {
		return nil, errors.WithMessage(err, "signing settlement proposal")
	}
	return &SettlementProposal{
		ChannelID: id,
		BalA:      new(big.Int).Set(balA),
		BalB:      new(big.Int).Set(balB),
		SigA:      sig,
	}, nil
}

// AcceptSettlement countersigns a received proposal as the counterparty.
func (c *PaymentClient) AcceptSettlement(prop *SettlementProposal) error {
	msg, err := wire.MakeSettlementMessage(prop.ChannelID, prop.BalA, prop.BalB)
	if err != nil {
		return err
	}
	sig, err := c.account.SignData(msg)
	if err != nil {
		return errors.WithMessage(err, "countersigning settlement proposal")
	}
	prop.SigB = sig
	return nil
}

// Settle closes the channel cooperatively with a fully signed proposal.
// Must be called by the channel creator.
func (c *PaymentClient) Settle(ctx context.Context, prop *SettlementProposal, counterparty wtypes.Participant) error {
	if prop.SigA == nil || prop.SigB == nil {
		return errors.New("settlement proposal lacks a signature")
	}
	return c.hub.Close(ctx, *c.Participant(), prop.ChannelID, counterparty,
		prop.BalA, prop.BalB, prop.SigA, prop.SigB)
}

// ForceSettle initiates a unilateral close with the client's own signature
// over the proposed split. The counterparty cannot contest during the
// dispute window; settlement finalizes through SettleForced once the window
// elapsed.
func (c *PaymentClient) ForceSettle(ctx context.Context, id []byte, counterparty wtypes.Participant, balA, balB *big.Int) error {
	msg, err := wire.MakeSettlementMessage(id, balA, balB)
	if err != nil {
		return err
	}
	sig, err := c.account.SignData(msg)
	if err != nil {
		return errors.WithMessage(err, "signing forced settlement")
	}
	return c.hub.ForceClose(ctx, *c.Participant(), id, counterparty, balA, balB, sig)
}

// SettleForced finalizes a previously initiated unilateral close.
func (c *PaymentClient) SettleForced(ctx context.Context, id []byte, counterparty wtypes.Participant) error {
	return c.hub.Resolve(ctx, *c.Participant(), id, counterparty)
}
