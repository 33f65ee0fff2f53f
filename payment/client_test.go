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

package payment_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"perun.network/perun-channel-core/channel"
	chtest "perun.network/perun-channel-core/channel/test"
	"perun.network/perun-channel-core/channel/types"
	"perun.network/perun-channel-core/payment"
)

func TestCooperativeSettlement(t *testing.T) {
	s := chtest.NewSetup(t)
	ctx := context.Background()
	alice := payment.NewPaymentClient(s.Alice, s.Hub)
	bob := payment.NewPaymentClient(s.Bob, s.Hub)
	id := []byte("pay-coop")

	require.NoError(t, alice.OpenChannel(ctx, id, *bob.Participant(), big.NewInt(1_000_000)))
	require.NoError(t, alice.Deposit(ctx, id, *bob.Participant(), big.NewInt(500_000)))

	// After some off-chain payments alice owes bob 600000.
	prop, err := alice.ProposeSettlement(id, big.NewInt(900_000), big.NewInt(600_000))
	require.NoError(t, err)
	require.NoError(t, bob.AcceptSettlement(prop))

	bobBefore := s.Ledger.Balance(*bob.Participant())
	require.NoError(t, alice.Settle(ctx, prop, *bob.Participant()))

	bobAfter := s.Ledger.Balance(*bob.Participant())
	require.Zero(t, new(big.Int).Sub(bobAfter, bobBefore).Cmp(big.NewInt(600_000)))
	require.Zero(t, s.Backend.EscrowBalance().Sign())

	st, err := s.Hub.ChannelInfo(id, *alice.Participant(), *bob.Participant())
	require.NoError(t, err)
	require.False(t, st.Open)
}

func TestForcedSettlement(t *testing.T) {
	s := chtest.NewSetup(t)
	ctx := context.Background()
	alice := payment.NewPaymentClient(s.Alice, s.Hub)
	bob := payment.NewPaymentClient(s.Bob, s.Hub)
	id := []byte("pay-forced")

	require.NoError(t, alice.OpenChannel(ctx, id, *bob.Participant(), big.NewInt(1_000_000)))

	balA, balB := big.NewInt(250_000), big.NewInt(750_000)
	require.NoError(t, alice.ForceSettle(ctx, id, *bob.Participant(), balA, balB))

	err := alice.SettleForced(ctx, id, *bob.Participant())
	require.ErrorIs(t, err, types.ErrDisputePeriod)

	s.Ledger.AdvanceHeight(channel.DisputeTimeout)
	require.NoError(t, alice.SettleForced(ctx, id, *bob.Participant()))

	require.Zero(t, s.Ledger.Balance(*bob.Participant()).
		Cmp(new(big.Int).Add(chtest.StartingBalance, balB)))
	require.Zero(t, s.Backend.EscrowBalance().Sign())
}

func TestSettleRequiresBothSignatures(t *testing.T) {
	s := chtest.NewSetup(t)
	ctx := context.Background()
	alice := payment.NewPaymentClient(s.Alice, s.Hub)
	bob := payment.NewPaymentClient(s.Bob, s.Hub)
	id := []byte("pay-halfsig")

	require.NoError(t, alice.OpenChannel(ctx, id, *bob.Participant(), big.NewInt(1_000)))

	prop, err := alice.ProposeSettlement(id, big.NewInt(400), big.NewInt(600))
	require.NoError(t, err)

	err = alice.Settle(ctx, prop, *bob.Participant())
	require.Error(t, err)

	st, err := s.Hub.ChannelInfo(id, *alice.Participant(), *bob.Participant())
	require.NoError(t, err)
	require.True(t, st.Open)
}
