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

package channel_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	chtest "perun.network/perun-channel-core/channel/test"
	"perun.network/perun-channel-core/channel/types"
)

func TestCreate(t *testing.T) {
	s := chtest.NewSetup(t)
	ctx := context.Background()
	alice, bob := *s.Alice.Participant(), *s.Bob.Participant()
	id := []byte("chan-1")

	err := s.Hub.Create(ctx, alice, id, bob, big.NewInt(1_000_000))
	require.NoError(t, err)

	st, err := s.Hub.ChannelInfo(id, alice, bob)
	require.NoError(t, err)
	require.True(t, st.Open)
	require.Zero(t, st.BalA.Cmp(big.NewInt(1_000_000)))
	require.Zero(t, st.BalB.Sign())
	require.Zero(t, st.TotalDeposited.Cmp(big.NewInt(1_000_000)))
	require.Zero(t, st.DisputeDeadline)
	require.Zero(t, st.Nonce)
	require.Zero(t, s.Backend.EscrowBalance().Cmp(big.NewInt(1_000_000)))

	// Same key again.
	err = s.Hub.Create(ctx, alice, id, bob, big.NewInt(5))
	require.ErrorIs(t, err, types.ErrChannelExists)

	// Same identifier under a different creator is a distinct channel.
	err = s.Hub.Create(ctx, bob, id, alice, big.NewInt(5))
	require.NoError(t, err)
}

func TestCreateInvalidInput(t *testing.T) {
	s := chtest.NewSetup(t)
	ctx := context.Background()
	alice, bob := *s.Alice.Participant(), *s.Bob.Participant()

	err := s.Hub.Create(ctx, alice, nil, bob, big.NewInt(1))
	require.ErrorIs(t, err, types.ErrInvalidInput)

	err = s.Hub.Create(ctx, alice, make([]byte, 33), bob, big.NewInt(1))
	require.ErrorIs(t, err, types.ErrInvalidInput)

	err = s.Hub.Create(ctx, alice, []byte("chan"), bob, big.NewInt(0))
	require.ErrorIs(t, err, types.ErrInvalidInput)

	err = s.Hub.Create(ctx, alice, []byte("chan"), alice, big.NewInt(1))
	require.ErrorIs(t, err, types.ErrInvalidInput)

	_, err = s.Hub.ChannelInfo([]byte("chan"), alice, bob)
	require.ErrorIs(t, err, types.ErrChannelNotFound)
}

func TestCreateTransferFailure(t *testing.T) {
	s := chtest.NewSetup(t)
	ctx := context.Background()
	alice, bob := *s.Alice.Participant(), *s.Bob.Participant()
	id := []byte("chan-broke")

	tooMuch := new(big.Int).Add(chtest.StartingBalance, big.NewInt(1))
	err := s.Hub.Create(ctx, alice, id, bob, tooMuch)
	require.Error(t, err)

	// No partial effect.
	_, err = s.Hub.ChannelInfo(id, alice, bob)
	require.ErrorIs(t, err, types.ErrChannelNotFound)
	require.Zero(t, s.Backend.EscrowBalance().Sign())
}

func TestFund(t *testing.T) {
	s := chtest.NewSetup(t)
	ctx := context.Background()
	alice, bob := *s.Alice.Participant(), *s.Bob.Participant()
	id := []byte("chan-fund")

	require.NoError(t, s.Hub.Create(ctx, alice, id, bob, big.NewInt(1_000_000)))
	require.NoError(t, s.Hub.Fund(ctx, alice, id, bob, big.NewInt(250_000)))

	st, err := s.Hub.ChannelInfo(id, alice, bob)
	require.NoError(t, err)
	require.Zero(t, st.TotalDeposited.Cmp(big.NewInt(1_250_000)))
	require.Zero(t, st.BalA.Cmp(big.NewInt(1_250_000)))
	// Funding never credits the counterparty.
	require.Zero(t, st.BalB.Sign())
}

func TestFundMissingAndWrongCaller(t *testing.T) {
	s := chtest.NewSetup(t)
	ctx := context.Background()
	alice, bob := *s.Alice.Participant(), *s.Bob.Participant()
	id := []byte("chan-missing")

	err := s.Hub.Fund(ctx, alice, id, bob, big.NewInt(1))
	require.ErrorIs(t, err, types.ErrChannelNotFound)

	require.NoError(t, s.Hub.Create(ctx, alice, id, bob, big.NewInt(10)))

	// The lookup key embeds the caller as party A, so the counterparty's
	// call misses the entry.
	err = s.Hub.Fund(ctx, bob, id, alice, big.NewInt(1))
	require.ErrorIs(t, err, types.ErrChannelNotFound)
}

func TestFundOverflow(t *testing.T) {
	s := chtest.NewSetup(t)
	ctx := context.Background()
	alice, bob := *s.Alice.Participant(), *s.Bob.Participant()
	id := []byte("chan-overflow")

	s.Ledger.Mint(alice, types.MaxBalance)

	nearMax := new(big.Int).Sub(types.MaxBalance, big.NewInt(10))
	require.NoError(t, s.Hub.Create(ctx, alice, id, bob, nearMax))

	err := s.Hub.Fund(ctx, alice, id, bob, big.NewInt(100))
	require.ErrorIs(t, err, types.ErrBalanceOverflow)

	// State unchanged.
	st, err := s.Hub.ChannelInfo(id, alice, bob)
	require.NoError(t, err)
	require.Zero(t, st.TotalDeposited.Cmp(nearMax))
	require.Zero(t, st.BalA.Cmp(nearMax))
}
