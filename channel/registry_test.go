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
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"perun.network/perun-channel-core/channel"
	"perun.network/perun-channel-core/channel/types"
	wtypes "perun.network/perun-channel-core/wallet/types"
)

func TestRegistry(t *testing.T) {
	reg := channel.NewRegistry()
	a := *wtypes.NewParticipant(common.HexToAddress("0x01"))
	b := *wtypes.NewParticipant(common.HexToAddress("0x02"))
	key := types.MakeKey([]byte("reg-chan"), a, b)

	_, err := reg.Get(key)
	require.ErrorIs(t, err, types.ErrChannelNotFound)
	err = reg.Replace(key, types.NewChannelState(big.NewInt(1)))
	require.ErrorIs(t, err, types.ErrChannelNotFound)

	st := types.NewChannelState(big.NewInt(42))
	require.NoError(t, reg.InsertIfAbsent(key, st))
	err = reg.InsertIfAbsent(key, st)
	require.ErrorIs(t, err, types.ErrChannelExists)

	got, err := reg.Get(key)
	require.NoError(t, err)
	require.Zero(t, got.TotalDeposited.Cmp(big.NewInt(42)))
	require.Zero(t, got.BalA.Cmp(big.NewInt(42)))
	require.Zero(t, got.BalB.Sign())
	require.True(t, got.Open)

	got.BalB = big.NewInt(7)
	got.TotalDeposited = big.NewInt(49)
	require.NoError(t, reg.Replace(key, got))
	got, err = reg.Get(key)
	require.NoError(t, err)
	require.Zero(t, got.TotalDeposited.Cmp(big.NewInt(49)))
	require.Zero(t, got.BalB.Cmp(big.NewInt(7)))

	// Swapping the parties addresses a different record.
	swapped := types.MakeKey([]byte("reg-chan"), b, a)
	_, err = reg.Get(swapped)
	require.ErrorIs(t, err, types.ErrChannelNotFound)
}

func TestRegistryOpenDepositsTotal(t *testing.T) {
	reg := channel.NewRegistry()
	a := *wtypes.NewParticipant(common.HexToAddress("0x01"))
	b := *wtypes.NewParticipant(common.HexToAddress("0x02"))

	total, err := reg.OpenDepositsTotal()
	require.NoError(t, err)
	require.Zero(t, total.Sign())

	k1 := types.MakeKey([]byte("open-1"), a, b)
	k2 := types.MakeKey([]byte("open-2"), b, a)
	k3 := types.MakeKey([]byte("closed"), a, b)
	require.NoError(t, reg.InsertIfAbsent(k1, types.NewChannelState(big.NewInt(100))))
	require.NoError(t, reg.InsertIfAbsent(k2, types.NewChannelState(big.NewInt(250))))

	closed := types.NewChannelState(big.NewInt(999))
	closed.Zero()
	require.NoError(t, reg.InsertIfAbsent(k3, closed))

	total, err = reg.OpenDepositsTotal()
	require.NoError(t, err)
	require.Zero(t, total.Cmp(big.NewInt(350)))
}
