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

package wire_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"perun.network/perun-channel-core/channel/types"
	wtypes "perun.network/perun-channel-core/wallet/types"
	"perun.network/perun-channel-core/wire"
)

func TestSettlementMessageLayout(t *testing.T) {
	id := []byte{0xab, 0xcd}
	msg, err := wire.MakeSettlementMessage(id, big.NewInt(0x0102), big.NewInt(3))
	require.NoError(t, err)

	want := make([]byte, 2+2*wire.BalanceLength)
	want[0], want[1] = 0xab, 0xcd
	want[2+wire.BalanceLength-2] = 0x01
	want[2+wire.BalanceLength-1] = 0x02
	want[len(want)-1] = 0x03
	require.Equal(t, want, msg)

	// Identifier length and balance range are enforced.
	_, err = wire.MakeSettlementMessage(nil, big.NewInt(1), big.NewInt(2))
	require.Error(t, err)
	_, err = wire.MakeSettlementMessage(make([]byte, types.MaxIDLength+1), big.NewInt(1), big.NewInt(2))
	require.Error(t, err)
	over := new(big.Int).Add(types.MaxBalance, big.NewInt(1))
	_, err = wire.MakeSettlementMessage(id, over, big.NewInt(2))
	require.Error(t, err)
}

func TestUInt128PartsBounds(t *testing.T) {
	_, err := wire.MakeUInt128Parts(big.NewInt(-1))
	require.Error(t, err)
	_, err = wire.MakeUInt128Parts(new(big.Int).Add(types.MaxBalance, big.NewInt(1)))
	require.Error(t, err)

	for _, v := range []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		new(big.Int).Lsh(big.NewInt(1), 64),
		new(big.Int).Set(types.MaxBalance),
	} {
		parts, err := wire.MakeUInt128Parts(v)
		require.NoError(t, err)
		got, err := wire.ToBigInt(parts)
		require.NoError(t, err)
		require.Zero(t, got.Cmp(v))
	}
}

func TestChannelRecordRoundtrip(t *testing.T) {
	a := *wtypes.NewParticipant(common.HexToAddress("0x0a"))
	b := *wtypes.NewParticipant(common.HexToAddress("0x0b"))
	key := types.MakeKey([]byte("wire-chan"), a, b)

	st := types.NewChannelState(big.NewInt(1_000_000))
	st.BalA = big.NewInt(400_000)
	st.BalB = big.NewInt(600_000)
	st.DisputeDeadline = 4242
	st.Nonce = 7

	ch, err := wire.MakeChannel(key, st)
	require.NoError(t, err)
	data, err := ch.MarshalBinary()
	require.NoError(t, err)

	var dec wire.Channel
	require.NoError(t, dec.UnmarshalBinary(data))
	require.Equal(t, ch.Params, dec.Params)

	gotKey, err := wire.ToChannelKey(dec.Params)
	require.NoError(t, err)
	require.Equal(t, key, gotKey)

	got, err := wire.ToChannelState(dec)
	require.NoError(t, err)
	require.Zero(t, got.TotalDeposited.Cmp(st.TotalDeposited))
	require.Zero(t, got.BalA.Cmp(st.BalA))
	require.Zero(t, got.BalB.Cmp(st.BalB))
	require.True(t, got.Open)
	require.Equal(t, st.DisputeDeadline, got.DisputeDeadline)
	require.Equal(t, st.Nonce, got.Nonce)
}
