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

package client_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"perun.network/perun-channel-core/client"
	wtypes "perun.network/perun-channel-core/wallet/types"
)

func TestMemLedgerSubmit(t *testing.T) {
	l := client.NewMemLedger()
	a := *wtypes.NewParticipant(common.HexToAddress("0x0a"))
	b := *wtypes.NewParticipant(common.HexToAddress("0x0b"))
	c := *wtypes.NewParticipant(common.HexToAddress("0x0c"))
	l.Mint(a, big.NewInt(100))

	ctx := context.Background()
	h0 := l.Height()

	// A chained batch is valid as a whole even though b starts empty.
	err := l.Submit(ctx, []client.Payment{
		{From: a, To: b, Amount: big.NewInt(60)},
		{From: b, To: c, Amount: big.NewInt(50)},
	})
	require.NoError(t, err)
	require.Zero(t, l.Balance(a).Cmp(big.NewInt(40)))
	require.Zero(t, l.Balance(b).Cmp(big.NewInt(10)))
	require.Zero(t, l.Balance(c).Cmp(big.NewInt(50)))
	require.Equal(t, h0+1, l.Height())
}

func TestMemLedgerSubmitAtomic(t *testing.T) {
	l := client.NewMemLedger()
	a := *wtypes.NewParticipant(common.HexToAddress("0x0a"))
	b := *wtypes.NewParticipant(common.HexToAddress("0x0b"))
	l.Mint(a, big.NewInt(100))

	h0 := l.Height()

	// Second payment overdraws, so the first must not apply either.
	err := l.Submit(context.Background(), []client.Payment{
		{From: a, To: b, Amount: big.NewInt(60)},
		{From: a, To: b, Amount: big.NewInt(60)},
	})
	require.ErrorIs(t, err, client.ErrInsufficientBalance)
	require.Zero(t, l.Balance(a).Cmp(big.NewInt(100)))
	require.Zero(t, l.Balance(b).Sign())
	require.Equal(t, h0, l.Height())
}

func TestMemLedgerHeightAndMint(t *testing.T) {
	l := client.NewMemLedger()
	a := *wtypes.NewParticipant(common.HexToAddress("0x0a"))

	require.Zero(t, l.Balance(a).Sign())
	l.Mint(a, big.NewInt(5))
	l.Mint(a, big.NewInt(7))
	require.Zero(t, l.Balance(a).Cmp(big.NewInt(12)))

	// Balance returns a copy; mutating it must not touch the ledger.
	bal := l.Balance(a)
	bal.SetInt64(0)
	require.Zero(t, l.Balance(a).Cmp(big.NewInt(12)))

	h0 := l.Height()
	l.AdvanceHeight(10)
	require.Equal(t, h0+10, l.Height())
}
