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

// Package test provides a ready-made channel hub on an in-memory ledger for
// the package tests.
package test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	pkgtest "polycry.pt/poly-go/test"

	"perun.network/perun-channel-core/channel"
	"perun.network/perun-channel-core/client"
	"perun.network/perun-channel-core/event"
	"perun.network/perun-channel-core/wallet"
	wtypes "perun.network/perun-channel-core/wallet/types"
)

// StartingBalance is minted to every test account.
var StartingBalance = new(big.Int).Lsh(big.NewInt(1), 100) //nolint:gomnd

// Setup is a fully wired channel hub on an in-memory ledger with two funded
// parties and an administrative owner.
type Setup struct {
	Ledger   *client.MemLedger
	Backend  *client.EscrowBackend
	Registry *channel.Registry
	Hub      *Hub
	Bus      *event.Bus

	Wallet *wallet.EphemeralWallet
	Alice  *wallet.Account
	Bob    *wallet.Account
	Owner  *wallet.Account
}

// Hub aliases channel.Hub for brevity in test code.
type Hub = channel.Hub

// NewSetup builds the default test fixture.
func NewSetup(t *testing.T) *Setup {
	t.Helper()
	rng := pkgtest.Prng(t)

	w := wallet.NewEphemeralWallet()
	alice, err := w.AddNewAccount(rng)
	requireNoErr(t, err)
	bob, err := w.AddNewAccount(rng)
	requireNoErr(t, err)
	owner, err := w.AddNewAccount(rng)
	requireNoErr(t, err)

	ledger := client.NewMemLedger()
	ledger.Mint(*alice.Participant(), StartingBalance)
	ledger.Mint(*bob.Participant(), StartingBalance)

	escrow := wtypes.NewParticipant(common.HexToAddress("0x00000000000000000000000000000000000e5c20"))

	cfg := client.BackendConfig{}
	cfg.SetLedger(ledger)
	cfg.SetEscrow(escrow)
	cfg.SetOwner(owner.Participant())
	backend, err := client.NewEscrowBackend(cfg)
	requireNoErr(t, err)

	reg := channel.NewRegistry()
	bus := event.NewBus()
	hub := channel.NewHub(reg, backend, wallet.Backend, bus)

	return &Setup{
		Ledger:   ledger,
		Backend:  backend,
		Registry: reg,
		Hub:      hub,
		Bus:      bus,
		Wallet:   w,
		Alice:    alice,
		Bob:      bob,
		Owner:    owner,
	}
}

func requireNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
