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

package util

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand"

	"perun.network/perun-channel-core/channel"
	"perun.network/perun-channel-core/client"
	"perun.network/perun-channel-core/event"
	"perun.network/perun-channel-core/wallet"
	wtypes "perun.network/perun-channel-core/wallet/types"
)

// MakeRandWallet creates an ephemeral wallet with one freshly generated
// account, seeded from crypto/rand.
func MakeRandWallet() (*wallet.EphemeralWallet, *wallet.Account) {
	w := wallet.NewEphemeralWallet()

	var b [8]byte
	_, err := rand.Read(b[:])
	if err != nil {
		panic(err)
	}
	seed := binary.LittleEndian.Uint64(b[:])
	r := mathrand.New(mathrand.NewSource(int64(seed)))

	acc, err := w.AddNewAccount(r)
	if err != nil {
		panic(err)
	}
	return w, acc
}

// MakeMemHub wires a channel hub onto a fresh in-memory ledger, returning
// the ledger for minting and height control.
func MakeMemHub(escrow, owner *wtypes.Participant) (*client.MemLedger, *channel.Hub, *event.Bus, error) {
	ledger := client.NewMemLedger()

	cfg := client.BackendConfig{}
	cfg.SetLedger(ledger)
	cfg.SetEscrow(escrow)
	cfg.SetOwner(owner)
	backend, err := client.NewEscrowBackend(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	bus := event.NewBus()
	hub := channel.NewHub(channel.NewRegistry(), backend, wallet.Backend, bus)
	return ledger, hub, bus, nil
}
