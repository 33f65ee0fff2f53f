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

package main

import (
	"context"
	"log"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"perun.network/perun-channel-core/channel"
	"perun.network/perun-channel-core/payment"
	"perun.network/perun-channel-core/util"
	wtypes "perun.network/perun-channel-core/wallet/types"
)

func main() {
	ctx := context.Background()

	_, accAlice := util.MakeRandWallet()
	_, accBob := util.MakeRandWallet()
	_, accOwner := util.MakeRandWallet()

	escrow := wtypes.NewParticipant(common.HexToAddress("0x00000000000000000000000000000000000e5c20"))
	ledger, hub, bus, err := util.MakeMemHub(escrow, accOwner.Participant())
	if err != nil {
		log.Fatal(err)
	}

	sub := bus.Subscribe(16)
	defer sub.Close()
	go func() {
		for e := range sub.C {
			log.Printf("event: type=%d id=%x height=%d", e.Type, e.ID, e.Height)
		}
	}()

	ledger.Mint(*accAlice.Participant(), big.NewInt(10_000_000))
	ledger.Mint(*accBob.Participant(), big.NewInt(10_000_000))

	alice := payment.NewPaymentClient(accAlice, hub)
	bob := payment.NewPaymentClient(accBob, hub)

	// Cooperative settlement.
	id := []byte("demo-channel")
	if err := alice.OpenChannel(ctx, id, *bob.Participant(), big.NewInt(1_000_000)); err != nil {
		log.Fatal(err)
	}
	if err := alice.Deposit(ctx, id, *bob.Participant(), big.NewInt(500_000)); err != nil {
		log.Fatal(err)
	}

	prop, err := alice.ProposeSettlement(id, big.NewInt(900_000), big.NewInt(600_000))
	if err != nil {
		log.Fatal(err)
	}
	if err := bob.AcceptSettlement(prop); err != nil {
		log.Fatal(err)
	}
	if err := alice.Settle(ctx, prop, *bob.Participant()); err != nil {
		log.Fatal(err)
	}
	log.Printf("cooperative close done, bob balance: %v", ledger.Balance(*bob.Participant()))

	// Forced settlement after the dispute window.
	id2 := []byte("demo-channel-forced")
	if err := alice.OpenChannel(ctx, id2, *bob.Participant(), big.NewInt(200_000)); err != nil {
		log.Fatal(err)
	}
	if err := alice.ForceSettle(ctx, id2, *bob.Participant(), big.NewInt(150_000), big.NewInt(50_000)); err != nil {
		log.Fatal(err)
	}
	ledger.AdvanceHeight(channel.DisputeTimeout)
	if err := alice.SettleForced(ctx, id2, *bob.Participant()); err != nil {
		log.Fatal(err)
	}
	log.Printf("forced close done, alice balance: %v", ledger.Balance(*accAlice.Participant()))
}
