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

// Package client binds the channel core to its ledger environment. The
// ledger supplies atomic value transfer, a monotonic height clock and
// per-account balances; everything else is built on top of it.
package client

import (
	"context"
	"math/big"

	wtypes "perun.network/perun-channel-core/wallet/types"
)

// Payment is a single value movement between two accounts.
type Payment struct {
	From   wtypes.Participant
	To     wtypes.Participant
	Amount *big.Int
}

// Ledger is the external transaction-execution environment. Submit applies
// all payments of one submission atomically: either every payment takes
// effect or none does.
type Ledger interface {
	Submit(ctx context.Context, payments []Payment) error
	Balance(p wtypes.Participant) *big.Int
	Height() uint64
}
