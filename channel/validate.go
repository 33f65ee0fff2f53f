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

package channel

import (
	"fmt"
	"math/big"

	"perun.network/perun-channel-core/channel/types"
	"perun.network/perun-channel-core/wallet"
	wtypes "perun.network/perun-channel-core/wallet/types"
)

// Stateless input-shape checks. All of them fail with ErrInvalidInput before
// any state is touched.

func validateChannelID(id []byte) error {
	if len(id) < types.MinIDLength || len(id) > types.MaxIDLength {
		return fmt.Errorf("channel id length %d: %w", len(id), types.ErrInvalidInput)
	}
	return nil
}

func validateDeposit(amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return fmt.Errorf("deposit must be positive: %w", types.ErrInvalidInput)
	}
	if amount.Cmp(types.MaxBalance) > 0 {
		return fmt.Errorf("deposit exceeds maximum balance: %w", types.ErrInvalidInput)
	}
	return nil
}

func validateBalance(bal *big.Int) error {
	if !types.ValidBalance(bal) {
		return fmt.Errorf("balance out of range: %w", types.ErrInvalidInput)
	}
	return nil
}

func validateSig(sig []byte) error {
	if len(sig) != wallet.SignatureLength {
		return fmt.Errorf("signature length %d, want %d: %w",
			len(sig), wallet.SignatureLength, types.ErrInvalidInput)
	}
	return nil
}

func validateParties(a, b wtypes.Participant) error {
	if a.Addr == b.Addr {
		return fmt.Errorf("channel parties must be distinct: %w", types.ErrInvalidInput)
	}
	return nil
}
