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

package wallet

import (
	"crypto/ecdsa"
	"math/rand"

	"github.com/ethereum/go-ethereum/crypto"
	"perun.network/go-perun/wallet"

	"perun.network/perun-channel-core/wallet/types"
)

// Account is a secp256k1 key pair that can sign settlement messages.
type Account struct {
	privateKey *ecdsa.PrivateKey
}

// NewRandomAccount creates a new account with a random private key drawn from
// the given source of randomness.
func NewRandomAccount(rng *rand.Rand) (*Account, error) {
	key, err := ecdsa.GenerateKey(crypto.S256(), rng)
	if err != nil {
		return nil, err
	}
	return &Account{privateKey: key}, nil
}

// Address returns the participant this account belongs to.
func (a Account) Address() wallet.Address {
	return a.Participant()
}

// Participant returns the participant identity derived from the account's
// public key.
func (a Account) Participant() *types.Participant {
	return types.NewParticipant(crypto.PubkeyToAddress(a.privateKey.PublicKey))
}

// SignData signs the Keccak-256 digest of the given data with the account's
// private key. The signature is 65 bytes in [R || S || V] form.
func (a Account) SignData(data []byte) ([]byte, error) {
	return crypto.Sign(crypto.Keccak256(data), a.privateKey)
}
