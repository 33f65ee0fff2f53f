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

package wallet_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	pkgtest "polycry.pt/poly-go/test"

	"perun.network/perun-channel-core/wallet"
	"perun.network/perun-channel-core/wallet/types"
)

func TestSignAndVerify(t *testing.T) {
	rng := pkgtest.Prng(t)
	acc, err := wallet.NewRandomAccount(rng)
	require.NoError(t, err)

	msg := []byte("settle 800000/200000")
	sig, err := acc.SignData(msg)
	require.NoError(t, err)
	require.Len(t, sig, wallet.SignatureLength)

	ok, err := wallet.Backend.Verify(msg, sig, acc.Participant())
	require.NoError(t, err)
	require.True(t, ok)

	// Tampered message does not verify.
	ok, err = wallet.Backend.Verify([]byte("settle 800001/199999"), sig, acc.Participant())
	require.NoError(t, err)
	require.False(t, ok)

	// Nor does a different signer.
	other, err := wallet.NewRandomAccount(rng)
	require.NoError(t, err)
	ok, err = wallet.Backend.Verify(msg, sig, other.Participant())
	require.NoError(t, err)
	require.False(t, ok)

	// Truncated signatures are rejected outright.
	_, err = wallet.Backend.Verify(msg, sig[:32], acc.Participant())
	require.Error(t, err)
}

func TestEphemeralWallet(t *testing.T) {
	rng := pkgtest.Prng(t)
	w := wallet.NewEphemeralWallet()

	acc, err := w.AddNewAccount(rng)
	require.NoError(t, err)

	got, err := w.Unlock(acc.Address())
	require.NoError(t, err)
	require.True(t, acc.Address().Equal(got.Address()))

	unknown, err := wallet.NewRandomAccount(rng)
	require.NoError(t, err)
	_, err = w.Unlock(unknown.Address())
	require.Error(t, err)

	err = w.AddAccount(acc)
	require.Error(t, err)
}

func TestParticipantBinaryRoundtrip(t *testing.T) {
	rng := pkgtest.Prng(t)
	acc, err := wallet.NewRandomAccount(rng)
	require.NoError(t, err)
	p := acc.Participant()

	data, err := p.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, data, types.AddressLength)

	var q types.Participant
	require.NoError(t, q.UnmarshalBinary(data))
	require.True(t, p.Equal(&q))

	require.Error(t, q.UnmarshalBinary(bytes.Repeat([]byte{1}, types.AddressLength+1)))
}
