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
	"errors"
	"io"

	"github.com/ethereum/go-ethereum/crypto"
	"perun.network/go-perun/wallet"

	"perun.network/perun-channel-core/wallet/types"
)

// SignatureLength is the fixed length of a settlement signature in bytes,
// [R || S || V] with a one-byte recovery id.
const SignatureLength = 65

// Verifier checks the authenticity of a signature over a message for a
// claimed signer identity. It is the pluggable capability consumed by the
// channel adjudicator; Backend is the reference implementation.
type Verifier interface {
	Verify(msg []byte, sig []byte, signer *types.Participant) (bool, error)
}

type backend struct{}

// Backend performs genuine asymmetric signature verification by recovering
// the secp256k1 public key from the signature and comparing the derived
// address against the claimed signer.
var Backend = backend{}

var _ Verifier = Backend

// DecodeSig decodes a signature of length SignatureLength from the reader.
func (b backend) DecodeSig(reader io.Reader) (wallet.Sig, error) {
	sig := make([]byte, SignatureLength)
	if _, err := io.ReadFull(reader, sig); err != nil {
		return nil, err
	}
	return sig, nil
}

// VerifySignature reports whether sig is a valid signature over msg by the
// given address.
func (b backend) VerifySignature(msg []byte, sig wallet.Sig, a wallet.Address) (bool, error) {
	p, ok := a.(*types.Participant)
	if !ok {
		return false, errors.New("participant has invalid type")
	}
	return b.Verify(msg, sig, p)
}

// Verify implements Verifier.
func (b backend) Verify(msg []byte, sig []byte, signer *types.Participant) (bool, error) {
	if len(sig) != SignatureLength {
		return false, errors.New("invalid signature size")
	}
	pub, err := crypto.SigToPub(crypto.Keccak256(msg), sig)
	if err != nil {
		return false, err
	}
	return crypto.PubkeyToAddress(*pub) == signer.Addr, nil
}
