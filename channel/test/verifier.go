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

package test

import (
	"perun.network/perun-channel-core/wallet"
	wtypes "perun.network/perun-channel-core/wallet/types"
)

// AcceptAllVerifier accepts every well-formed signature without checking it.
// It is insecure by construction and mirrors environments that treat
// possession of the caller identity as proof of authorship. Test double
// only; never wire it into a hub that guards real funds.
type AcceptAllVerifier struct{}

var _ wallet.Verifier = AcceptAllVerifier{}

// Verify implements wallet.Verifier.
func (AcceptAllVerifier) Verify(_ []byte, sig []byte, _ *wtypes.Participant) (bool, error) {
	return len(sig) == wallet.SignatureLength, nil
}
