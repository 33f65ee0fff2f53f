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

package wire

import (
	"encoding/binary"
	"errors"
	"math/big"

	"github.com/stellar/go/xdr"

	"perun.network/perun-channel-core/channel/types"
)

// BalanceLength is the fixed width of a balance on the wire, in bytes.
const BalanceLength = 16

// MakeUInt128Parts converts a big.Int to xdr.UInt128Parts. It returns an
// error if the value is negative or exceeds types.MaxBalance.
//
//nolint:gomnd
func MakeUInt128Parts(i *big.Int) (xdr.UInt128Parts, error) {
	if i.Sign() < 0 {
		return xdr.UInt128Parts{}, errors.New("expected non-negative balance")
	}
	if i.Cmp(types.MaxBalance) > 0 {
		return xdr.UInt128Parts{}, errors.New("balance too large")
	}
	b := make([]byte, BalanceLength)
	b = i.FillBytes(b)
	hi := binary.BigEndian.Uint64(b[:8])
	lo := binary.BigEndian.Uint64(b[8:])
	return xdr.UInt128Parts{
		Hi: xdr.Uint64(hi),
		Lo: xdr.Uint64(lo),
	}, nil
}

// ToBigInt converts xdr.UInt128Parts to a big.Int.
//
//nolint:gomnd
func ToBigInt(i xdr.UInt128Parts) (*big.Int, error) {
	b := make([]byte, BalanceLength)
	binary.BigEndian.PutUint64(b[:8], uint64(i.Hi))
	binary.BigEndian.PutUint64(b[8:], uint64(i.Lo))
	return new(big.Int).SetBytes(b), nil
}
