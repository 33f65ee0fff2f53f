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

package types

import "math/big"

// MaxBalance is the maximum representable balance, 2^128 - 1. Balances are
// unsigned 128-bit values on the wire.
var MaxBalance = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)) //nolint:gomnd

// ValidBalance reports whether x is within [0, MaxBalance].
func ValidBalance(x *big.Int) bool {
	return x != nil && x.Sign() >= 0 && x.Cmp(MaxBalance) <= 0
}

// CheckedAdd returns a + b and whether the sum stays within MaxBalance.
// Inputs must already be valid balances.
func CheckedAdd(a, b *big.Int) (*big.Int, bool) {
	sum := new(big.Int).Add(a, b)
	return sum, sum.Cmp(MaxBalance) <= 0
}
