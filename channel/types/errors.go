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

import "errors"

// The enumerated error codes surfaced by channel operations. Every public
// operation validates all of its preconditions before any mutation; the first
// failing check aborts the whole operation with one of these, and no partial
// state is ever committed.
var (
	// ErrNotAuthorized is returned when the caller lacks the required role.
	ErrNotAuthorized = errors.New("caller not authorized")
	// ErrChannelExists is returned when creating a channel whose key is
	// already present.
	ErrChannelExists = errors.New("channel already exists")
	// ErrChannelNotFound is returned when no channel is stored under the
	// given key.
	ErrChannelNotFound = errors.New("channel not found")
	// ErrInsufficientFunds is returned when a proposed balance split does not
	// sum to the channel's total deposit.
	ErrInsufficientFunds = errors.New("balances do not match deposited funds")
	// ErrInvalidSignature is returned when a settlement signature does not
	// verify against the claimed signer.
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrChannelClosed is returned when operating on a channel that has
	// already been closed.
	ErrChannelClosed = errors.New("channel is closed")
	// ErrDisputePeriod is returned when a unilateral close is not yet
	// finalizable.
	ErrDisputePeriod = errors.New("dispute period has not elapsed")
	// ErrInvalidInput is returned for malformed inputs before any state is
	// touched.
	ErrInvalidInput = errors.New("invalid input")
	// ErrBalanceOverflow is returned when a balance update would exceed
	// MaxBalance.
	ErrBalanceOverflow = errors.New("balance overflow")
	// ErrEscrowUnderfunded is returned when the pooled escrow no longer
	// covers the sum of all open channel deposits.
	ErrEscrowUnderfunded = errors.New("escrow does not cover open channel deposits")
)
