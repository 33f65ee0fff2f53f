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

package client

import (
	"context"
	"math/big"

	"github.com/pkg/errors"
	"polycry.pt/poly-go/sync"

	wtypes "perun.network/perun-channel-core/wallet/types"
)

// ErrInsufficientBalance is returned by MemLedger.Submit when a debited
// account cannot cover its payments.
var ErrInsufficientBalance = errors.New("insufficient account balance")

// MemLedger is an in-memory reference Ledger. It validates a whole
// submission before applying any of it, giving the same all-or-nothing
// semantics as a multi-operation ledger transaction.
type MemLedger struct {
	mu       sync.Mutex
	balances map[string]*big.Int
	height   uint64
}

var _ Ledger = (*MemLedger)(nil)

// NewMemLedger creates an empty in-memory ledger at height 0.
func NewMemLedger() *MemLedger {
	return &MemLedger{balances: make(map[string]*big.Int)}
}

// Mint credits an account out of thin air. Test and bootstrap helper.
func (l *MemLedger) Mint(p wtypes.Participant, amount *big.Int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.credit(p, amount)
}

// AdvanceHeight moves the height clock forward by delta.
func (l *MemLedger) AdvanceHeight(delta uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.height += delta
}

// Height returns the current height.
func (l *MemLedger) Height() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.height
}

// Balance returns the current balance of an account.
func (l *MemLedger) Balance(p wtypes.Participant) *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok := l.balances[p.String()]; ok {
		return new(big.Int).Set(b)
	}
	return new(big.Int)
}

// Submit applies all payments atomically. It first checks every debit
// against the balances that result from the preceding payments of the same
// submission; on any failure no balance changes.
func (l *MemLedger) Submit(ctx context.Context, payments []Payment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	staged := make(map[string]*big.Int)
	get := func(p wtypes.Participant) *big.Int {
		k := p.String()
		if b, ok := staged[k]; ok {
			return b
		}
		b := new(big.Int)
		if cur, ok := l.balances[k]; ok {
			b.Set(cur)
		}
		staged[k] = b
		return b
	}
	for _, pay := range payments {
		if pay.Amount == nil || pay.Amount.Sign() < 0 {
			return errors.New("negative payment amount")
		}
		from := get(pay.From)
		if from.Cmp(pay.Amount) < 0 {
			return errors.Wrapf(ErrInsufficientBalance, "account %s", pay.From)
		}
		from.Sub(from, pay.Amount)
		to := get(pay.To)
		to.Add(to, pay.Amount)
	}
	for k, b := range staged {
		l.balances[k] = b
	}
	l.height++
	return nil
}

func (l *MemLedger) credit(p wtypes.Participant, amount *big.Int) {
	k := p.String()
	if b, ok := l.balances[k]; ok {
		b.Add(b, amount)
		return
	}
	l.balances[k] = new(big.Int).Set(amount)
}
