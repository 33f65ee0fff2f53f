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

// Package event carries the typed lifecycle notifications emitted on every
// successful channel transition, and the height-based dispute timeout.
package event

import (
	"math/big"

	"polycry.pt/poly-go/sync"
)

// Type enumerates the lifecycle transitions a channel can go through.
type Type int

const (
	TypeOpen       Type = iota // channel created, initial deposit escrowed
	TypeFund                   // deposit topped up
	TypeClosed                 // cooperative close, funds paid out
	TypeForceClose             // unilateral close initiated, dispute window open
	TypeResolved               // unilateral close finalized, funds paid out
	TypeSwept                  // escrow emptied by the administrative sweep
)

// Event describes one successful transition.
type Event struct {
	Type   Type
	ID     []byte
	BalA   *big.Int
	BalB   *big.Int
	Height uint64
}

// Subscription receives events published after it was created. Events are
// dropped rather than blocking a slow consumer.
type Subscription struct {
	bus *Bus
	C   chan Event
}

// Close detaches the subscription from its bus.
func (s *Subscription) Close() {
	s.bus.unsubscribe(s)
}

// Bus fans published events out to all current subscribers.
type Bus struct {
	mu   sync.Mutex
	subs []*Subscription
}

// NewBus creates an event bus with no subscribers.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a new subscriber with the given channel buffer.
func (b *Bus) Subscribe(buffer int) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := &Subscription{bus: b, C: make(chan Event, buffer)}
	b.subs = append(b.subs, s)
	return s
}

// Publish delivers the event to every subscriber. A nil bus is a no-op, so
// event emission is optional for Hub users.
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs {
		select {
		case s.C <- e:
		default:
		}
	}
}

func (b *Bus) unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			close(s.C)
			return
		}
	}
}
