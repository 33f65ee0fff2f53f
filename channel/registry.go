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
	"math/big"

	"github.com/pkg/errors"
	"polycry.pt/poly-go/sync"

	"perun.network/perun-channel-core/channel/types"
	"perun.network/perun-channel-core/wire"
)

// Registry is the keyed store of channel records. It exclusively owns all
// channel state; records are stored in their canonical wire encoding and
// never deleted, closure is recorded in place.
type Registry struct {
	mu      sync.Mutex
	entries map[string][]byte
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string][]byte)}
}

// InsertIfAbsent stores a new record under the key. It fails with
// ErrChannelExists if the key is already present.
func (r *Registry) InsertIfAbsent(key types.ChannelKey, st types.ChannelState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key.MapKey()
	if _, ok := r.entries[k]; ok {
		return types.ErrChannelExists
	}
	data, err := encodeRecord(key, st)
	if err != nil {
		return err
	}
	r.entries[k] = data
	return nil
}

// Get returns the state stored under the key, or ErrChannelNotFound.
func (r *Registry) Get(key types.ChannelKey) (types.ChannelState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	data, ok := r.entries[key.MapKey()]
	if !ok {
		return types.ChannelState{}, types.ErrChannelNotFound
	}
	return decodeRecord(data)
}

// Replace overwrites an existing record. Callers must have verified
// existence; a miss here indicates a broken operation sequence.
func (r *Registry) Replace(key types.ChannelKey, st types.ChannelState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key.MapKey()
	if _, ok := r.entries[k]; !ok {
		return errors.WithMessage(types.ErrChannelNotFound, "replace on missing entry")
	}
	data, err := encodeRecord(key, st)
	if err != nil {
		return err
	}
	r.entries[k] = data
	return nil
}

// OpenDepositsTotal sums TotalDeposited over all open channels. The escrow
// invariant compares it against the pooled escrow balance.
func (r *Registry) OpenDepositsTotal() (*big.Int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := new(big.Int)
	for _, data := range r.entries {
		st, err := decodeRecord(data)
		if err != nil {
			return nil, err
		}
		if st.Open {
			total.Add(total, st.TotalDeposited)
		}
	}
	return total, nil
}

func encodeRecord(key types.ChannelKey, st types.ChannelState) ([]byte, error) {
	rec, err := wire.MakeChannel(key, st)
	if err != nil {
		return nil, errors.WithMessage(err, "encoding channel record")
	}
	data, err := rec.MarshalBinary()
	return data, errors.WithMessage(err, "marshaling channel record")
}

func decodeRecord(data []byte) (types.ChannelState, error) {
	var rec wire.Channel
	if err := rec.UnmarshalBinary(data); err != nil {
		return types.ChannelState{}, errors.WithMessage(err, "unmarshaling channel record")
	}
	st, err := wire.ToChannelState(rec)
	return st, errors.WithMessage(err, "decoding channel record")
}
