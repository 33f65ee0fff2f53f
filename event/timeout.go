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

package event

// HeightTimeout is a deadline measured against the ledger's monotonic height
// clock.
type HeightTimeout struct {
	Deadline uint64
}

// MakeHeightTimeout returns a timeout expiring delta heights after now.
func MakeHeightTimeout(now, delta uint64) HeightTimeout {
	return HeightTimeout{Deadline: now + delta}
}

// Elapsed reports whether the deadline has been reached at the given height.
func (t HeightTimeout) Elapsed(height uint64) bool {
	return height >= t.Deadline
}
