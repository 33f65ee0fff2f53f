// Copyright 2025 - See NOTICE file for copyright holders.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package channel implements the bilateral payment-channel core: the keyed
// registry of channel records, the lifecycle state machine for creating,
// funding and closing channels, and the timeout-gated unilateral close path.
// The Hub orchestrates all operations, moving funds through the escrow
// backend atomically with every registry update.
package channel
