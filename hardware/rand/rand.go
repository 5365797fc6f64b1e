// This file is part of Picopak.
//
// Picopak is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Picopak is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Picopak.  If not, see <https://www.gnu.org/licenses/>.

// Package rand implements the pseudo-random word stream exposed in the
// cartridge's random address range. The generator is a 32-bit xorshift;
// cheap enough to run between bus cycles and good enough for game use.
//
// The stream is deliberately reproducible: seeding with the same value
// always produces the same sequence, which is what makes the range
// usable for testing the bus path.
package rand

import (
	"sync"
)

// DefaultSeed is the generator state after a reset. A xorshift generator
// must never hold state zero; a seed of zero is replaced with this value.
const DefaultSeed = 0x12345678

// Rand is the generator. Concurrency-safe.
type Rand struct {
	crit  sync.Mutex
	state uint32
}

// NewRand is the preferred method of initialisation for the Rand type.
func NewRand() *Rand {
	return &Rand{state: DefaultSeed}
}

// Seed resets the generator state. A zero seed selects DefaultSeed.
func (r *Rand) Seed(seed uint32) {
	r.crit.Lock()
	defer r.crit.Unlock()

	if seed == 0 {
		seed = DefaultSeed
	}
	r.state = seed
}

// Uint32 advances the generator and returns the new state.
func (r *Rand) Uint32() uint32 {
	r.crit.Lock()
	defer r.crit.Unlock()

	r.state ^= r.state << 13
	r.state ^= r.state >> 17
	r.state ^= r.state << 5
	return r.state
}

// Word advances the generator and returns the low sixteen bits of the
// new state.
func (r *Rand) Word() uint16 {
	return uint16(r.Uint32())
}
