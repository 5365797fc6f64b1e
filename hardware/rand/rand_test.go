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

package rand_test

import (
	"testing"

	"github.com/jetsetilly/picopak/hardware/rand"
	"github.com/jetsetilly/picopak/test"
)

func TestReproducible(t *testing.T) {
	a := rand.NewRand()
	b := rand.NewRand()
	a.Seed(0xdeadbeef)
	b.Seed(0xdeadbeef)

	for i := 0; i < 100; i++ {
		test.Equate(t, a.Uint32(), b.Uint32())
	}
}

func TestZeroSeed(t *testing.T) {
	a := rand.NewRand()
	b := rand.NewRand()
	a.Seed(0)
	b.Seed(rand.DefaultSeed)
	test.Equate(t, a.Uint32(), b.Uint32())
}

func TestNeverZero(t *testing.T) {
	// xorshift over a non-zero state never produces zero
	r := rand.NewRand()
	r.Seed(1)
	for i := 0; i < 10000; i++ {
		test.ExpectedSuccess(t, r.Uint32() != 0)
	}
}

func TestKnownSequence(t *testing.T) {
	r := rand.NewRand()
	r.Seed(1)

	// first values of the xorshift32 sequence from state 1
	test.Equate(t, r.Uint32(), uint32(0x00042021))
	test.Equate(t, r.Uint32(), uint32(0x04080601))
}
