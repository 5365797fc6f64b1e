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

package pibus_test

import (
	"testing"

	"github.com/jetsetilly/picopak/hardware/pibus"
	"github.com/jetsetilly/picopak/test"
)

func TestWordClassification(t *testing.T) {
	// the zero word is a read cycle
	test.ExpectedSuccess(t, pibus.IsRead(0))

	// the low bit marks a write. the data rides in the upper half
	data, ok := pibus.IsWrite(0xcafe0001)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, data, 0xcafe)

	// anything else is an address
	test.ExpectedSuccess(t, !pibus.IsRead(0x10000000))
	_, ok = pibus.IsWrite(0x10000000)
	test.ExpectedSuccess(t, !ok)
}

func TestVirtualBus(t *testing.T) {
	bus := pibus.NewVirtualBus()

	go func() {
		bus.SetAddress(0x10000000)
		bus.WriteWord(0x1234)
	}()

	test.Equate(t, bus.NextWord(), uint32(0x10000000))
	data, ok := pibus.IsWrite(bus.NextWord())
	test.ExpectedSuccess(t, ok)
	test.Equate(t, data, 0x1234)
}

func TestVirtualBusReadCycle(t *testing.T) {
	bus := pibus.NewVirtualBus()

	done := make(chan uint16)
	go func() {
		bus.SetAddress(0x10000000)
		done <- bus.ReadWord()
	}()

	test.Equate(t, bus.NextWord(), uint32(0x10000000))
	test.ExpectedSuccess(t, pibus.IsRead(bus.NextWord()))
	bus.PutWord(0xbeef)
	test.Equate(t, <-done, uint16(0xbeef))
}

func TestVirtualBusClose(t *testing.T) {
	bus := pibus.NewVirtualBus()
	bus.Close()
	test.Equate(t, bus.NextWord(), pibus.DeadWord)
	test.Equate(t, bus.NextWord(), pibus.DeadWord)

	// closing twice is safe
	bus.Close()
}

func TestVirtualBusResetCount(t *testing.T) {
	bus := pibus.NewVirtualBus()
	test.Equate(t, bus.ResetCount(), 0)
	bus.ResetEngine()
	bus.ResetEngine()
	test.Equate(t, bus.ResetCount(), 2)
}
