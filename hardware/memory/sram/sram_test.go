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

package sram_test

import (
	"testing"

	"github.com/jetsetilly/picopak/hardware/memory/sram"
	"github.com/jetsetilly/picopak/test"
)

func TestFold(t *testing.T) {
	// within the first bank the fold is the identity over the low bits
	test.Equate(t, sram.Fold(0x00000000), uint32(0x0000))
	test.Equate(t, sram.Fold(0x00001234), uint32(0x1234))
	test.Equate(t, sram.Fold(0x00007fff), uint32(0x7fff))

	// bits 15 to 17 do not contribute. mirrors of the first bank
	test.Equate(t, sram.Fold(0x00008000), uint32(0x0000))
	test.Equate(t, sram.Fold(0x00038000), uint32(0x0000))

	// bits 18 and 19 select the bank
	test.Equate(t, sram.Fold(0x00040000), uint32(0x08000))
	test.Equate(t, sram.Fold(0x00080000), uint32(0x10000))
	test.Equate(t, sram.Fold(0x000c0000), uint32(0x18000))
	test.Equate(t, sram.Fold(0x000c7fff), uint32(0x1ffff))
}

func TestReadWrite(t *testing.T) {
	m := sram.NewMem()

	m.WriteWord(0x0010, 0xcafe)
	test.Equate(t, m.ReadWord(0x0010), 0xcafe)

	// reads through a mirror see the same word
	test.Equate(t, m.ReadWord(0x8010), 0xcafe)

	// different banks are distinct
	m.WriteWord(0x40010, 0xbabe)
	test.Equate(t, m.ReadWord(0x0010), 0xcafe)
	test.Equate(t, m.ReadWord(0x40010), 0xbabe)
}

func TestSnapshotRestore(t *testing.T) {
	m := sram.NewMem()
	m.WriteWord(0x0000, 0x1122)

	s := m.Snapshot()
	test.Equate(t, len(s), sram.Size)
	test.Equate(t, s[0], uint8(0x11))
	test.Equate(t, s[1], uint8(0x22))

	n := sram.NewMem()
	n.Restore(s)
	test.Equate(t, n.ReadWord(0x0000), 0x1122)
}
