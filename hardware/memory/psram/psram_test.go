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

package psram_test

import (
	"testing"

	"github.com/jetsetilly/picopak/hardware/memory/psram"
	"github.com/jetsetilly/picopak/test"
)

func TestResolveMonotonic(t *testing.T) {
	arr, err := psram.NewArray(3, 0x100000)
	test.ExpectedSuccess(t, err)

	// walking the flat offset upwards never decreases the chip index
	lastChip := 0
	for offset := uint32(0); offset < 3*0x100000; offset += 0x40000 {
		chip, chipOffset := arr.Resolve(offset)
		test.ExpectedSuccess(t, chip >= lastChip)
		test.Equate(t, chipOffset, offset%0x100000)
		lastChip = chip
	}
	test.Equate(t, lastChip, 3)
}

func TestResolveChipBoundary(t *testing.T) {
	arr, err := psram.NewArray(8, 0x100000)
	test.ExpectedSuccess(t, err)

	chip, offset := arr.Resolve(0x0fffff)
	test.Equate(t, chip, 1)
	test.Equate(t, offset, 0x0fffff)

	chip, offset = arr.Resolve(0x100000)
	test.Equate(t, chip, 2)
	test.Equate(t, offset, 0)
}

func TestSelectChip(t *testing.T) {
	arr, err := psram.NewArray(8, 0x100000)
	test.ExpectedSuccess(t, err)
	test.Equate(t, arr.Selected(), psram.StartChip)

	err = arr.SelectChip(3)
	test.ExpectedSuccess(t, err)
	test.Equate(t, arr.Selected(), 3)

	// chip zero and out-of-range chips are rejected
	err = arr.SelectChip(0)
	test.ExpectedFailure(t, err)
	err = arr.SelectChip(9)
	test.ExpectedFailure(t, err)

	// failed selects do not appear in the history
	h := arr.History()
	test.Equate(t, len(h), 1)
	test.Equate(t, h[0], 3)
}

func TestProgramAndRead(t *testing.T) {
	arr, err := psram.NewArray(2, 0x1000)
	test.ExpectedSuccess(t, err)

	err = arr.Program(0x10, []byte{0xde, 0xad, 0xbe, 0xef})
	test.ExpectedSuccess(t, err)

	test.Equate(t, arr.ReadWord(0x10), 0xdead)
	test.Equate(t, arr.ReadWord(0x12), 0xbeef)

	// odd offsets read the word the offset falls in
	test.Equate(t, arr.ReadWord(0x11), 0xdead)

	// programming takes the chip out of direct-read mode
	test.ExpectedSuccess(t, !arr.DirectRead(1))
	err = arr.EnableDirectRead(1)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, arr.DirectRead(1))
}

func TestProgramOverrun(t *testing.T) {
	arr, err := psram.NewArray(1, 0x1000)
	test.ExpectedSuccess(t, err)

	err = arr.Program(0x0ffe, []byte{0x00, 0x01, 0x02})
	test.ExpectedFailure(t, err)
}

func TestAccessorPrefetch(t *testing.T) {
	arr, err := psram.NewArray(1, 0x1000)
	test.ExpectedSuccess(t, err)

	data := make([]byte, 0x1000)
	for i := range data {
		data[i] = byte(i)
	}
	err = arr.Program(0, data)
	test.ExpectedSuccess(t, err)

	acc := psram.NewAccessor(arr)
	acc.Prefetch(0x100)
	acc.WaitBounded()
	test.ExpectedSuccess(t, !acc.Busy())

	// words inside the prefetched window
	test.Equate(t, acc.Word(0x100), uint16(0x0001))
	test.Equate(t, acc.Word(0x102), uint16(0x0203))

	// a word outside the window triggers a fresh transfer
	test.Equate(t, acc.Word(0x800), uint16(0x0001))
}

func TestAccessorInvalidate(t *testing.T) {
	arr, err := psram.NewArray(1, 0x1000)
	test.ExpectedSuccess(t, err)

	err = arr.Program(0, []byte{0x11, 0x22})
	test.ExpectedSuccess(t, err)

	acc := psram.NewAccessor(arr)
	test.Equate(t, acc.Word(0), uint16(0x1122))

	// reprogram behind the accessor's back. the buffered value is stale
	// until the window is invalidated
	err = arr.Program(0, []byte{0x33, 0x44})
	test.ExpectedSuccess(t, err)
	test.Equate(t, acc.Word(0), uint16(0x1122))

	acc.Invalidate()
	test.Equate(t, acc.Word(0), uint16(0x3344))
}
