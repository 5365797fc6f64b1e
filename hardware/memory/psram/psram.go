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

package psram

import (
	"sync"

	"github.com/jetsetilly/picopak/curated"
)

// Sentinal error messages for the psram package.
const (
	InvalidChip = "psram: invalid chip (%d)"
	NotMapped   = "psram: address not mapped to any chip (%#08x)"
)

// The default arrangement of the memory array. Chip zero does not exist;
// the chip select lines address chips one to eight.
const (
	DefaultNumChips = 8
	DefaultCapacity = 8 * 1024 * 1024
	StartChip       = 1
)

// Array is the banked memory array that holds the cartridge ROM. The ROM
// image is distributed over several discrete chips, each with the same
// byte capacity. Only one chip can be routed to the data lines at a time;
// SelectChip() asserts the chip select lines.
//
// The array is external hardware: the bus-facing controller reads from it
// and the storage controller programs it during a ROM load. They never do
// so at the same time - the busy/romLoading flags and the restart signal
// enforce that at the system level.
type Array struct {
	crit sync.Mutex

	chips    [][]byte
	capacity uint32

	// the chip currently routed to the data lines
	selected int

	// every chip select in order of occurrence. the record is what allows
	// tests to reason about select-before-transfer ordering
	history []int

	// whether the chip has been returned to direct-read mode since it was
	// last programmed
	directRead []bool
}

// NewArray is the preferred method of initialisation for the Array type.
// Capacity must be a power of two.
func NewArray(numChips int, capacity uint32) (*Array, error) {
	if numChips < 1 {
		return nil, curated.Errorf("psram: invalid number of chips (%d)", numChips)
	}
	if capacity == 0 || capacity&(capacity-1) != 0 {
		return nil, curated.Errorf("psram: capacity must be a power of two (%d)", capacity)
	}

	arr := &Array{
		chips:      make([][]byte, numChips+StartChip),
		capacity:   capacity,
		selected:   StartChip,
		directRead: make([]bool, numChips+StartChip),
	}

	for i := StartChip; i < len(arr.chips); i++ {
		arr.chips[i] = make([]byte, capacity)
	}

	return arr, nil
}

// NumChips returns the number of chips in the array, not counting the
// non-existent chip zero.
func (arr *Array) NumChips() int {
	return len(arr.chips) - StartChip
}

// Capacity returns the byte capacity of a single chip.
func (arr *Array) Capacity() uint32 {
	return arr.capacity
}

// Resolve maps a flat offset into the ROM space onto a (chip, offset)
// pair. It is a pure function: it does not touch the chip select lines.
//
// Offsets are contiguous: the first byte of chip n+1 immediately follows
// the last byte of chip n.
func (arr *Array) Resolve(offset uint32) (int, uint32) {
	return StartChip + int(offset/arr.capacity), offset % arr.capacity
}

// SelectChip asserts the chip select lines so that subsequent transfers
// are routed to the chosen chip. The caller must allow SelectChip to
// complete before issuing a transfer that depends on the new chip.
func (arr *Array) SelectChip(chip int) error {
	arr.crit.Lock()
	defer arr.crit.Unlock()

	if chip < StartChip || chip >= len(arr.chips) {
		return curated.Errorf(InvalidChip, chip)
	}

	arr.selected = chip
	arr.history = append(arr.history, chip)

	return nil
}

// Selected returns the chip currently routed to the data lines.
func (arr *Array) Selected() int {
	arr.crit.Lock()
	defer arr.crit.Unlock()
	return arr.selected
}

// History returns a copy of the chip select history.
func (arr *Array) History() []int {
	arr.crit.Lock()
	defer arr.crit.Unlock()

	h := make([]int, len(arr.history))
	copy(h, arr.history)
	return h
}

// ReadWord returns the big-endian 16-bit word at the offset within the
// currently selected chip. The offset is masked into the chip's capacity,
// mirroring how the address lines are wired.
func (arr *Array) ReadWord(offset uint32) uint16 {
	arr.crit.Lock()
	defer arr.crit.Unlock()

	c := arr.chips[arr.selected]
	offset &= (arr.capacity - 1) &^ 0x01
	return uint16(c[offset])<<8 | uint16(c[offset+1])
}

// Program writes data into the currently selected chip, starting at the
// offset. Used by the storage controller during a ROM load. Programming a
// chip takes it out of direct-read mode.
func (arr *Array) Program(offset uint32, data []byte) error {
	arr.crit.Lock()
	defer arr.crit.Unlock()

	c := arr.chips[arr.selected]
	if int(offset)+len(data) > len(c) {
		return curated.Errorf("psram: program overruns chip %d (%#08x + %d bytes)", arr.selected, offset, len(data))
	}

	copy(c[offset:], data)
	arr.directRead[arr.selected] = false

	return nil
}

// EnableDirectRead returns a chip to direct-read mode. A chip that has
// been programmed must be returned to direct-read mode before the bus
// handler can serve reads from it.
func (arr *Array) EnableDirectRead(chip int) error {
	arr.crit.Lock()
	defer arr.crit.Unlock()

	if chip < StartChip || chip >= len(arr.chips) {
		return curated.Errorf(InvalidChip, chip)
	}

	arr.directRead[chip] = true
	return nil
}

// DirectRead returns whether the chip is in direct-read mode.
func (arr *Array) DirectRead(chip int) bool {
	arr.crit.Lock()
	defer arr.crit.Unlock()

	if chip < StartChip || chip >= len(arr.chips) {
		return false
	}
	return arr.directRead[chip]
}
