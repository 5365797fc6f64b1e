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

package pibus

import (
	"sync/atomic"
)

// DeadWord is returned by VirtualBus.NextWord() once the bus has been
// closed. It is an even, non-zero value and so will be classified as an
// address in an unhandled area. Anyone closing a VirtualBus should raise
// their restart/quit signal first so the dead word is never acted upon.
const DeadWord = uint32(0xfffffffe)

// cycleRead is the bus word that encodes a read request.
const cycleRead = uint32(0)

// VirtualBus is an implementation of the Bus interface for use when there
// is no real console on the other side of the bus. The master side of the
// VirtualBus paces the cartridge exactly like the PI bus does: one cycle
// word at a time, with replies collected in between.
//
// The cartridge side functions (NextWord, PutWord, ResetEngine) and the
// master side functions must be called from different goroutines.
type VirtualBus struct {
	cycles  chan uint32
	replies chan uint16

	resets uint32
	closed uint32
}

// NewVirtualBus is the preferred method of initialisation for the
// VirtualBus type.
func NewVirtualBus() *VirtualBus {
	return &VirtualBus{
		cycles: make(chan uint32),

		// the reply channel is buffered. the boot patch sequence drives
		// two replies before the master has necessarily asked for them
		replies: make(chan uint16, 8),
	}
}

// NextWord implements the Bus interface.
func (b *VirtualBus) NextWord() uint32 {
	v, ok := <-b.cycles
	if !ok {
		return DeadWord
	}
	return v
}

// PutWord implements the Bus interface.
func (b *VirtualBus) PutWord(data uint16) {
	// never stall the cartridge on a slow master. an overfull reply
	// channel means the master has lost interest in the replies
	select {
	case b.replies <- data:
	default:
	}
}

// ResetEngine implements the Bus interface. Replies queued for the
// abandoned burst are discarded.
func (b *VirtualBus) ResetEngine() {
	atomic.AddUint32(&b.resets, 1)
	for {
		select {
		case <-b.replies:
		default:
			return
		}
	}
}

// The functions below are for the master (console) side of the bus.

// SetAddress presents a new address to the cartridge.
func (b *VirtualBus) SetAddress(address uint32) {
	b.cycles <- address
}

// ReadWord performs one read cycle at the current cursor and returns the
// reply word.
func (b *VirtualBus) ReadWord() uint16 {
	b.cycles <- cycleRead
	return <-b.replies
}

// WriteWord performs one write cycle at the current cursor.
func (b *VirtualBus) WriteWord(data uint16) {
	b.cycles <- uint32(data)<<16 | 0x00000001
}

// Read32 reads a 32-bit value as two consecutive read cycles, high half
// first. The address is presented first.
func (b *VirtualBus) Read32(address uint32) uint32 {
	b.SetAddress(address)
	v := uint32(b.ReadWord()) << 16
	return v | uint32(b.ReadWord())
}

// Write32 writes a 32-bit value as two consecutive write cycles, high
// half first. The address is presented first.
func (b *VirtualBus) Write32(address uint32, data uint32) {
	b.SetAddress(address)
	b.WriteWord(uint16(data >> 16))
	b.WriteWord(uint16(data))
}

// ResetCount returns the number of times the cartridge has reset the bus
// sampling engine.
func (b *VirtualBus) ResetCount() int {
	return int(atomic.LoadUint32(&b.resets))
}

// Close the bus. NextWord() returns DeadWord forever after. Raise any
// restart signal before calling Close.
func (b *VirtualBus) Close() {
	if atomic.CompareAndSwapUint32(&b.closed, 0, 1) {
		close(b.cycles)
	}
}
