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

// Package sram implements the battery-backed save RAM exposed in the
// cartridge's SRAM address range. The console addresses the RAM in three
// widely spaced banks; Fold() maps a bus address onto the much smaller
// backing buffer.
package sram

import (
	"sync"
)

// Size of the backing buffer in bytes. Large enough for the three banks
// produced by Fold().
const Size = 0x20000

// Fold collapses a bus address from the SRAM range into an offset within
// the backing buffer. The low fifteen bits address within a bank and
// bits 18 and 19 select the bank.
func Fold(address uint32) uint32 {
	return (address & 0x7fff) | ((address & 0xc0000) >> 3)
}

// Mem is the save RAM. Words are stored big-endian, matching the byte
// order of the bus.
type Mem struct {
	crit sync.Mutex
	data [Size]byte
}

// NewMem is the preferred method of initialisation for the Mem type.
func NewMem() *Mem {
	return &Mem{}
}

// ReadWord returns the 16-bit word at the bus address. The address is
// folded into the backing buffer.
func (m *Mem) ReadWord(address uint32) uint16 {
	m.crit.Lock()
	defer m.crit.Unlock()

	o := Fold(address) &^ 0x01
	return uint16(m.data[o])<<8 | uint16(m.data[o+1])
}

// WriteWord stores the 16-bit word at the bus address. The address is
// folded into the backing buffer.
func (m *Mem) WriteWord(address uint32, data uint16) {
	m.crit.Lock()
	defer m.crit.Unlock()

	o := Fold(address) &^ 0x01
	m.data[o] = uint8(data >> 8)
	m.data[o+1] = uint8(data)
}

// Snapshot returns a copy of the backing buffer. Used when persisting the
// save RAM to storage.
func (m *Mem) Snapshot() []byte {
	m.crit.Lock()
	defer m.crit.Unlock()

	d := make([]byte, Size)
	copy(d, m.data[:])
	return d
}

// Restore replaces the backing buffer with previously persisted content.
// Data longer than the buffer is truncated.
func (m *Mem) Restore(data []byte) {
	m.crit.Lock()
	defer m.crit.Unlock()

	for i := range m.data {
		m.data[i] = 0
	}
	copy(m.data[:], data)
}
