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

// Bus is the interface to the bus sampling engine. On real hardware this
// is the PIO program that latches the multiplexed address/data lines; here
// it is whatever is standing in for the console.
//
// The values returned by NextWord() have the following meaning:
//
//	zero            a read request for the word at the current cursor
//	low bit set     a write request. the data is in the upper 16 bits
//	anything else   a new 16-bit aligned address
//
// Note that the low bit of an address word is never address data; the
// sampling engine guarantees 16-bit alignment.
type Bus interface {
	// NextWord blocks until the bus master presents the next cycle word.
	// The bus master paces the cartridge so the wait is always short.
	NextWord() uint32

	// PutWord drives a 16-bit reply word onto the bus. The sampling
	// engine guarantees the word is presented atomically before the next
	// cycle is sampled.
	PutWord(data uint16)

	// ResetEngine returns the bus sampling engine to its start state. It
	// is called when an address is presented that this cartridge does not
	// handle, so that we never drive data in conflict with another device
	// on the bus.
	ResetEngine()
}

// IsWrite returns true if the cycle word is a write request, along with
// the 16 bits of write data.
func IsWrite(word uint32) (uint16, bool) {
	return uint16(word >> 16), word&0x00000001 == 0x00000001
}

// IsRead returns true if the cycle word is a read request.
func IsRead(word uint32) bool {
	return word == 0
}
