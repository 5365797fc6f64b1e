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

// Package xfer implements the transfer buffer that sector data is staged
// in before the console reads it out. The buffer is an array of 16-bit
// words but is filled a byte at a time as data arrives from the storage
// controller; bytes fold into words big-endian.
package xfer

import (
	"sync"
)

// Size of the buffer in bytes. Room for eight 512-byte sectors.
const Size = 0x1000

// Words in the buffer.
const Words = Size / 2

// Buffer is the transfer buffer. Concurrency-safe: the storage service
// loop fills it while the bus handler reads it. A read that races a fill
// sees a mix of old and new words; the busy flag exists so that the
// console can avoid the race.
type Buffer struct {
	crit  sync.Mutex
	words [Words]uint16
}

// NewBuffer is the preferred method of initialisation for the Buffer type.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Word returns the 16-bit word at the word index. Indices wrap at the
// buffer size.
func (b *Buffer) Word(idx int) uint16 {
	b.crit.Lock()
	defer b.crit.Unlock()
	return b.words[idx%Words]
}

// SetByte stores a byte at the byte index. Even indices land in the high
// byte of the word, odd indices in the low byte.
func (b *Buffer) SetByte(idx int, data uint8) {
	b.crit.Lock()
	defer b.crit.Unlock()

	w := (idx % Size) / 2
	if idx%2 == 0 {
		b.words[w] = (b.words[w] & 0x00ff) | uint16(data)<<8
	} else {
		b.words[w] = (b.words[w] & 0xff00) | uint16(data)
	}
}

// SetBytes stores a run of bytes starting at the byte index.
func (b *Buffer) SetBytes(idx int, data []byte) {
	for i, d := range data {
		b.SetByte(idx+i, d)
	}
}

// Byte returns the byte at the byte index.
func (b *Buffer) Byte(idx int) uint8 {
	b.crit.Lock()
	defer b.crit.Unlock()

	w := (idx % Size) / 2
	if idx%2 == 0 {
		return uint8(b.words[w] >> 8)
	}
	return uint8(b.words[w])
}
