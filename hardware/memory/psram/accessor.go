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
	"runtime"
	"sync"
	"sync/atomic"
)

// PrefetchWords is the size of the accessor's word buffer. The transfer
// engine always fills the whole buffer.
const PrefetchWords = 32

// SpinLimit is the maximum number of yields the accessor will make while
// waiting for an in-flight transfer. Beyond the limit the accessor gives
// up and serves whatever the buffer currently holds.
const SpinLimit = 10000

// Accessor drives prefetching transfers from the Array into a small word
// buffer on behalf of the bus handler. At most one transfer is in flight
// at any time.
//
// The bus handler is the only caller. Busy() can be polled from the
// register file to expose the transfer status on the bus.
type Accessor struct {
	arr *Array

	crit   sync.Mutex
	buffer [PrefetchWords]uint16

	// offset of buffer[0] within the selected chip. valid is false until
	// the first transfer has completed
	start uint32
	valid bool

	// set while a transfer is in flight. atomic access
	busy int32

	// Yield is called on every iteration of a bounded wait. It gives the
	// loop that shares the core with the transfer engine a chance to run.
	// Must not be nil.
	Yield func()
}

// NewAccessor is the preferred method of initialisation for the Accessor
// type. The Yield function defaults to runtime.Gosched so that a bounded
// wait always gives the transfer goroutine a chance to finish.
func NewAccessor(arr *Array) *Accessor {
	return &Accessor{
		arr:   arr,
		Yield: runtime.Gosched,
	}
}

// Busy returns whether a transfer is in flight.
func (acc *Accessor) Busy() bool {
	return atomic.LoadInt32(&acc.busy) == 1
}

// WaitBounded spins until the in-flight transfer completes or the spin
// limit is reached. The accessor never blocks indefinitely: a wedged
// transfer engine must not be able to wedge the bus handler.
func (acc *Accessor) WaitBounded() {
	for i := 0; i < SpinLimit && acc.Busy(); i++ {
		acc.Yield()
	}
}

// Prefetch begins a transfer of PrefetchWords words starting at the
// offset within the currently selected chip. If the offset is already
// buffered the call is a no-op. A transfer already in flight is waited
// for first, keeping the single-transfer invariant.
func (acc *Accessor) Prefetch(offset uint32) {
	offset &^= 0x01

	acc.WaitBounded()

	acc.crit.Lock()
	if acc.valid && acc.contains(offset) {
		acc.crit.Unlock()
		return
	}
	acc.crit.Unlock()

	atomic.StoreInt32(&acc.busy, 1)

	go func() {
		acc.crit.Lock()
		for i := 0; i < PrefetchWords; i++ {
			acc.buffer[i] = acc.arr.ReadWord(offset + uint32(i*2))
		}
		acc.start = offset
		acc.valid = true
		acc.crit.Unlock()

		atomic.StoreInt32(&acc.busy, 0)
	}()
}

// Word returns the 16-bit word at the offset within the selected chip.
// If the offset is outside the buffered window a new transfer is started
// and waited for (bounded). If the wait expires the stale buffer content
// is returned; the bus handler cannot stall the console.
func (acc *Accessor) Word(offset uint32) uint16 {
	offset &^= 0x01

	acc.crit.Lock()
	hit := acc.valid && acc.contains(offset)
	acc.crit.Unlock()

	if !hit {
		acc.Prefetch(offset)
	}
	acc.WaitBounded()

	acc.crit.Lock()
	defer acc.crit.Unlock()

	if !acc.valid || !acc.contains(offset) {
		// transfer has not landed. serve the stale value at the buffer
		// position the offset would have
		return acc.buffer[(offset/2)%PrefetchWords]
	}

	return acc.buffer[(offset-acc.start)/2]
}

// Invalidate discards the buffered window. Called after the array has
// been reprogrammed or the selected chip has changed.
func (acc *Accessor) Invalidate() {
	acc.WaitBounded()
	acc.crit.Lock()
	acc.valid = false
	acc.crit.Unlock()
}

// contains returns whether the offset falls inside the buffered window.
// The accessor's critical section must be held.
func (acc *Accessor) contains(offset uint32) bool {
	return offset >= acc.start && offset < acc.start+PrefetchWords*2
}
