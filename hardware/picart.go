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

package hardware

import (
	"sync/atomic"

	"github.com/jetsetilly/picopak/comms/transport"
	"github.com/jetsetilly/picopak/hardware/memory/eeprom"
	"github.com/jetsetilly/picopak/hardware/memory/psram"
	"github.com/jetsetilly/picopak/hardware/memory/sram"
	"github.com/jetsetilly/picopak/hardware/memory/xfer"
	"github.com/jetsetilly/picopak/hardware/pibus"
	"github.com/jetsetilly/picopak/hardware/rand"
	"github.com/jetsetilly/picopak/hardware/registers"
	"github.com/jetsetilly/picopak/sdcard"
)

// Cart is the bus controller's view of the cartridge: every component
// the bus handler can route a transaction to, assembled and wired
// together.
//
// The memory array is passed in rather than created here because it is
// shared hardware: the storage controller programs it during a ROM load.
type Cart struct {
	bus pibus.Bus

	RAM    *sram.Mem
	ROM    *psram.Array
	Acc    *psram.Accessor
	Buf    *xfer.Buffer
	EEPROM *eeprom.EEPROM
	Rand   *rand.Rand
	Regs   *registers.File
	Jobs   *sdcard.Jobs

	// raised by Restart(), observed by the Run() loop
	restart int32
}

// NewCart is the preferred method of initialisation for the Cart type.
func NewCart(bus pibus.Bus, trans transport.Transport, arr *psram.Array) *Cart {
	cart := &Cart{
		bus:    bus,
		RAM:    sram.NewMem(),
		ROM:    arr,
		Buf:    xfer.NewBuffer(),
		EEPROM: eeprom.NewEEPROM(),
		Rand:   rand.NewRand(),
	}

	cart.Acc = psram.NewAccessor(arr)

	cart.Jobs = sdcard.NewJobs(trans, cart.Buf, cart.EEPROM)
	cart.Jobs.OnROMLoaded = cart.Restart

	cart.Regs = registers.NewFile(cart.Rand, cart.Jobs)

	return cart
}

// Restart asks the Run() loop to reset the bus engine and start over.
// Called when a new ROM has been loaded, and safe to call from any
// goroutine. Region handlers poll for the restart between transactions
// so it lands even while a burst is being held open.
func (cart *Cart) Restart() {
	atomic.StoreInt32(&cart.restart, 1)
}

// restartPending returns true if a restart has been raised but not yet
// consumed. Region handlers use it to break off a burst.
func (cart *Cart) restartPending() bool {
	return atomic.LoadInt32(&cart.restart) == 1
}

// checkRestart consumes a pending restart.
func (cart *Cart) checkRestart() bool {
	return atomic.CompareAndSwapInt32(&cart.restart, 1, 0)
}
