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
	"github.com/jetsetilly/picopak/hardware/memory/memorymap"
	"github.com/jetsetilly/picopak/hardware/pibus"
	"github.com/jetsetilly/picopak/logger"
)

// The two half-words served for the first address of the boot patch.
// Together they form the word the console's boot code expects to find at
// the start of the ROM.
const (
	bootPatchHi = 0x8037
	bootPatchLo = 0xff40
)

// restartBreak is returned by a region handler that has broken off a
// burst because a restart is pending. The Run() loop consumes the
// restart before the word is ever classified, so the value itself is
// never acted on.
const restartBreak = 0

// Run is the bus handler. It consumes words from the bus engine and
// routes each burst to the component the address maps to. The loop ends
// when the bus engine is closed or the handler is deliberately halted.
//
// A burst begins with an address word. The words that follow are reads
// and writes against a cursor that starts at that address and advances
// two bytes per transaction. The next address word ends the burst; it is
// returned by the region handler and becomes the start of the next one.
//
// Region handlers poll for a pending restart between transactions. A bus
// master holding a burst open indefinitely cannot keep a restart from
// landing.
func (cart *Cart) Run() error {
	word := cart.bus.NextWord()

	for {
		if word == pibus.DeadWord {
			return nil
		}

		if cart.checkRestart() {
			logger.Log("pi", "restarting bus engine")
			cart.bus.ResetEngine()
			cart.Acc.Invalidate()
			word = cart.bus.NextWord()
			continue
		}

		// storage jobs are only serviced between bursts. a burst in
		// progress owns the core
		cart.Jobs.Service()

		addr := word
		switch memorymap.MapAddress(addr) {
		case memorymap.BootPatch:
			word = cart.serveBootPatch(addr)
		case memorymap.ROM:
			word = cart.serveROM(addr)
		case memorymap.SRAM:
			word = cart.serveSRAM(addr)
		case memorymap.Base:
			word = cart.serveBuffer(addr)
		case memorymap.CIBase:
			word = cart.serveRegisters(addr)
		case memorymap.Rand:
			word = cart.serveRand(addr)
		default:
			word = cart.serveUnmapped(addr)
		}
	}
}

// serveBootPatch answers the very first read burst of the boot sequence.
// The two patched half-words are queued speculatively, before the reads
// that want them arrive; once both are consumed the burst falls through
// to the normal ROM path.
func (cart *Cart) serveBootPatch(addr uint32) uint32 {
	cart.bus.PutWord(bootPatchHi)
	cart.bus.PutWord(bootPatchLo)

	consumed := 0
	for consumed < 2 {
		if cart.restartPending() {
			return restartBreak
		}

		word := cart.bus.NextWord()
		if pibus.IsRead(word) {
			consumed++
			continue
		}
		if _, ok := pibus.IsWrite(word); ok {
			// writes into the boot patch are ignored
			continue
		}
		return word
	}

	return cart.serveROMRun(addr + 4)
}

// serveROM handles a read burst in the ROM range.
func (cart *Cart) serveROM(addr uint32) uint32 {
	return cart.serveROMRun(addr)
}

func (cart *Cart) serveROMRun(cursor uint32) uint32 {
	cart.prepareROM(cursor)

	for {
		if cart.restartPending() {
			return restartBreak
		}

		word := cart.bus.NextWord()

		if pibus.IsRead(word) {
			cart.bus.PutWord(cart.Acc.Word(cart.romOffset(cursor)))
			cursor += 2

			// refill ahead of the cursor. a cursor that has crossed a
			// chip boundary switches chips here
			cart.prepareROM(cursor)
			continue
		}

		if _, ok := pibus.IsWrite(word); ok {
			// ROM is not writable. the cursor still advances
			cursor += 2
			continue
		}

		return word
	}
}

// prepareROM makes sure the right chip is selected and that a prefetch
// covering the cursor is underway.
func (cart *Cart) prepareROM(cursor uint32) {
	flat := (cursor - memorymap.OriginROM) % (cart.ROM.Capacity() * uint32(cart.ROM.NumChips()))
	chip, offset := cart.ROM.Resolve(flat)

	if chip != cart.ROM.Selected() {
		// wait out any transfer against the outgoing chip before the
		// select. a transfer must never straddle a chip switch
		cart.Acc.Invalidate()

		err := cart.ROM.SelectChip(chip)
		if err != nil {
			logger.Logf("pi", "%v", err)
			return
		}
	}

	cart.Acc.Prefetch(offset)
}

// romOffset maps a bus cursor onto an offset within the selected chip.
func (cart *Cart) romOffset(cursor uint32) uint32 {
	flat := (cursor - memorymap.OriginROM) % (cart.ROM.Capacity() * uint32(cart.ROM.NumChips()))
	_, offset := cart.ROM.Resolve(flat)
	return offset
}

// serveSRAM handles a burst in the save RAM range.
func (cart *Cart) serveSRAM(addr uint32) uint32 {
	cursor := addr - memorymap.OriginSRAM

	for {
		if cart.restartPending() {
			return restartBreak
		}

		word := cart.bus.NextWord()

		if data, ok := pibus.IsWrite(word); ok {
			cart.RAM.WriteWord(cursor, data)
			cursor += 2
			continue
		}

		if pibus.IsRead(word) {
			cart.bus.PutWord(cart.RAM.ReadWord(cursor))
			cursor += 2
			continue
		}

		return word
	}
}

// serveBuffer handles a burst in the transfer buffer range. The console
// reads sector data out of the buffer and writes ROM filenames into it.
func (cart *Cart) serveBuffer(addr uint32) uint32 {
	cursor := addr - memorymap.OriginBase

	for {
		if cart.restartPending() {
			return restartBreak
		}

		word := cart.bus.NextWord()

		if data, ok := pibus.IsWrite(word); ok {
			cart.Buf.SetByte(int(cursor), uint8(data>>8))
			cart.Buf.SetByte(int(cursor)+1, uint8(data))
			cursor += 2
			continue
		}

		if pibus.IsRead(word) {
			cart.bus.PutWord(cart.Buf.Word(int(cursor) / 2))
			cursor += 2
			continue
		}

		return word
	}
}

// serveRegisters handles a burst in the register range.
func (cart *Cart) serveRegisters(addr uint32) uint32 {
	cursor := addr - memorymap.OriginCIBase

	for {
		if cart.restartPending() {
			return restartBreak
		}

		word := cart.bus.NextWord()

		if data, ok := pibus.IsWrite(word); ok {
			cart.Regs.WriteHalf(cursor, data)
			cursor += 2
			continue
		}

		if pibus.IsRead(word) {
			cart.bus.PutWord(cart.Regs.ReadHalf(cursor))
			cursor += 2
			continue
		}

		return word
	}
}

// serveRand handles a burst in the random stream range. There is no
// cursor to speak of: every read returns the next word of the stream and
// writes are meaningless.
func (cart *Cart) serveRand(addr uint32) uint32 {
	for {
		if cart.restartPending() {
			return restartBreak
		}

		word := cart.bus.NextWord()

		if pibus.IsRead(word) {
			cart.bus.PutWord(cart.Rand.Word())
			continue
		}

		if _, ok := pibus.IsWrite(word); ok {
			continue
		}

		return word
	}
}

// serveUnmapped handles an address the cartridge does not decode. The
// burst is not served at all: the sampling engine is resynced in case
// another device on the bus claims the range, and the handler waits for
// the next word.
func (cart *Cart) serveUnmapped(addr uint32) uint32 {
	logger.Logf("pi", "unmapped address (%#08x). resyncing bus engine", addr)
	cart.bus.ResetEngine()
	return cart.bus.NextWord()
}
