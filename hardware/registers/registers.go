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

// Package registers implements the command and status registers that the
// console reaches through the cartridge's register address range.
//
// Registers are 32 bits wide but the bus moves 16 bits at a time. A
// 32-bit value therefore arrives as two half-word writes, high half
// first, and leaves as two half-word reads. The file assembles write
// halves into a latch and acts when the low half lands. Reads of the two
// halves are independent: a status bit can change between them. The
// console is expected to read status registers twice when it matters.
package registers

import (
	"strings"
	"sync"

	"github.com/jetsetilly/picopak/hardware/rand"
	"github.com/jetsetilly/picopak/logger"
)

// Byte offsets of the registers within the register address range.
const (
	Magic            = 0x00
	UartTX           = 0x04
	RandSeed         = 0x08
	SDBusy           = 0x0c
	SDReadSector0    = 0x10
	SDReadSector1    = 0x14
	SDReadNumSectors = 0x18
	SDSelectROM      = 0x1c
	SDCommand        = 0x20
)

// MagicValue is what a read of the Magic register returns. Game code
// probes it to detect the cartridge.
const MagicValue uint32 = 0x50433634 // "PC64"

// Values written to the SDCommand register.
const (
	CommandSDRead = 0x0001
)

// Requester is the job interface the register file drives. Implemented
// by the storage job manager.
type Requester interface {
	// Busy returns whether a storage job is outstanding.
	Busy() bool

	// BeginSDRead requests sectors from storage. The call only notes the
	// request; the manager's service loop carries it out.
	BeginSDRead(sector uint64, numSectors uint32)

	// BeginROMLoad requests that a new ROM is loaded. The filename has
	// already been staged in the transfer buffer; nameLen is its length
	// in bytes.
	BeginROMLoad(nameLen int)
}

// File is the register file.
type File struct {
	crit sync.Mutex

	rnd *rand.Rand
	req Requester

	// write latch. the high half of a 32-bit write is held here until
	// the low half arrives
	latch uint32

	// assembled register values
	sector0    uint32
	sector1    uint32
	numSectors uint32

	// characters written to UartTX are folded into a line and logged
	// when a linefeed arrives
	uartLine strings.Builder
}

// NewFile is the preferred method of initialisation for the File type.
func NewFile(rnd *rand.Rand, req Requester) *File {
	return &File{
		rnd: rnd,
		req: req,
	}
}

// ReadHalf returns the half-word at the byte offset. The two halves of a
// register are read independently.
func (f *File) ReadHalf(offset uint32) uint16 {
	f.crit.Lock()
	defer f.crit.Unlock()

	switch offset &^ 0x03 {
	case Magic:
		if offset&0x02 == 0 {
			return uint16(MagicValue >> 16)
		}
		return uint16(MagicValue & 0xffff)

	case SDBusy:
		if offset&0x02 == 0 {
			return 0
		}
		if f.req != nil && f.req.Busy() {
			return 1
		}
		return 0
	}

	return 0
}

// WriteHalf stores the half-word at the byte offset. The write of the
// low half completes the 32-bit value and triggers whatever action the
// register has.
func (f *File) WriteHalf(offset uint32, data uint16) {
	f.crit.Lock()
	defer f.crit.Unlock()

	if offset&0x02 == 0 {
		f.latch = uint32(data) << 16
		return
	}

	value := f.latch | uint32(data)
	f.latch = 0

	switch offset &^ 0x03 {
	case UartTX:
		f.uartTX(uint8(value))

	case RandSeed:
		f.rnd.Seed(value)

	case SDReadSector0:
		f.sector0 = value

	case SDReadSector1:
		f.sector1 = value

	case SDReadNumSectors:
		f.numSectors = value

	case SDSelectROM:
		if f.req != nil {
			f.req.BeginROMLoad(int(value))
		}

	case SDCommand:
		if value == CommandSDRead && f.req != nil {
			f.req.BeginSDRead(uint64(f.sector0)<<32|uint64(f.sector1), f.numSectors)
		}

	default:
		logger.Logf("registers", "write to unmapped register (%#04x = %#08x)", offset, value)
	}
}

// uartTX folds a character into the pending line. The file's critical
// section must be held.
func (f *File) uartTX(c uint8) {
	if c == '\n' {
		logger.Log("uart", f.uartLine.String())
		f.uartLine.Reset()
		return
	}
	f.uartLine.WriteByte(c)
}
