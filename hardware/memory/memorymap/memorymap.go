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

package memorymap

// Area represents the different areas of the cartridge address space, as
// seen from the PI bus.
type Area int

func (a Area) String() string {
	switch a {
	case BootPatch:
		return "BootPatch"
	case SRAM:
		return "SRAM"
	case ROM:
		return "ROM"
	case Base:
		return "Base"
	case CIBase:
		return "CIBase"
	case Rand:
		return "Rand"
	}

	return "undefined"
}

// The different areas of the cartridge address space. Undefined addresses
// are not handled by the cartridge at all - the bus engine is resynced
// instead, in case another device on the bus wants to claim them.
const (
	Undefined Area = iota
	BootPatch
	SRAM
	ROM
	Base
	CIBase
	Rand
)

// The origin and memory top for each area. The BootPatch area is a single
// address at the very start of the ROM area. It is where the console reads
// the PI timing configuration during boot and it must be checked for
// before the ROM area.
const (
	AddressBootPatch = uint32(0x10000000)

	OriginSRAM = uint32(0x08000000)
	MemtopSRAM = uint32(0x0fffffff)

	OriginROM = uint32(0x10000000)
	MemtopROM = uint32(0x1fbfffff)

	OriginBase = uint32(0x81000000)
	MemtopBase = uint32(0x81000fff)

	OriginCIBase = uint32(0x81080000)
	MemtopCIBase = uint32(0x810807ff)

	OriginRand = uint32(0x81100000)
	MemtopRand = uint32(0x8110ffff)
)

// MapAddress returns the Area that the address falls into. The range tests
// are ordered by how timing critical the area is, not by numeric order.
// The mapping is static: nothing about it changes at runtime.
func MapAddress(address uint32) Area {
	if address == AddressBootPatch {
		return BootPatch
	}
	if address >= OriginSRAM && address <= MemtopSRAM {
		return SRAM
	}
	if address >= OriginROM && address <= MemtopROM {
		return ROM
	}
	if address >= OriginBase && address <= MemtopBase {
		return Base
	}
	if address >= OriginCIBase && address <= MemtopCIBase {
		return CIBase
	}
	if address >= OriginRand && address <= MemtopRand {
		return Rand
	}
	return Undefined
}
