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

// Package eeprom implements the serial EEPROM that some cartridges carry
// for save data. Two device types exist; which one a cartridge has is
// part of its database entry and is communicated to the bus controller
// before the ROM is handed over.
package eeprom

import (
	"sync"

	"github.com/jetsetilly/picopak/curated"
)

// Type identifies the EEPROM device type. The values are those used on
// the serial interface when the console probes the cartridge.
type Type uint16

// List of valid Type values. TypeNone indicates the cartridge carries no
// EEPROM at all.
const (
	TypeNone Type = 0x0000
	Type4K   Type = 0x0080
	Type16K  Type = 0x00c0
)

// Sizes in bytes of the two device types.
const (
	Size4K  = 512
	Size16K = 2048
)

func (typ Type) String() string {
	switch typ {
	case TypeNone:
		return "none"
	case Type4K:
		return "4kbit"
	case Type16K:
		return "16kbit"
	}
	return "unknown"
}

// Size returns the byte capacity of the device type.
func (typ Type) Size() int {
	switch typ {
	case Type4K:
		return Size4K
	case Type16K:
		return Size16K
	}
	return 0
}

// EEPROM is the save device itself. The backing buffer is always large
// enough for the bigger device type; SetType() limits how much of it is
// live.
type EEPROM struct {
	crit sync.Mutex
	typ  Type
	data [Size16K]byte
}

// NewEEPROM is the preferred method of initialisation for the EEPROM type.
func NewEEPROM() *EEPROM {
	return &EEPROM{}
}

// SetType changes the device type. Data already in the buffer is kept.
func (e *EEPROM) SetType(typ Type) error {
	switch typ {
	case TypeNone, Type4K, Type16K:
	default:
		return curated.Errorf("eeprom: unknown type (%#04x)", uint16(typ))
	}

	e.crit.Lock()
	defer e.crit.Unlock()
	e.typ = typ
	return nil
}

// Type returns the current device type.
func (e *EEPROM) Type() Type {
	e.crit.Lock()
	defer e.crit.Unlock()
	return e.typ
}

// Snapshot returns a copy of the live portion of the buffer. The copy is
// empty when no device is present.
func (e *EEPROM) Snapshot() []byte {
	e.crit.Lock()
	defer e.crit.Unlock()

	d := make([]byte, e.typ.Size())
	copy(d, e.data[:])
	return d
}

// Restore replaces the buffer content. Data beyond the capacity of the
// current device type is ignored.
func (e *EEPROM) Restore(data []byte) {
	e.crit.Lock()
	defer e.crit.Unlock()

	n := e.typ.Size()
	if len(data) > n {
		data = data[:n]
	}
	copy(e.data[:], data)
}
