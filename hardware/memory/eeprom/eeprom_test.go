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

package eeprom_test

import (
	"testing"

	"github.com/jetsetilly/picopak/hardware/memory/eeprom"
	"github.com/jetsetilly/picopak/test"
)

func TestTypeSizes(t *testing.T) {
	test.Equate(t, eeprom.TypeNone.Size(), 0)
	test.Equate(t, eeprom.Type4K.Size(), eeprom.Size4K)
	test.Equate(t, eeprom.Type16K.Size(), eeprom.Size16K)
}

func TestSetType(t *testing.T) {
	e := eeprom.NewEEPROM()
	test.Equate(t, e.Type(), eeprom.TypeNone)

	err := e.SetType(eeprom.Type4K)
	test.ExpectedSuccess(t, err)
	test.Equate(t, e.Type(), eeprom.Type4K)

	err = e.SetType(eeprom.Type(0x0001))
	test.ExpectedFailure(t, err)
	test.Equate(t, e.Type(), eeprom.Type4K)
}

func TestSnapshotRestore(t *testing.T) {
	e := eeprom.NewEEPROM()

	// no device means no data
	test.Equate(t, len(e.Snapshot()), 0)

	err := e.SetType(eeprom.Type4K)
	test.ExpectedSuccess(t, err)

	save := make([]byte, eeprom.Size16K)
	for i := range save {
		save[i] = byte(i)
	}
	e.Restore(save)

	// the live portion is limited by the device type
	s := e.Snapshot()
	test.Equate(t, len(s), eeprom.Size4K)
	test.Equate(t, s[511], uint8(511%256))

	// switching to the larger type keeps existing data and extends the
	// live portion
	err = e.SetType(eeprom.Type16K)
	test.ExpectedSuccess(t, err)
	s = e.Snapshot()
	test.Equate(t, len(s), eeprom.Size16K)
	test.Equate(t, s[0], uint8(0))
}
