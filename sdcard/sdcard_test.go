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

package sdcard_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/picopak/comms/transport"
	"github.com/jetsetilly/picopak/hardware/memory/eeprom"
	"github.com/jetsetilly/picopak/hardware/memory/psram"
	"github.com/jetsetilly/picopak/hardware/memory/xfer"
	"github.com/jetsetilly/picopak/sdcard"
	"github.com/jetsetilly/picopak/test"
)

type rig struct {
	jobs *sdcard.Jobs
	con  *sdcard.Controller
	buf  *xfer.Buffer
	eep  *eeprom.EEPROM
	arr  *psram.Array
	root string
}

func newRig(t *testing.T) *rig {
	t.Helper()

	a, b := transport.NewLoopback()
	buf := xfer.NewBuffer()
	eep := eeprom.NewEEPROM()

	arr, err := psram.NewArray(3, 0x1000)
	test.ExpectedSuccess(t, err)

	root := t.TempDir()
	con, err := sdcard.NewController(b, arr, root)
	test.ExpectedSuccess(t, err)

	return &rig{
		jobs: sdcard.NewJobs(a, buf, eep),
		con:  con,
		buf:  buf,
		eep:  eep,
		arr:  arr,
		root: root,
	}
}

// pump both sides of the link until nothing moves.
func (r *rig) pump(t *testing.T) {
	t.Helper()

	for i := 0; i < 100; i++ {
		r.jobs.Service()
		serviced, err := r.con.ServiceOnce()
		test.ExpectedSuccess(t, err)
		r.jobs.Service()
		if !serviced && !r.jobs.Busy() {
			return
		}
	}
}

func TestSectorRead(t *testing.T) {
	r := newRig(t)

	// a block image with a recognisable sector 1000
	image := make([]byte, 1001*sdcard.SectorSize)
	for i := 0; i < sdcard.SectorSize; i++ {
		image[1000*sdcard.SectorSize+i] = byte(i)
	}
	err := os.WriteFile(filepath.Join(r.root, sdcard.ImageFilename), image, 0644)
	test.ExpectedSuccess(t, err)

	// reopen the controller so it sees the image
	a, b := transport.NewLoopback()
	r.jobs = sdcard.NewJobs(a, r.buf, r.eep)
	r.con, err = sdcard.NewController(b, r.arr, r.root)
	test.ExpectedSuccess(t, err)

	r.jobs.BeginSDRead(1000, 1)
	test.ExpectedSuccess(t, r.jobs.Busy())
	test.ExpectedSuccess(t, !r.jobs.DataReady())

	r.pump(t)

	// the read has completed and the sector is in the transfer buffer
	test.ExpectedSuccess(t, !r.jobs.Busy())
	test.ExpectedSuccess(t, r.jobs.DataReady())
	for i := 0; i < sdcard.SectorSize; i++ {
		test.Equate(t, r.buf.Byte(i), uint8(i))
	}
}

func TestSectorReadZeroCount(t *testing.T) {
	r := newRig(t)

	// a request for zero sectors still completes: one sector comes back
	r.jobs.BeginSDRead(0, 0)
	test.ExpectedSuccess(t, r.jobs.Busy())
	r.pump(t)
	test.ExpectedSuccess(t, !r.jobs.Busy())
}

func TestSectorReadNoImage(t *testing.T) {
	r := newRig(t)

	// no block image. the sector reads as zeroes but the lifecycle is
	// unaffected
	r.buf.SetByte(0, 0xff)
	r.jobs.BeginSDRead(5, 1)
	r.pump(t)
	test.ExpectedSuccess(t, !r.jobs.Busy())
	test.Equate(t, r.buf.Byte(0), uint8(0))
}

func TestOverlappingRequestDropped(t *testing.T) {
	r := newRig(t)

	r.jobs.BeginSDRead(1, 1)
	r.jobs.BeginSDRead(2, 1)

	r.pump(t)

	// only the first request ran. the second was dropped, not queued
	test.ExpectedSuccess(t, !r.jobs.Busy())
}

func TestROMLoad(t *testing.T) {
	r := newRig(t)

	// a ROM big enough to span all three chips of the test array
	rom := make([]byte, 0x2800)
	for i := range rom {
		rom[i] = byte(i >> 4)
	}
	err := os.WriteFile(filepath.Join(r.root, "game.z64"), rom, 0644)
	test.ExpectedSuccess(t, err)

	// the cartridge has a save device and an existing save file
	r.con.EEPROMTypes["game"] = eeprom.Type4K
	save := make([]byte, eeprom.Size4K)
	save[0] = 0x5a
	err = os.WriteFile(filepath.Join(r.root, "game.eep"), save, 0644)
	test.ExpectedSuccess(t, err)

	loaded := false
	r.jobs.OnROMLoaded = func() { loaded = true }

	// stage the filename in the transfer buffer, as the console would
	name := "game.z64"
	r.buf.SetBytes(0, []byte(name))

	r.jobs.BeginROMLoad(len(name))
	test.ExpectedSuccess(t, r.jobs.Busy())
	test.ExpectedSuccess(t, r.jobs.ROMLoading())

	r.pump(t)

	test.ExpectedSuccess(t, loaded)
	test.ExpectedSuccess(t, !r.jobs.Busy())
	test.ExpectedSuccess(t, !r.jobs.ROMLoading())

	// the save device arrived before the acknowledgement
	test.Equate(t, r.eep.Type(), eeprom.Type4K)
	s := r.eep.Snapshot()
	test.Equate(t, s[0], uint8(0x5a))

	// the array was programmed across both chip boundaries, with the
	// chip select landing before each chip's data
	h := r.arr.History()
	test.Equate(t, len(h), 3)
	test.Equate(t, h[0], 1)
	test.Equate(t, h[1], 2)
	test.Equate(t, h[2], 3)

	err = r.arr.SelectChip(1)
	test.ExpectedSuccess(t, err)
	test.Equate(t, r.arr.ReadWord(0x0000), uint16(0x0000))
	err = r.arr.SelectChip(2)
	test.ExpectedSuccess(t, err)

	// first word of the second chip is rom[0x1000] and rom[0x1001]
	test.Equate(t, r.arr.ReadWord(0x0000), uint16(rom[0x1000])<<8|uint16(rom[0x1001]))

	test.ExpectedSuccess(t, r.arr.DirectRead(1))
	test.ExpectedSuccess(t, r.arr.DirectRead(2))
	test.ExpectedSuccess(t, r.arr.DirectRead(3))
}

func TestEEPROMBackup(t *testing.T) {
	r := newRig(t)

	rom := make([]byte, 0x200)
	err := os.WriteFile(filepath.Join(r.root, "game.z64"), rom, 0644)
	test.ExpectedSuccess(t, err)
	r.con.EEPROMTypes["game"] = eeprom.Type4K

	name := "game.z64"
	r.buf.SetBytes(0, []byte(name))
	r.jobs.BeginROMLoad(len(name))
	r.pump(t)
	test.ExpectedSuccess(t, !r.jobs.Busy())

	// change the eeprom content and request a backup
	data := make([]byte, eeprom.Size4K)
	data[10] = 0xa5
	r.eep.Restore(data)
	r.jobs.BackupEEPROM()
	r.pump(t)

	saved, err := os.ReadFile(filepath.Join(r.root, "game.eep"))
	test.ExpectedSuccess(t, err)
	test.Equate(t, len(saved), eeprom.Size4K)
	test.Equate(t, saved[10], uint8(0xa5))
}
