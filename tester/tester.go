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

package tester

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/bradleyjkemp/memviz"
	"github.com/charmbracelet/lipgloss"

	"github.com/jetsetilly/picopak/comms/transport"
	"github.com/jetsetilly/picopak/curated"
	"github.com/jetsetilly/picopak/hardware"
	"github.com/jetsetilly/picopak/hardware/memory/memorymap"
	"github.com/jetsetilly/picopak/hardware/memory/psram"
	"github.com/jetsetilly/picopak/hardware/pibus"
	"github.com/jetsetilly/picopak/hardware/rand"
	"github.com/jetsetilly/picopak/hardware/registers"
	"github.com/jetsetilly/picopak/sdcard"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// rig is the assembled system the checks run against.
type rig struct {
	cart *hardware.Cart
	bus  *pibus.VirtualBus
	con  *sdcard.Controller

	// whether a block image was found under the storage root
	hasImage bool
	image    []byte
}

// Run exercises every address range of the cartridge through the bus and
// prints a report. The checks mirror what a console flashed with a test
// program would do.
//
// A non-empty dumpFile names a file to receive a graphviz dump of the
// assembled system, for debugging the tester itself.
func Run(output io.Writer, fsRoot string, dumpFile string) error {
	arr, err := psram.NewArray(psram.DefaultNumChips, 0x100000)
	if err != nil {
		return err
	}

	a, b := transport.NewLoopback()
	bus := pibus.NewVirtualBus()
	cart := hardware.NewCart(bus, a, arr)

	con, err := sdcard.NewController(b, arr, fsRoot)
	if err != nil {
		return err
	}

	r := &rig{cart: cart, bus: bus, con: con}

	imagePath := filepath.Join(fsRoot, sdcard.ImageFilename)
	image, err := os.ReadFile(imagePath)
	if err == nil {
		r.hasImage = true
		r.image = image
	}

	go func() {
		_ = cart.Run()
	}()
	go func() {
		_ = con.Run()
	}()
	defer func() {
		con.Halt()
		bus.Close()
	}()

	checks := []struct {
		name string
		run  func(*rig) error
	}{
		{"magic register", checkMagic},
		{"boot patch", checkBootPatch},
		{"save ram", checkSRAM},
		{"random stream", checkRand},
		{"transfer buffer", checkBuffer},
		{"sector read", checkSectorRead},
	}

	output.Write([]byte(titleStyle.Render("picopak hardware check") + "\n"))

	failed := 0
	for _, c := range checks {
		err = c.run(r)
		if err != nil {
			failed++
			output.Write([]byte(fmt.Sprintf("%s %s: %v\n", failStyle.Render("✗"), c.name, err)))
		} else {
			output.Write([]byte(fmt.Sprintf("%s %s\n", passStyle.Render("✓"), c.name)))
		}
	}

	if dumpFile != "" {
		buf := &bytes.Buffer{}
		memviz.Map(buf, cart)
		err = os.WriteFile(dumpFile, buf.Bytes(), 0644)
		if err != nil {
			return curated.Errorf("tester: %v", err)
		}
	}

	if failed > 0 {
		return curated.Errorf("tester: %d checks failed", failed)
	}

	return nil
}

func checkMagic(r *rig) error {
	v := r.bus.Read32(memorymap.OriginCIBase + registers.Magic)
	if v != registers.MagicValue {
		return curated.Errorf("read %#08x, wanted %#08x", v, uint32(registers.MagicValue))
	}
	return nil
}

func checkBootPatch(r *rig) error {
	r.bus.SetAddress(memorymap.AddressBootPatch)
	hi := r.bus.ReadWord()
	lo := r.bus.ReadWord()
	if hi != 0x8037 || lo != 0xff40 {
		return curated.Errorf("read %#04x %#04x, wanted 0x8037 0xff40", hi, lo)
	}
	return nil
}

func checkSRAM(r *rig) error {
	r.bus.SetAddress(memorymap.OriginSRAM + 0x20)
	r.bus.WriteWord(0x55aa)
	r.bus.WriteWord(0xaa55)

	r.bus.SetAddress(memorymap.OriginSRAM + 0x20)
	if v := r.bus.ReadWord(); v != 0x55aa {
		return curated.Errorf("read back %#04x, wanted 0x55aa", v)
	}
	if v := r.bus.ReadWord(); v != 0xaa55 {
		return curated.Errorf("read back %#04x, wanted 0xaa55", v)
	}

	// the fold means the mirror sees the same data
	r.bus.SetAddress(memorymap.OriginSRAM + 0x8020)
	if v := r.bus.ReadWord(); v != 0x55aa {
		return curated.Errorf("mirror read %#04x, wanted 0x55aa", v)
	}

	return nil
}

func checkRand(r *rig) error {
	r.bus.Write32(memorymap.OriginCIBase+registers.RandSeed, 0xdeadbeef)

	cmp := rand.NewRand()
	cmp.Seed(0xdeadbeef)

	r.bus.SetAddress(memorymap.OriginRand)
	for i := 0; i < 4; i++ {
		v := r.bus.ReadWord()
		if e := cmp.Word(); v != e {
			return curated.Errorf("word %d was %#04x, wanted %#04x", i, v, e)
		}
	}

	return nil
}

func checkBuffer(r *rig) error {
	r.bus.SetAddress(memorymap.OriginBase + 0x40)
	r.bus.WriteWord(0x1357)

	r.bus.SetAddress(memorymap.OriginBase + 0x40)
	if v := r.bus.ReadWord(); v != 0x1357 {
		return curated.Errorf("read back %#04x, wanted 0x1357", v)
	}
	return nil
}

func checkSectorRead(r *rig) error {
	if !r.hasImage {
		// nothing to compare against. a zero-filled sector still
		// exercises the lifecycle
		r.image = make([]byte, sdcard.SectorSize)
	}

	ci := memorymap.OriginCIBase
	r.bus.Write32(ci+registers.SDReadSector0, 0)
	r.bus.Write32(ci+registers.SDReadSector1, 0)
	r.bus.Write32(ci+registers.SDReadNumSectors, 1)
	r.bus.Write32(ci+registers.SDCommand, registers.CommandSDRead)

	for i := 0; r.bus.Read32(ci+registers.SDBusy) != 0; i++ {
		if i > 30000 {
			return curated.Errorf("busy flag never dropped")
		}
		time.Sleep(100 * time.Microsecond)
	}

	r.bus.SetAddress(memorymap.OriginBase)
	for i := 0; i < sdcard.SectorSize; i += 2 {
		v := r.bus.ReadWord()
		var e uint16
		if i+1 < len(r.image) {
			e = uint16(r.image[i])<<8 | uint16(r.image[i+1])
		}
		if v != e {
			return curated.Errorf("sector byte %d was %#04x, wanted %#04x", i, v, e)
		}
	}

	return nil
}
