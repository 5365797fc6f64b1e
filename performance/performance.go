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

package performance

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/jetsetilly/picopak/cartridgeloader"
	"github.com/jetsetilly/picopak/comms/transport"
	"github.com/jetsetilly/picopak/curated"
	"github.com/jetsetilly/picopak/hardware"
	"github.com/jetsetilly/picopak/hardware/memory/memorymap"
	"github.com/jetsetilly/picopak/hardware/memory/psram"
	"github.com/jetsetilly/picopak/hardware/pibus"
	"github.com/jetsetilly/picopak/hardware/registers"
	"github.com/jetsetilly/picopak/sdcard"
)

// number of read cycles in each measured burst.
const burstLen = 256

// Check the performance of the bus path using the supplied ROM file.
//
// The whole system is assembled: the ROM is loaded through the storage
// link, exactly as a console would cause it to be, and then read back
// over the bus for the specified duration. The measured figure is bus
// words served per second.
func Check(output io.Writer, profile Profile, romFile string, duration string) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	ld, err := cartridgeloader.NewLoader(romFile)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	arr, err := psram.NewArray(psram.DefaultNumChips, psram.DefaultCapacity)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	a, b := transport.NewLoopback()
	bus := pibus.NewVirtualBus()
	cart := hardware.NewCart(bus, a, arr)

	con, err := sdcard.NewController(b, arr, filepath.Dir(romFile))
	if err != nil {
		return curated.Errorf("performance: %v", err)
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

	// load the ROM through the link and wait for the busy flag to drop
	name := filepath.Base(ld.Filename)
	cart.Buf.SetBytes(0, []byte(name))
	cart.Jobs.BeginROMLoad(len(name))

	busyReg := memorymap.OriginCIBase + registers.SDBusy
	for i := 0; bus.Read32(busyReg) != 0; i++ {
		if i > 30000 {
			return curated.Errorf("performance: rom load did not complete")
		}
		time.Sleep(100 * time.Microsecond)
	}

	err = ld.Load()
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}
	romLen := uint32(len(ld.Data)) &^ 0x1ff

	words := 0

	runner := func() error {
		// the timer signals false when the leadtime has elapsed and true
		// when the measurement period is over. the two second leadtime
		// lets the goroutines settle before the measurement starts
		timerChan := make(chan bool)
		go func() {
			time.AfterFunc(2*time.Second, func() {
				timerChan <- false
				time.AfterFunc(dur, func() {
					timerChan <- true
				})
			})
		}()

		addr := uint32(0)
		for {
			select {
			case v := <-timerChan:
				if v {
					return nil
				}
				words = 0
			default:
			}

			bus.SetAddress(memorymap.OriginROM + addr)
			for i := 0; i < burstLen; i++ {
				bus.ReadWord()
			}
			words += burstLen

			addr += burstLen * 2
			if romLen > 0 {
				addr %= romLen
			}
		}
	}

	err = RunProfiler(profile, "performance", runner)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	rate := float64(words) / dur.Seconds()
	output.Write([]byte(fmt.Sprintf("%.0f bus words/sec (%d words in %.2f seconds)\n", rate, words, dur.Seconds())))

	return nil
}
