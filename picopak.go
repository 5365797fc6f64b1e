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

package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/jetsetilly/picopak/comms/transport"
	"github.com/jetsetilly/picopak/hardware"
	"github.com/jetsetilly/picopak/hardware/memory/memorymap"
	"github.com/jetsetilly/picopak/hardware/memory/psram"
	"github.com/jetsetilly/picopak/hardware/pibus"
	"github.com/jetsetilly/picopak/hardware/registers"
	"github.com/jetsetilly/picopak/logger"
	"github.com/jetsetilly/picopak/modalflag"
	"github.com/jetsetilly/picopak/performance"
	"github.com/jetsetilly/picopak/sdcard"
	"github.com/jetsetilly/picopak/statsview"
	"github.com/jetsetilly/picopak/tester"
	"github.com/jetsetilly/picopak/version"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "TESTER", "PERFORMANCE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "TESTER":
		err = testCart(md)

	case "PERFORMANCE":
		err = perform(md)

	case "VERSION":
		fmt.Println(version.Version)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

// run assembles the full system, loads the named ROM through the storage
// link and keeps the system up until interrupted.
func run(md *modalflag.Modes) error {
	md.NewMode()

	serial := md.AddString("serial", "", "tty device for the storage link. empty means in-process")
	stats := md.AddBool("statsview", false, "run the stats server")
	log := md.AddBool("log", true, "echo the log to stderr")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("ROM file required for %s mode", md)
	}
	romFile := md.GetArg(0)

	if *log {
		logger.SetEcho(os.Stderr, true)
	}

	if *stats {
		statsview.Launch(md.Output)
	}

	arr, err := psram.NewArray(psram.DefaultNumChips, psram.DefaultCapacity)
	if err != nil {
		return err
	}

	bus := pibus.NewVirtualBus()

	// the storage link is in-process unless a serial device was named,
	// in which case the storage controller is expected to be on the
	// other end of the wire
	var busEnd transport.Transport
	var con *sdcard.Controller

	if *serial != "" {
		busEnd, err = transport.NewSerial(*serial)
		if err != nil {
			return err
		}
	} else {
		var conEnd transport.Transport
		busEnd, conEnd = transport.NewLoopback()

		con, err = sdcard.NewController(conEnd, arr, filepath.Dir(romFile))
		if err != nil {
			return err
		}
		go func() {
			_ = con.Run()
		}()
	}

	cart := hardware.NewCart(bus, busEnd, arr)

	done := make(chan error)
	go func() {
		done <- cart.Run()
	}()

	// file the load request directly. the register file would do exactly
	// this on behalf of a console
	name := filepath.Base(romFile)
	cart.Buf.SetBytes(0, []byte(name))
	cart.Jobs.BeginROMLoad(len(name))

	busyReg := memorymap.OriginCIBase + registers.SDBusy
	for i := 0; bus.Read32(busyReg) != 0; i++ {
		if i > 30000 {
			return fmt.Errorf("rom load did not complete")
		}
		time.Sleep(100 * time.Microsecond)
	}

	fmt.Fprintf(md.Output, "%s loaded. serving bus. ctrl-c to quit\n", name)

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	select {
	case <-intChan:
	case err = <-done:
		return err
	}

	if con != nil {
		con.Halt()
	}
	bus.Close()
	return <-done
}

// testCart runs the hardware checks against an assembled system.
func testCart(md *modalflag.Modes) error {
	md.NewMode()

	storage := md.AddString("storage", ".", "directory holding the block image and ROM files")
	dump := md.AddString("dump", "", "write a graphviz dump of the assembled system to this file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	return tester.Run(md.Output, *storage, *dump)
}

// perform measures bus throughput.
func perform(md *modalflag.Modes) error {
	md.NewMode()

	duration := md.AddString("duration", "5s", "run duration (note: there is a 2s overhead)")
	profile := md.AddString("profile", "none", "profile the run: NONE, CPU, MEM, ALL")
	stats := md.AddBool("statsview", false, "run the stats server")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("ROM file required for %s mode", md)
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	if *stats {
		statsview.Launch(md.Output)
	}

	return performance.Check(md.Output, prf, md.GetArg(0), *duration)
}
