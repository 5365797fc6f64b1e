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

package sdcard

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/jetsetilly/picopak/cartridgeloader"
	"github.com/jetsetilly/picopak/comms/frame"
	"github.com/jetsetilly/picopak/comms/transport"
	"github.com/jetsetilly/picopak/curated"
	"github.com/jetsetilly/picopak/hardware/memory/eeprom"
	"github.com/jetsetilly/picopak/hardware/memory/psram"
	"github.com/jetsetilly/picopak/logger"
)

// ImageFilename is the name of the block image, under the storage root,
// that sector reads are served from.
const ImageFilename = "sd.img"

// Controller is the storage side of the link. It owns the card: sector
// reads, ROM files and save files all come through here. It programs the
// memory array directly during a ROM load; the bus controller never
// touches the card.
type Controller struct {
	trans transport.Transport
	arr   *psram.Array

	// the directory that ROM files and save files live in
	fsRoot string

	// the block image for raw sector reads. nil when the image file is
	// not present, in which case sectors read as zero
	image *os.File

	// EEPROMTypes maps a cartridge title to its EEPROM device type.
	// Titles not in the map have no EEPROM
	EEPROMTypes map[string]eeprom.Type

	// title of the currently loaded cartridge. save files are named
	// after it
	title string

	parser *frame.Parser
	rbuf   []byte

	halt int32
}

// NewController is the preferred method of initialisation for the
// Controller type. The storage root must exist; the block image inside
// it is optional.
func NewController(trans transport.Transport, arr *psram.Array, fsRoot string) (*Controller, error) {
	inf, err := os.Stat(fsRoot)
	if err != nil {
		return nil, curated.Errorf("sdcard: %v", err)
	}
	if !inf.IsDir() {
		return nil, curated.Errorf("sdcard: %s is not a directory", fsRoot)
	}

	con := &Controller{
		trans:       trans,
		arr:         arr,
		fsRoot:      fsRoot,
		EEPROMTypes: make(map[string]eeprom.Type),
		parser:      frame.NewParser(),
		rbuf:        make([]byte, 2048),
	}

	image, err := os.Open(filepath.Join(fsRoot, ImageFilename))
	if err == nil {
		con.image = image
	} else {
		logger.Logf("sdcard", "no block image. sector reads will return zeroes")
	}

	return con, nil
}

// Run services the link until Halt() is called or storage fails. A
// storage failure is not recoverable; the role stays down until the
// whole system is restarted.
func (con *Controller) Run() error {
	defer func() {
		if con.image != nil {
			con.image.Close()
		}
	}()

	for atomic.LoadInt32(&con.halt) == 0 {
		serviced, err := con.ServiceOnce()
		if err != nil {
			logger.Logf("sdcard", "%v", err)
			return err
		}
		if !serviced {
			time.Sleep(500 * time.Microsecond)
		}
	}

	return nil
}

// Halt asks the Run() loop to return. Safe to call from any goroutine.
func (con *Controller) Halt() {
	atomic.StoreInt32(&con.halt, 1)
}

// ServiceOnce drains the link and acts on any completed frames. It
// returns whether anything arrived. Called repeatedly by Run(); tests
// call it directly.
func (con *Controller) ServiceOnce() (bool, error) {
	n, err := con.trans.Recv(con.rbuf)
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}

	for _, f := range con.parser.FeedAll(con.rbuf[:n]) {
		err = con.handleFrame(f)
		if err != nil {
			return true, err
		}
	}

	return true, nil
}

func (con *Controller) handleFrame(f frame.Frame) error {
	switch f.Cmd {
	case frame.CmdSDRead:
		if len(f.Payload) != 12 {
			logger.Logf("sdcard", "bad %s payload (%d bytes)", f.Cmd, len(f.Payload))
			return nil
		}
		sector := binary.BigEndian.Uint64(f.Payload)
		numSectors := binary.BigEndian.Uint32(f.Payload[8:])
		return con.readSectors(sector, numSectors)

	case frame.CmdROMLoad:
		return con.loadROM(string(f.Payload))

	case frame.CmdEEPROMBackup:
		return con.backupEEPROM(f.Payload)

	default:
		logger.Logf("sdcard", "unexpected %s frame from bus controller", f.Cmd)
	}

	return nil
}

// readSectors streams raw sector data back over the link. At least one
// sector is always sent, even for a request of zero sectors; the bus
// controller sizes its receive window the same way.
func (con *Controller) readSectors(sector uint64, numSectors uint32) error {
	buf := make([]byte, SectorSize)

	for {
		for i := range buf {
			buf[i] = 0
		}

		if con.image != nil {
			_, err := con.image.ReadAt(buf, int64(sector)*SectorSize)
			if err != nil && err != io.EOF {
				// a short read off the end of the image leaves the
				// remainder zero filled. that is not a failure
				return curated.Errorf("sdcard: %v", err)
			}
		}

		err := con.trans.Send(buf)
		if err != nil {
			return curated.Errorf("sdcard: %v", err)
		}

		if numSectors <= 1 {
			break
		}
		numSectors--
		sector++
	}

	return nil
}

// loadROM reads the named ROM file and programs it into the memory
// array. On success the EEPROM type and save content for the cartridge
// are forwarded before the load is acknowledged.
func (con *Controller) loadROM(name string) error {
	ld, err := cartridgeloader.NewLoader(filepath.Join(con.fsRoot, name))
	if err != nil {
		return err
	}

	err = ld.Load()
	if err != nil {
		return err
	}

	if len(ld.Data) > int(con.arr.Capacity())*con.arr.NumChips() {
		return curated.Errorf("sdcard: %s too large for memory array (%d bytes)", ld.Title, len(ld.Data))
	}

	logger.Logf("sdcard", "loading %s (%s)", ld.Title, ld.Hash)

	// program the array chip by chip. the chip select must land before
	// the data that depends on it
	touched := make(map[int]bool)
	for offset := 0; offset < len(ld.Data); offset += SectorSize {
		chip, chipOffset := con.arr.Resolve(uint32(offset))
		if chip != con.arr.Selected() || len(touched) == 0 {
			err = con.arr.SelectChip(chip)
			if err != nil {
				return err
			}
		}
		touched[chip] = true

		end := offset + SectorSize
		if end > len(ld.Data) {
			end = len(ld.Data)
		}
		err = con.arr.Program(chipOffset, ld.Data[offset:end])
		if err != nil {
			return err
		}
	}

	for chip := range touched {
		err = con.arr.EnableDirectRead(chip)
		if err != nil {
			return err
		}
	}

	con.title = ld.Title

	// the bus controller needs to know the save device before the save
	// content arrives
	typ := con.EEPROMTypes[ld.Title]
	var typPayload [2]byte
	binary.BigEndian.PutUint16(typPayload[:], uint16(typ))
	err = frame.Write(transportWriter{con.trans}, frame.CmdSetEEPROMType, typPayload[:])
	if err != nil {
		return err
	}

	if typ != eeprom.TypeNone {
		save, err := os.ReadFile(ld.EEPROMPath)
		if err == nil {
			err = frame.Write(transportWriter{con.trans}, frame.CmdEEPROMRestore, save)
			if err != nil {
				return err
			}
		} else {
			logger.Logf("sdcard", "no save file for %s", ld.Title)
		}
	}

	return frame.Write(transportWriter{con.trans}, frame.CmdROMLoaded, nil)
}

// backupEEPROM persists save content next to the ROM it belongs to.
func (con *Controller) backupEEPROM(data []byte) error {
	if con.title == "" {
		logger.Log("sdcard", "eeprom backup with no cartridge loaded")
		return nil
	}

	fn := filepath.Join(con.fsRoot, con.title+".eep")
	err := os.WriteFile(fn, data, 0644)
	if err != nil {
		return curated.Errorf("sdcard: %v", err)
	}

	logger.Logf("sdcard", "eeprom backed up to %s", fn)
	return nil
}
