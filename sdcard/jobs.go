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
	"sync"
	"sync/atomic"

	"github.com/jetsetilly/picopak/comms/frame"
	"github.com/jetsetilly/picopak/comms/transport"
	"github.com/jetsetilly/picopak/hardware/memory/eeprom"
	"github.com/jetsetilly/picopak/hardware/memory/xfer"
	"github.com/jetsetilly/picopak/logger"
)

// SectorSize is the number of bytes in a storage sector.
const SectorSize = 512

// MaxSectors is the most sectors a single read request can ask for. The
// limit is the capacity of the transfer buffer.
const MaxSectors = xfer.Size / SectorSize

// Jobs is the bus controller's side of the storage link. The register
// file files requests with it; the Service() function, called from the
// bus handler's outer loop, moves them along.
//
// While a ROM load is in progress the link carries framed traffic. At
// all other times bytes arriving on the link are raw sector data and go
// straight into the transfer buffer.
type Jobs struct {
	trans transport.Transport
	buf   *xfer.Buffer
	eep   *eeprom.EEPROM

	// OnROMLoaded is called when the storage controller reports that the
	// new ROM is in place. May be nil. Called from Service().
	OnROMLoaded func()

	// set while any request is outstanding. atomic access; the register
	// file polls it from another context
	busy int32

	// set while a ROM load is in progress. decides how incoming bytes
	// are interpreted
	romLoading int32

	// set when the data for the most recent request is in place. atomic
	// access
	dataReady int32

	crit sync.Mutex

	// pending requests. filed by the register file, despatched by
	// Service()
	pendingRead bool
	sector      uint64
	numSectors  uint32

	pendingLoad bool
	nameLen     int

	pendingBackup bool

	// raw receive progress for the current read
	recvExpected int
	recvCount    int

	parser *frame.Parser
	rbuf   []byte
}

// NewJobs is the preferred method of initialisation for the Jobs type.
func NewJobs(trans transport.Transport, buf *xfer.Buffer, eep *eeprom.EEPROM) *Jobs {
	return &Jobs{
		trans:  trans,
		buf:    buf,
		eep:    eep,
		parser: frame.NewParser(),
		rbuf:   make([]byte, 2048),
	}
}

// Busy implements the registers.Requester interface.
func (j *Jobs) Busy() bool {
	return atomic.LoadInt32(&j.busy) == 1
}

// BeginSDRead implements the registers.Requester interface. A request
// filed while another is outstanding is dropped.
func (j *Jobs) BeginSDRead(sector uint64, numSectors uint32) {
	if !atomic.CompareAndSwapInt32(&j.busy, 0, 1) {
		logger.Log("sdcard", "read request dropped. previous request still busy")
		return
	}

	if numSectors > MaxSectors {
		numSectors = MaxSectors
	}

	atomic.StoreInt32(&j.dataReady, 0)

	j.crit.Lock()
	defer j.crit.Unlock()
	j.pendingRead = true
	j.sector = sector
	j.numSectors = numSectors
}

// BeginROMLoad implements the registers.Requester interface. The
// filename is expected to be staged in the transfer buffer already.
func (j *Jobs) BeginROMLoad(nameLen int) {
	if !atomic.CompareAndSwapInt32(&j.busy, 0, 1) {
		logger.Log("sdcard", "load request dropped. previous request still busy")
		return
	}

	atomic.StoreInt32(&j.dataReady, 0)
	atomic.StoreInt32(&j.romLoading, 1)

	j.crit.Lock()
	defer j.crit.Unlock()
	j.pendingLoad = true
	j.nameLen = nameLen
}

// BackupEEPROM requests that the current EEPROM content is persisted.
// Unlike the register-driven requests this one does not raise the busy
// flag; the console does not wait on it.
func (j *Jobs) BackupEEPROM() {
	j.crit.Lock()
	defer j.crit.Unlock()
	j.pendingBackup = true
}

// DataReady returns whether the data for the most recent request is in
// place in the transfer buffer.
func (j *Jobs) DataReady() bool {
	return atomic.LoadInt32(&j.dataReady) == 1
}

// ROMLoading returns whether a ROM load is in progress.
func (j *Jobs) ROMLoading() bool {
	return atomic.LoadInt32(&j.romLoading) == 1
}

// Service despatches pending requests and drains the link. Called from
// the bus handler's outer loop, between bus transactions.
func (j *Jobs) Service() {
	j.despatch()
	j.drain()
}

func (j *Jobs) despatch() {
	j.crit.Lock()
	defer j.crit.Unlock()

	if j.pendingRead {
		j.pendingRead = false

		var payload [12]byte
		binary.BigEndian.PutUint64(payload[0:], j.sector)
		binary.BigEndian.PutUint32(payload[8:], j.numSectors)

		err := frame.Write(transportWriter{j.trans}, frame.CmdSDRead, payload[:])
		if err != nil {
			logger.Logf("sdcard", "%v", err)
			atomic.StoreInt32(&j.busy, 0)
			return
		}

		j.recvExpected = int(j.numSectors) * SectorSize
		if j.recvExpected == 0 {
			// the storage controller always returns at least one sector
			j.recvExpected = SectorSize
		}
		j.recvCount = 0
	}

	if j.pendingLoad {
		j.pendingLoad = false

		name := make([]byte, j.nameLen)
		for i := range name {
			name[i] = j.buf.Byte(i)
		}

		err := frame.Write(transportWriter{j.trans}, frame.CmdROMLoad, name)
		if err != nil {
			logger.Logf("sdcard", "%v", err)
			atomic.StoreInt32(&j.busy, 0)
			atomic.StoreInt32(&j.romLoading, 0)
		}
	}

	if j.pendingBackup {
		j.pendingBackup = false

		err := frame.Write(transportWriter{j.trans}, frame.CmdEEPROMBackup, j.eep.Snapshot())
		if err != nil {
			logger.Logf("sdcard", "%v", err)
		}
	}
}

func (j *Jobs) drain() {
	for {
		n, err := j.trans.Recv(j.rbuf)
		if err != nil {
			logger.Logf("sdcard", "%v", err)
			return
		}
		if n == 0 {
			return
		}

		if j.ROMLoading() {
			for _, f := range j.parser.FeedAll(j.rbuf[:n]) {
				j.handleFrame(f)
			}
		} else {
			j.rawSectorData(j.rbuf[:n])
		}
	}
}

// rawSectorData folds incoming sector bytes into the transfer buffer.
// The read completes, and the busy flag drops, when the expected number
// of bytes has arrived.
func (j *Jobs) rawSectorData(data []byte) {
	j.crit.Lock()
	defer j.crit.Unlock()

	for _, b := range data {
		if j.recvCount >= j.recvExpected {
			// bytes beyond the expected count are dropped
			continue
		}
		j.buf.SetByte(j.recvCount, b)
		j.recvCount++
	}

	if j.recvCount >= j.recvExpected && j.recvExpected > 0 {
		j.recvExpected = 0
		atomic.StoreInt32(&j.dataReady, 1)
		atomic.StoreInt32(&j.busy, 0)
	}
}

func (j *Jobs) handleFrame(f frame.Frame) {
	switch f.Cmd {
	case frame.CmdSetEEPROMType:
		if len(f.Payload) != 2 {
			logger.Logf("sdcard", "bad %s payload (%d bytes)", f.Cmd, len(f.Payload))
			return
		}
		typ := eeprom.Type(binary.BigEndian.Uint16(f.Payload))
		err := j.eep.SetType(typ)
		if err != nil {
			logger.Logf("sdcard", "%v", err)
			return
		}
		logger.Logf("sdcard", "eeprom type set to %s", typ)

	case frame.CmdEEPROMRestore:
		j.eep.Restore(f.Payload)
		logger.Logf("sdcard", "eeprom restored (%d bytes)", len(f.Payload))

	case frame.CmdROMLoaded:
		atomic.StoreInt32(&j.romLoading, 0)
		atomic.StoreInt32(&j.dataReady, 1)
		atomic.StoreInt32(&j.busy, 0)
		logger.Log("sdcard", "rom loaded")
		if j.OnROMLoaded != nil {
			j.OnROMLoaded()
		}

	default:
		logger.Logf("sdcard", "unexpected %s frame from storage controller", f.Cmd)
	}
}

// transportWriter adapts a Transport to the io.Writer interface expected
// by frame.Write().
type transportWriter struct {
	trans transport.Transport
}

func (w transportWriter) Write(data []byte) (int, error) {
	err := w.trans.Send(data)
	if err != nil {
		return 0, err
	}
	return len(data), nil
}
