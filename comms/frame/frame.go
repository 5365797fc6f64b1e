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

// Package frame implements the command framing used on the link between
// the two controllers. A frame is a two byte start marker, a command
// byte, a big-endian sixteen bit payload length and then the payload
// itself.
//
// The framing is deliberately minimal. There is no checksum and no
// timeout: the link is a short board trace, not a network. A parser that
// loses sync resynchronises on the next start marker.
package frame

import (
	"encoding/binary"
	"io"

	"github.com/jetsetilly/picopak/curated"
)

// The start marker that opens every frame.
const (
	Start1 = 0xde
	Start2 = 0xad
)

// HeaderLen is the number of bytes before the payload.
const HeaderLen = 5

// MaxPayload is the largest payload a frame can carry.
const MaxPayload = 0xffff

// Command identifies what a frame asks the peer to do.
type Command uint8

// List of valid Command values.
const (
	CmdSDRead        Command = 0x72
	CmdROMLoad       Command = 0x6c
	CmdROMLoaded     Command = 0xc6
	CmdEEPROMBackup  Command = 0xbe
	CmdEEPROMRestore Command = 0xeb
	CmdSetEEPROMType Command = 0xe7
)

func (cmd Command) String() string {
	switch cmd {
	case CmdSDRead:
		return "sd-read"
	case CmdROMLoad:
		return "rom-load"
	case CmdROMLoaded:
		return "rom-loaded"
	case CmdEEPROMBackup:
		return "eeprom-backup"
	case CmdEEPROMRestore:
		return "eeprom-restore"
	case CmdSetEEPROMType:
		return "set-eeprom-type"
	}
	return "unknown"
}

// Frame is a decoded frame.
type Frame struct {
	Cmd     Command
	Payload []byte
}

// Encode returns the wire form of a frame.
func Encode(cmd Command, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayload {
		return nil, curated.Errorf("frame: payload too large (%d bytes)", len(payload))
	}

	b := make([]byte, HeaderLen+len(payload))
	b[0] = Start1
	b[1] = Start2
	b[2] = uint8(cmd)
	binary.BigEndian.PutUint16(b[3:], uint16(len(payload)))
	copy(b[HeaderLen:], payload)
	return b, nil
}

// Write encodes a frame and writes it to the writer in one call.
func Write(w io.Writer, cmd Command, payload []byte) error {
	b, err := Encode(cmd, payload)
	if err != nil {
		return err
	}

	_, err = w.Write(b)
	if err != nil {
		return curated.Errorf("frame: %v", err)
	}
	return nil
}
