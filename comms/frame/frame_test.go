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

package frame_test

import (
	"bytes"
	"testing"

	"github.com/jetsetilly/picopak/comms/frame"
	"github.com/jetsetilly/picopak/test"
)

func TestRoundTrip(t *testing.T) {
	b, err := frame.Encode(frame.CmdSDRead, []byte{0x00, 0x00, 0x03, 0xe8})
	test.ExpectedSuccess(t, err)
	test.Equate(t, len(b), frame.HeaderLen+4)
	test.Equate(t, b[0], uint8(frame.Start1))
	test.Equate(t, b[1], uint8(frame.Start2))

	p := frame.NewParser()
	frames := p.FeedAll(b)
	test.Equate(t, len(frames), 1)
	test.Equate(t, frames[0].Cmd, frame.CmdSDRead)
	test.ExpectedSuccess(t, bytes.Equal(frames[0].Payload, []byte{0x00, 0x00, 0x03, 0xe8}))
}

func TestZeroLengthPayload(t *testing.T) {
	b, err := frame.Encode(frame.CmdROMLoaded, nil)
	test.ExpectedSuccess(t, err)
	test.Equate(t, len(b), frame.HeaderLen)

	p := frame.NewParser()
	frames := p.FeedAll(b)
	test.Equate(t, len(frames), 1)
	test.Equate(t, frames[0].Cmd, frame.CmdROMLoaded)
	test.Equate(t, len(frames[0].Payload), 0)
}

func TestResync(t *testing.T) {
	p := frame.NewParser()

	// garbage, including a lone start byte, completes no frame
	frames := p.FeedAll([]byte{0x01, frame.Start1, 0x02, 0x03})
	test.Equate(t, len(frames), 0)

	// a valid frame following the garbage decodes cleanly
	b, err := frame.Encode(frame.CmdEEPROMBackup, []byte{0xaa})
	test.ExpectedSuccess(t, err)
	frames = p.FeedAll(b)
	test.Equate(t, len(frames), 1)
	test.Equate(t, frames[0].Cmd, frame.CmdEEPROMBackup)
}

func TestRepeatedStartByte(t *testing.T) {
	// a run of Start1 bytes before a frame must not desynchronise the
	// parser
	b, err := frame.Encode(frame.CmdROMLoad, []byte("m"))
	test.ExpectedSuccess(t, err)

	p := frame.NewParser()
	frames := p.FeedAll(append([]byte{frame.Start1, frame.Start1}, b...))
	test.Equate(t, len(frames), 1)
	test.Equate(t, frames[0].Cmd, frame.CmdROMLoad)
}

func TestSplitDelivery(t *testing.T) {
	b, err := frame.Encode(frame.CmdSetEEPROMType, []byte{0x00, 0x80})
	test.ExpectedSuccess(t, err)

	// feed the frame one byte at a time. only the last byte completes it
	p := frame.NewParser()
	for i, c := range b {
		f, ok := p.Feed(c)
		if i < len(b)-1 {
			test.ExpectedSuccess(t, !ok)
		} else {
			test.ExpectedSuccess(t, ok)
			test.Equate(t, f.Cmd, frame.CmdSetEEPROMType)
		}
	}
}

func TestWrite(t *testing.T) {
	w := &bytes.Buffer{}
	err := frame.Write(w, frame.CmdSDRead, []byte{0x01})
	test.ExpectedSuccess(t, err)

	p := frame.NewParser()
	frames := p.FeedAll(w.Bytes())
	test.Equate(t, len(frames), 1)
}
