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

//go:build !windows

package transport

import (
	"io"
	"os"

	"github.com/jetsetilly/picopak/curated"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// Serial is a Transport over a real tty device. It exists so that one
// half of the system can be emulated against the other half running on
// hardware.
type Serial struct {
	dev *os.File

	// terminal attributes as they were before we touched the device
	savedAttr unix.Termios
}

// NewSerial opens the tty device and puts it into raw mode. Reads are
// configured to return immediately with whatever is pending.
func NewSerial(path string) (*Serial, error) {
	dev, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, curated.Errorf("serial: %v", err)
	}

	ser := &Serial{dev: dev}

	err = termios.Tcgetattr(dev.Fd(), &ser.savedAttr)
	if err != nil {
		dev.Close()
		return nil, curated.Errorf("serial: %v", err)
	}

	attr := ser.savedAttr
	termios.Cfmakeraw(&attr)

	// non-blocking read. Recv() must return immediately when the device
	// has nothing for us
	attr.Cc[unix.VMIN] = 0
	attr.Cc[unix.VTIME] = 0

	err = termios.Tcsetattr(dev.Fd(), termios.TCSANOW, &attr)
	if err != nil {
		dev.Close()
		return nil, curated.Errorf("serial: %v", err)
	}

	return ser, nil
}

// Send implements the Transport interface.
func (ser *Serial) Send(data []byte) error {
	_, err := ser.dev.Write(data)
	if err != nil {
		return curated.Errorf("serial: %v", err)
	}
	return nil
}

// Recv implements the Transport interface.
func (ser *Serial) Recv(data []byte) (int, error) {
	n, err := ser.dev.Read(data)
	if err != nil {
		if err == io.EOF {
			return 0, nil
		}
		return 0, curated.Errorf("serial: %v", err)
	}
	return n, nil
}

// Close implements the Transport interface. The device's original
// attributes are restored.
func (ser *Serial) Close() error {
	_ = termios.Tcsetattr(ser.dev.Fd(), termios.TCSANOW, &ser.savedAttr)
	err := ser.dev.Close()
	if err != nil {
		return curated.Errorf("serial: %v", err)
	}
	return nil
}
