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

//go:build windows

package transport

import (
	"github.com/jetsetilly/picopak/curated"
)

// Serial is not supported on windows.
type Serial struct{}

// NewSerial always returns an error on windows.
func NewSerial(path string) (*Serial, error) {
	return nil, curated.Errorf("serial: not supported on windows")
}

// Send implements the Transport interface.
func (ser *Serial) Send(data []byte) error {
	return curated.Errorf("serial: not supported on windows")
}

// Recv implements the Transport interface.
func (ser *Serial) Recv(data []byte) (int, error) {
	return 0, curated.Errorf("serial: not supported on windows")
}

// Close implements the Transport interface.
func (ser *Serial) Close() error {
	return nil
}
