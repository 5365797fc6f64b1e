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

package transport_test

import (
	"testing"

	"github.com/jetsetilly/picopak/comms/transport"
	"github.com/jetsetilly/picopak/test"
)

func TestLoopback(t *testing.T) {
	a, b := transport.NewLoopback()

	err := a.Send([]byte{0x01, 0x02, 0x03})
	test.ExpectedSuccess(t, err)

	// receive from the other end, in order, across several reads
	buf := make([]byte, 2)
	n, err := b.Recv(buf)
	test.ExpectedSuccess(t, err)
	test.Equate(t, n, 2)
	test.Equate(t, buf[0], uint8(0x01))
	test.Equate(t, buf[1], uint8(0x02))

	n, err = b.Recv(buf)
	test.ExpectedSuccess(t, err)
	test.Equate(t, n, 1)
	test.Equate(t, buf[0], uint8(0x03))

	// a drained end returns zero bytes without blocking
	n, err = b.Recv(buf)
	test.ExpectedSuccess(t, err)
	test.Equate(t, n, 0)
}

func TestLoopbackBidirectional(t *testing.T) {
	a, b := transport.NewLoopback()

	err := a.Send([]byte{0xaa})
	test.ExpectedSuccess(t, err)
	err = b.Send([]byte{0xbb})
	test.ExpectedSuccess(t, err)

	buf := make([]byte, 1)
	_, err = a.Recv(buf)
	test.ExpectedSuccess(t, err)
	test.Equate(t, buf[0], uint8(0xbb))

	_, err = b.Recv(buf)
	test.ExpectedSuccess(t, err)
	test.Equate(t, buf[0], uint8(0xaa))
}

func TestLoopbackClose(t *testing.T) {
	a, b := transport.NewLoopback()

	err := a.Send([]byte{0x01})
	test.ExpectedSuccess(t, err)

	err = a.Close()
	test.ExpectedSuccess(t, err)

	// the closed end rejects further use
	err = a.Send([]byte{0x02})
	test.ExpectedFailure(t, err)

	// the peer still drains what was already sent
	buf := make([]byte, 1)
	n, err := b.Recv(buf)
	test.ExpectedSuccess(t, err)
	test.Equate(t, n, 1)
}
