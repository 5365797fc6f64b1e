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

package xfer_test

import (
	"testing"

	"github.com/jetsetilly/picopak/hardware/memory/xfer"
	"github.com/jetsetilly/picopak/test"
)

func TestByteFold(t *testing.T) {
	b := xfer.NewBuffer()

	b.SetByte(0, 0xde)
	b.SetByte(1, 0xad)
	test.Equate(t, b.Word(0), 0xdead)

	b.SetByte(2, 0xbe)
	test.Equate(t, b.Word(1), 0xbe00)
	b.SetByte(3, 0xef)
	test.Equate(t, b.Word(1), 0xbeef)

	test.Equate(t, b.Byte(0), uint8(0xde))
	test.Equate(t, b.Byte(3), uint8(0xef))
}

func TestSetBytes(t *testing.T) {
	b := xfer.NewBuffer()
	b.SetBytes(0, []byte{0x01, 0x02, 0x03, 0x04})
	test.Equate(t, b.Word(0), uint16(0x0102))
	test.Equate(t, b.Word(1), uint16(0x0304))
}

func TestWrap(t *testing.T) {
	b := xfer.NewBuffer()
	b.SetByte(xfer.Size, 0x7f)
	test.Equate(t, b.Byte(0), uint8(0x7f))
	test.Equate(t, b.Word(xfer.Words), b.Word(0))
}
