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

// Package transport abstracts the byte link between the two controllers.
// The bus controller and the storage controller each hold one end; what
// is sent into one end comes out of the other.
//
// Two implementations are provided. The Loopback pair joins the two
// controllers in-process and is what the emulated system uses. The
// Serial type drives a real tty device, for talking to actual hardware.
package transport

// Transport is one end of the link. Send never blocks on the peer; Recv
// never blocks at all, returning zero bytes when nothing is pending.
// Both loops poll their end from their service points.
type Transport interface {
	Send(data []byte) error
	Recv(data []byte) (int, error)
	Close() error
}
