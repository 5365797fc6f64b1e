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

package transport

import (
	"sync"

	"github.com/jetsetilly/picopak/curated"
)

// ClosedTransport is the sentinal error returned by a closed end.
const ClosedTransport = "transport: closed"

// queue is one direction of the loopback link.
type queue struct {
	crit sync.Mutex
	data []byte
}

func (q *queue) write(data []byte) {
	q.crit.Lock()
	defer q.crit.Unlock()
	q.data = append(q.data, data...)
}

func (q *queue) read(data []byte) int {
	q.crit.Lock()
	defer q.crit.Unlock()

	n := copy(data, q.data)
	q.data = q.data[n:]
	return n
}

// Loopback is one end of an in-process link. Create both ends together
// with NewLoopback().
type Loopback struct {
	in  *queue
	out *queue

	crit   sync.Mutex
	closed bool
}

// NewLoopback creates the two ends of an in-process link. Bytes sent
// into either end are received, in order, from the other.
func NewLoopback() (*Loopback, *Loopback) {
	a := &queue{}
	b := &queue{}
	return &Loopback{in: a, out: b}, &Loopback{in: b, out: a}
}

// Send implements the Transport interface.
func (l *Loopback) Send(data []byte) error {
	l.crit.Lock()
	defer l.crit.Unlock()

	if l.closed {
		return curated.Errorf(ClosedTransport)
	}
	l.out.write(data)
	return nil
}

// Recv implements the Transport interface.
func (l *Loopback) Recv(data []byte) (int, error) {
	l.crit.Lock()
	defer l.crit.Unlock()

	if l.closed {
		return 0, curated.Errorf(ClosedTransport)
	}
	return l.in.read(data), nil
}

// Close implements the Transport interface. Only the end being closed is
// affected; the peer continues to drain what was already sent.
func (l *Loopback) Close() error {
	l.crit.Lock()
	defer l.crit.Unlock()
	l.closed = true
	return nil
}
