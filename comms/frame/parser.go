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

package frame

// parser states
type parserState int

const (
	stateStart1 parserState = iota
	stateStart2
	stateCmd
	stateLenHi
	stateLenLo
	statePayload
)

// Parser is a byte-at-a-time frame decoder. Bytes arrive from the link
// in whatever chunks the transport delivers; the parser holds its state
// between calls.
//
// A byte that does not fit the grammar resets the parser to the hunt for
// the next start marker. There is no timeout: a half-received frame
// parks the parser until more bytes arrive.
type Parser struct {
	state   parserState
	cmd     Command
	length  int
	payload []byte
}

// NewParser is the preferred method of initialisation for the Parser type.
func NewParser() *Parser {
	return &Parser{}
}

// Reset returns the parser to the hunt for a start marker.
func (p *Parser) Reset() {
	p.state = stateStart1
	p.payload = nil
}

// Feed advances the parser by one byte. When the byte completes a frame
// the decoded frame is returned along with true.
func (p *Parser) Feed(b uint8) (Frame, bool) {
	switch p.state {
	case stateStart1:
		if b == Start1 {
			p.state = stateStart2
		}

	case stateStart2:
		if b == Start2 {
			p.state = stateCmd
		} else if b != Start1 {
			// a repeated Start1 keeps the parser where it is
			p.state = stateStart1
		}

	case stateCmd:
		p.cmd = Command(b)
		p.state = stateLenHi

	case stateLenHi:
		p.length = int(b) << 8
		p.state = stateLenLo

	case stateLenLo:
		p.length |= int(b)
		if p.length == 0 {
			p.state = stateStart1
			return Frame{Cmd: p.cmd}, true
		}
		p.payload = make([]byte, 0, p.length)
		p.state = statePayload

	case statePayload:
		p.payload = append(p.payload, b)
		if len(p.payload) == p.length {
			f := Frame{Cmd: p.cmd, Payload: p.payload}
			p.payload = nil
			p.state = stateStart1
			return f, true
		}
	}

	return Frame{}, false
}

// FeedAll runs every byte of the slice through the parser, returning all
// completed frames.
func (p *Parser) FeedAll(b []byte) []Frame {
	var frames []Frame
	for _, c := range b {
		if f, ok := p.Feed(c); ok {
			frames = append(frames, f)
		}
	}
	return frames
}
