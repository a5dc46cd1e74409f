// Copyright (C) 2024 XELIS
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pixeladdr

import (
	"p2put/burn"
	"p2put/pixel"
	"p2put/sync"
	"p2put/wire"
)

type PixelAddrGenerator interface {
	ForPixelColour(coord pixel.Coord, colourId uint8) (string, error)
}

// P2put maps pixel colours to burn addresses. Like the burn.Generator it
// wraps, it is not safe for concurrent use; see Locked.
type P2put struct {
	gen        *burn.Generator
	burnPrefix []byte
}

func New(bechPrefix string, burnPrefix []byte) (*P2put, error) {
	gen, err := burn.NewGenerator(bechPrefix, burnPrefix)
	if err != nil {
		return nil, err
	}
	return &P2put{
		gen:        gen,
		burnPrefix: append([]byte(nil), burnPrefix...),
	}, nil
}

// ForPixelColour returns the address for painting coord with colourId. The
// colour ID is not checked against the palette.
func (p *P2put) ForPixelColour(coord pixel.Coord, colourId uint8) (string, error) {
	return p.gen.WithData(pixel.Serialize(coord, colourId))
}

// Decode recovers the pixel encoded in addr. Addresses with an out of range
// colour ID are rejected.
func (p *P2put) Decode(addr string) (pixel.Pixel, error) {
	payload, err := burn.Payload(addr, p.gen.BechPrefix(), p.burnPrefix, pixel.PAYLOAD_LENGTH)
	if err != nil {
		return pixel.Pixel{}, err
	}
	return pixel.FromReader(wire.NewReader(payload))
}

// Locked serializes access to a P2put so it can be shared between goroutines.
type Locked struct {
	mut sync.Mutex
	gen *P2put
}

func NewLocked(bechPrefix string, burnPrefix []byte) (*Locked, error) {
	gen, err := New(bechPrefix, burnPrefix)
	if err != nil {
		return nil, err
	}
	return &Locked{
		gen: gen,
	}, nil
}

func (l *Locked) ForPixelColour(coord pixel.Coord, colourId uint8) (string, error) {
	l.mut.Lock()
	defer l.mut.Unlock()

	return l.gen.ForPixelColour(coord, colourId)
}

// Decode does not touch the generator buffer and needs no locking.
func (l *Locked) Decode(addr string) (pixel.Pixel, error) {
	return l.gen.Decode(addr)
}

func (l *Locked) BechPrefix() string {
	return l.gen.gen.BechPrefix()
}
