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

package pixel

import (
	"encoding/binary"
	"fmt"

	"p2put/palette"
	"p2put/wire"

	"github.com/duggavo/serializer"
)

// PAYLOAD_LENGTH is the size of a serialized pixel: x, y and colour ID.
const PAYLOAD_LENGTH = 5

type Coord struct {
	X uint16 `json:"x"`
	Y uint16 `json:"y"`
}

// Pixel is a coordinate painted with a palette colour.
type Pixel struct {
	Coord    Coord `json:"coord"`
	ColourId uint8 `json:"colour_id"`
}

func New(coord Coord, colourId uint8) (Pixel, error) {
	if colourId >= palette.NUM_COLOURS {
		return Pixel{}, fmt.Errorf("pixel %d,%d: %w: %d", coord.X, coord.Y, palette.ErrColourRange, colourId)
	}
	return Pixel{
		Coord:    coord,
		ColourId: colourId,
	}, nil
}

// FromReader reads x (uint16), y (uint16) and the colour ID (uint8).
func FromReader(r *wire.Reader) (Pixel, error) {
	x, err := r.Uint16()
	if err != nil {
		return Pixel{}, err
	}
	y, err := r.Uint16()
	if err != nil {
		return Pixel{}, err
	}
	colourId, err := r.Uint8()
	if err != nil {
		return Pixel{}, err
	}

	return New(Coord{X: x, Y: y}, colourId)
}

func (p Pixel) Colour() palette.Colour {
	// the constructor guarantees the ID is in range
	c, _ := palette.FromId(p.ColourId)
	return c
}

func (p Pixel) Serialize() []byte {
	return Serialize(p.Coord, p.ColourId)
}

// Serialize encodes a pixel as PAYLOAD_LENGTH big-endian bytes. The colour ID
// is written as-is, without checking it against the palette.
func Serialize(coord Coord, colourId uint8) []byte {
	s := serializer.Serializer{
		Data:   make([]byte, 0, PAYLOAD_LENGTH),
		Endian: binary.BigEndian,
	}

	s.AddUint16(coord.X)
	s.AddUint16(coord.Y)
	s.AddUint8(colourId)

	return s.Data
}
