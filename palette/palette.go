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

package palette

import (
	"errors"
	"fmt"
	"strings"
)

const NUM_COLOURS = 16

var ErrColourRange = errors.New("colour ID is out of range 0-15")

type Colour struct {
	Id   uint8  `json:"id"`
	Rgb  uint32 `json:"rgb"`
	Name string `json:"name"`
}

var colours = [NUM_COLOURS]Colour{
	{0, 0xFFFFFF, "white"},
	{1, 0xC8C8C8, "light grey"},
	{2, 0x888888, "grey"},
	{3, 0x000000, "black"},
	{4, 0xFFA7D1, "pink"},
	{5, 0xE50000, "red"},
	{6, 0xF07010, "orange"},
	{7, 0x663311, "brown"},
	{8, 0xFFFF00, "yellow"},
	{9, 0x02D501, "bright green"},
	{10, 0x3CB054, "peercoin green"},
	{11, 0x006000, "dark green"},
	{12, 0x00D3DD, "cyan"},
	{13, 0x0083C7, "blue"},
	{14, 0x0000EA, "dark blue"},
	{15, 0x820080, "purple"},
}

// Palette returns a copy of the colour table, ordered by ID.
func Palette() []Colour {
	p := make([]Colour, NUM_COLOURS)
	copy(p, colours[:])
	return p
}

func FromId(id uint8) (Colour, error) {
	if id >= NUM_COLOURS {
		return Colour{}, fmt.Errorf("%w: %d", ErrColourRange, id)
	}
	return colours[id], nil
}

// ByName finds a colour by its name, ignoring case.
func ByName(name string) (Colour, bool) {
	for _, c := range colours {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, true
		}
	}
	return Colour{}, false
}

// Hex returns the CSS form of the colour, e.g. "#3cb054".
func Hex(c Colour) string {
	return fmt.Sprintf("#%06x", c.Rgb&0xffffff)
}

func Red(c Colour) uint8 {
	return uint8(c.Rgb >> 16)
}

func Green(c Colour) uint8 {
	return uint8(c.Rgb >> 8)
}

func Blue(c Colour) uint8 {
	return uint8(c.Rgb)
}
