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
	"testing"
)

func TestFromId(t *testing.T) {
	for id := uint8(0); id < NUM_COLOURS; id++ {
		c, err := FromId(id)
		if err != nil {
			t.Fatal(err)
		}
		if c.Id != id {
			t.Fatalf("entry %d has id %d", id, c.Id)
		}
	}

	for _, id := range []uint8{16, 17, 255} {
		if _, err := FromId(id); !errors.Is(err, ErrColourRange) {
			t.Fatalf("id %d: expected ErrColourRange; got %v", id, err)
		}
	}
}

func TestPaletteIsCopy(t *testing.T) {
	p := Palette()
	if len(p) != NUM_COLOURS {
		t.Fatalf("expected %d colours; got %d", NUM_COLOURS, len(p))
	}

	p[0].Name = "mutated"
	p[0].Rgb = 0x123456

	c, _ := FromId(0)
	if c.Name != "white" || c.Rgb != 0xFFFFFF {
		t.Fatalf("palette was mutated through a copy: %+v", c)
	}
	if Palette()[0].Name != "white" {
		t.Fatal("second copy sees mutation")
	}
}

func TestChannels(t *testing.T) {
	c, _ := FromId(10)

	if Hex(c) != "#3cb054" {
		t.Fatalf("unexpected hex %s", Hex(c))
	}
	if Red(c) != 0x3c || Green(c) != 0xb0 || Blue(c) != 0x54 {
		t.Fatalf("unexpected channels %x %x %x", Red(c), Green(c), Blue(c))
	}

	black, _ := FromId(3)
	if Hex(black) != "#000000" {
		t.Fatalf("black should pad to six digits, got %s", Hex(black))
	}
}

func TestByName(t *testing.T) {
	c, ok := ByName("Peercoin Green")
	if !ok || c.Id != 10 {
		t.Fatalf("lookup failed: %+v %v", c, ok)
	}
	if _, ok := ByName("mauve"); ok {
		t.Fatal("unknown colour was found")
	}
}
