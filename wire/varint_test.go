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

package wire

import (
	"bytes"
	"testing"
)

func TestAppendVarint(t *testing.T) {
	tests := []struct {
		value    uint64
		expected []byte
	}{
		{0, []byte{0x00}},
		{252, []byte{0xfc}},
		{253, []byte{0xfd, 0x00, 0xfd}},
		{256, []byte{0xfd, 0x01, 0x00}},
		{65535, []byte{0xfd, 0xff, 0xff}},
		{65536, []byte{0xfe, 0x00, 0x01, 0x00, 0x00}},
		{1 << 32, []byte{0xff, 0, 0, 0, 0x01, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		got := AppendVarint(nil, tt.value)
		if !bytes.Equal(got, tt.expected) {
			t.Fatalf("%d: expected %x; got %x", tt.value, tt.expected, got)
		}
		if VarintSize(tt.value) != len(tt.expected) {
			t.Fatalf("%d: VarintSize %d, encoded %d bytes", tt.value, VarintSize(tt.value), len(tt.expected))
		}

		r := NewReader(got)
		v, err := r.Varint()
		if err != nil {
			t.Fatal(err)
		}
		if v != tt.value || r.Remaining() != 0 {
			t.Fatalf("%d: decoded %d with %d bytes left", tt.value, v, r.Remaining())
		}
	}
}
