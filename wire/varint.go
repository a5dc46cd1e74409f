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

import "encoding/binary"

// VarintSize returns the number of bytes AppendVarint uses for n.
func VarintSize(n uint64) int {
	switch {
	case n < VARINT_U16:
		return 1
	case n <= 0xffff:
		return 3
	case n <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// AppendVarint appends n to dst in the shortest CompactSize form that Reader
// decodes. Wide forms are big-endian.
func AppendVarint(dst []byte, n uint64) []byte {
	switch VarintSize(n) {
	case 1:
		return append(dst, byte(n))
	case 3:
		return binary.BigEndian.AppendUint16(append(dst, VARINT_U16), uint16(n))
	case 5:
		return binary.BigEndian.AppendUint32(append(dst, VARINT_U32), uint32(n))
	default:
		return binary.BigEndian.AppendUint64(append(dst, VARINT_U64), n)
	}
}
