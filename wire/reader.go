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
	"encoding/binary"
	"errors"
	"fmt"
)

// Leading bytes selecting the wider varint forms.
const (
	VARINT_U16 = 253
	VARINT_U32 = 254
	VARINT_U64 = 255
)

var ErrOutOfRange = errors.New("read out of range")

// Reader reads big-endian integers from a fixed buffer with a forward-only
// cursor. Varints are CompactSize with big-endian wide forms, not the LEB128
// uvarints of serializer.Deserializer.
type Reader struct {
	data   []byte
	offset int
}

func NewReader(data []byte) *Reader {
	return &Reader{
		data: data,
	}
}

// take returns the next n bytes and advances the cursor. The cursor is left
// untouched when fewer than n bytes remain.
func (r *Reader) take(n int) ([]byte, error) {
	if len(r.data)-r.offset < n {
		return nil, fmt.Errorf("%w: %d bytes at offset %d, buffer is %d bytes",
			ErrOutOfRange, n, r.offset, len(r.data))
	}
	b := r.data[r.offset : r.offset+n]
	r.offset += n
	return b, nil
}

func (r *Reader) Uint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) Uint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *Reader) Uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *Reader) Uint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// Varint reads a CompactSize integer: one byte below 253 is the value itself,
// otherwise 253, 254 and 255 announce a following uint16, uint32 or uint64.
func (r *Reader) Varint() (uint64, error) {
	first, err := r.Uint8()
	if err != nil {
		return 0, err
	}

	switch first {
	case VARINT_U16:
		n, err := r.Uint16()
		return uint64(n), err
	case VARINT_U32:
		n, err := r.Uint32()
		return uint64(n), err
	case VARINT_U64:
		return r.Uint64()
	default:
		return uint64(first), nil
	}
}

func (r *Reader) Offset() int {
	return r.offset
}

func (r *Reader) Remaining() int {
	return len(r.data) - r.offset
}
