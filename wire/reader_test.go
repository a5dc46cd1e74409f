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
	"errors"
	"testing"
)

func TestFixedWidth(t *testing.T) {
	r := NewReader([]byte{
		0xab,
		0x12, 0x34,
		0xde, 0xad, 0xbe, 0xef,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	})

	u8, err := r.Uint8()
	if err != nil || u8 != 0xab {
		t.Fatalf("Uint8: got %x, %v", u8, err)
	}
	u16, err := r.Uint16()
	if err != nil || u16 != 0x1234 {
		t.Fatalf("Uint16: got %x, %v", u16, err)
	}
	u32, err := r.Uint32()
	if err != nil || u32 != 0xdeadbeef {
		t.Fatalf("Uint32: got %x, %v", u32, err)
	}
	u64, err := r.Uint64()
	if err != nil || u64 != 1<<64-1 {
		t.Fatalf("Uint64: got %x, %v", u64, err)
	}
	if r.Remaining() != 0 || r.Offset() != 15 {
		t.Fatalf("cursor at %d with %d remaining", r.Offset(), r.Remaining())
	}
}

func TestVarint(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		value    uint64
		consumed int
	}{
		{"single byte", []byte{0x05}, 5, 1},
		{"largest single byte", []byte{0xfc}, 252, 1},
		{"uint16", []byte{0xfd, 0x01, 0x00}, 256, 3},
		{"uint32", []byte{0xfe, 0x00, 0x01, 0x00, 0x00}, 65536, 5},
		{"uint64", []byte{0xff, 0, 0, 0, 0, 0, 0, 0, 0x01}, 1, 9},
		{"uint64 max", []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, 1<<64 - 1, 9},
		{"trailing data", []byte{0x07, 0xaa, 0xbb}, 7, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(tt.data)
			v, err := r.Varint()
			if err != nil {
				t.Fatal(err)
			}
			if v != tt.value {
				t.Fatalf("expected %d; got %d", tt.value, v)
			}
			if r.Offset() != tt.consumed {
				t.Fatalf("expected %d bytes consumed; got %d", tt.consumed, r.Offset())
			}
		})
	}
}

func TestOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		read func(r *Reader) error
	}{
		{"uint8 empty", nil, func(r *Reader) error { _, err := r.Uint8(); return err }},
		{"uint16 short", []byte{0x01}, func(r *Reader) error { _, err := r.Uint16(); return err }},
		{"uint32 short", []byte{1, 2, 3}, func(r *Reader) error { _, err := r.Uint32(); return err }},
		{"uint64 short", []byte{1, 2, 3, 4, 5, 6, 7}, func(r *Reader) error { _, err := r.Uint64(); return err }},
		{"varint empty", nil, func(r *Reader) error { _, err := r.Varint(); return err }},
		{"varint truncated uint16", []byte{0xfd, 0x01}, func(r *Reader) error { _, err := r.Varint(); return err }},
		{"varint truncated uint64", []byte{0xff, 0, 0, 0}, func(r *Reader) error { _, err := r.Varint(); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read(NewReader(tt.data))
			if !errors.Is(err, ErrOutOfRange) {
				t.Fatalf("expected ErrOutOfRange; got %v", err)
			}
		})
	}
}

func TestFailedReadKeepsCursor(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03})
	if _, err := r.Uint8(); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Uint32(); err == nil {
		t.Fatal("expected error")
	}
	v, err := r.Uint16()
	if err != nil || v != 0x0203 {
		t.Fatalf("Uint16 after failed read: got %x, %v", v, err)
	}
}
