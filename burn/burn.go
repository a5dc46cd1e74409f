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

package burn

import (
	"errors"
	"fmt"
	"strings"

	"p2put/address"
)

const (
	PREFIX_LENGTH  = 5
	PROGRAM_LENGTH = 32
	// bytes after the prefix and the three fixed pattern repetitions
	TAIL_LENGTH = 12
	TAIL_OFFSET = PROGRAM_LENGTH - TAIL_LENGTH
)

// BURN_PATTERN regroups into 5-bit values of 15 only, so it shows up as a run
// of '0' characters in the encoded address.
var BURN_PATTERN = [5]byte{0x7b, 0xde, 0xf7, 0xbd, 0xef}

var ErrPrefixLength = errors.New("burn prefixes must be 5 bytes")
var ErrPayloadTooLong = errors.New("payload does not fit in the address tail")

// Generator builds unspendable witness addresses carrying a small payload.
//
// A Generator reuses one program buffer between calls and must not be used
// from multiple goroutines at once. BuildAddress is the allocation-per-call
// alternative.
type Generator struct {
	bechPrefix string
	program    [PROGRAM_LENGTH]byte
}

func NewGenerator(bechPrefix string, burnPrefix []byte) (*Generator, error) {
	if len(burnPrefix) != PREFIX_LENGTH {
		return nil, fmt.Errorf("%w, got %d", ErrPrefixLength, len(burnPrefix))
	}

	// bech32 addresses are encoded in lower case
	g := &Generator{
		bechPrefix: strings.ToLower(bechPrefix),
	}

	copy(g.program[:], burnPrefix)
	for i := PREFIX_LENGTH; i < TAIL_OFFSET; i += len(BURN_PATTERN) {
		copy(g.program[i:], BURN_PATTERN[:])
	}

	return g, nil
}

// WithData embeds data at the end of the program and returns the encoded
// address. The part of the tail not covered by data is refilled with the burn
// pattern, so no bytes from a previous call survive.
func (g *Generator) WithData(data []byte) (string, error) {
	if len(data) > TAIL_LENGTH {
		return "", fmt.Errorf("%w: %d bytes, max %d", ErrPayloadTooLong, len(data), TAIL_LENGTH)
	}

	embed(&g.program, data)

	return address.EncodeWitness(g.bechPrefix, 0, g.program[:])
}

// Program returns a copy of the current witness program.
func (g *Generator) Program() [PROGRAM_LENGTH]byte {
	return g.program
}

func (g *Generator) BechPrefix() string {
	return g.bechPrefix
}

func embed(program *[PROGRAM_LENGTH]byte, data []byte) {
	for i := 0; i < TAIL_LENGTH-len(data); i++ {
		program[TAIL_OFFSET+i] = BURN_PATTERN[i%len(BURN_PATTERN)]
	}
	copy(program[PROGRAM_LENGTH-len(data):], data)
}

// BuildAddress returns the same address as a fresh Generator would for data,
// without sharing any state between calls.
func BuildAddress(bechPrefix string, burnPrefix, data []byte) (string, error) {
	g, err := NewGenerator(bechPrefix, burnPrefix)
	if err != nil {
		return "", err
	}
	return g.WithData(data)
}
