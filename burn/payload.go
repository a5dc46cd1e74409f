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
	"bytes"
	"errors"
	"fmt"

	"p2put/address"
)

var ErrNotBurnAddress = errors.New("not a burn address")

// Payload returns the last n bytes of the witness program of addr, after
// checking that everything before them is exactly what a Generator with the
// same prefixes would have written.
func Payload(addr, bechPrefix string, burnPrefix []byte, n int) ([]byte, error) {
	if n < 0 || n > TAIL_LENGTH {
		return nil, fmt.Errorf("%w: %d bytes, max %d", ErrPayloadTooLong, n, TAIL_LENGTH)
	}

	g, err := NewGenerator(bechPrefix, burnPrefix)
	if err != nil {
		return nil, err
	}

	hrp, version, program, err := address.DecodeWitness(addr)
	if err != nil {
		return nil, err
	}
	if hrp != g.BechPrefix() {
		return nil, fmt.Errorf("%w: %w %q", ErrNotBurnAddress, address.ErrWrongPrefix, hrp)
	}
	if version != 0 || len(program) != PROGRAM_LENGTH {
		return nil, fmt.Errorf("%w: version %d, %d byte program", ErrNotBurnAddress, version, len(program))
	}

	payload := program[PROGRAM_LENGTH-n:]

	// rebuild the expected program around the payload and compare all of it
	embed(&g.program, payload)
	if !bytes.Equal(g.program[:], program) {
		return nil, fmt.Errorf("%w: burn pattern mismatch", ErrNotBurnAddress)
	}

	return append([]byte(nil), payload...), nil
}
