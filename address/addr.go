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

package address

import (
	"errors"
	"fmt"
	"strings"

	"p2put/log"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// MAX_WITNESS_VERSION is the highest version a bech32 witness address can carry.
const MAX_WITNESS_VERSION = 16

const MAX_HRP_LENGTH = 83
const MAX_ADDRESS_LENGTH = 90
const CHECKSUM_LENGTH = 6

var ErrWrongPrefix = errors.New("wrong human readable part")
var ErrInvalidWitness = errors.New("invalid witness program")

// EncodeWitness encodes a witness program as a bech32 address: the version is
// prepended as a single unconverted 5-bit group to the regrouped program.
func EncodeWitness(hrp string, version uint8, program []byte) (string, error) {
	if version > MAX_WITNESS_VERSION {
		return "", fmt.Errorf("%w: version %d", ErrInvalidWitness, version)
	}
	if err := checkHrp(hrp); err != nil {
		return "", err
	}

	conv, err := bech32.ConvertBits(program, 8, 5, true)
	if err != nil {
		return "", err
	}

	// hrp, separator, version group, data, checksum
	if n := len(hrp) + 1 + 1 + len(conv) + CHECKSUM_LENGTH; n > MAX_ADDRESS_LENGTH {
		return "", fmt.Errorf("%w: address would be %d characters, max %d", ErrInvalidWitness, n, MAX_ADDRESS_LENGTH)
	}

	return bech32.Encode(hrp, append([]byte{version}, conv...))
}

func checkHrp(hrp string) error {
	if len(hrp) == 0 || len(hrp) > MAX_HRP_LENGTH {
		return fmt.Errorf("%w: human readable part length %d", ErrInvalidWitness, len(hrp))
	}
	for i := 0; i < len(hrp); i++ {
		if hrp[i] < 33 || hrp[i] > 126 {
			return fmt.Errorf("%w: invalid character %q in human readable part", ErrInvalidWitness, hrp[i])
		}
	}
	if strings.ToLower(hrp) != hrp && strings.ToUpper(hrp) != hrp {
		return fmt.Errorf("%w: mixed case human readable part", ErrInvalidWitness)
	}
	return nil
}

// DecodeWitness is the inverse of EncodeWitness.
func DecodeWitness(addr string) (hrp string, version uint8, program []byte, err error) {
	hrp, data, err := bech32.Decode(addr)
	if err != nil {
		return "", 0, nil, err
	}
	if len(data) == 0 {
		return "", 0, nil, fmt.Errorf("%w: empty data", ErrInvalidWitness)
	}

	version = data[0]
	if version > MAX_WITNESS_VERSION {
		return "", 0, nil, fmt.Errorf("%w: version %d", ErrInvalidWitness, version)
	}

	program, err = bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return "", 0, nil, fmt.Errorf("%w: %v", ErrInvalidWitness, err)
	}

	return hrp, version, program, nil
}

// IsAddressValid reports whether addr is a version 0 witness address with a
// 32 byte program under the given human readable part.
func IsAddressValid(addr, hrp string) bool {
	h, version, program, err := DecodeWitness(addr)
	if err != nil {
		log.Debugf("address is not valid: %s", err)
		return false
	}
	if !strings.EqualFold(h, hrp) {
		log.Debugf("address is not valid: %s: %s", ErrWrongPrefix, h)
		return false
	}

	return version == 0 && len(program) == 32
}
