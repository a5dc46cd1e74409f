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

package util

import (
	"encoding/json"
	"strconv"
	"time"
)

func Time() uint64 {
	return uint64(time.Now().Unix())
}

func DumpJson(d any) string {
	data, err := json.MarshalIndent(d, "", "\t")
	if err != nil {
		panic(err)
	}

	return string(data)
}

// ParseUint parses a base 10 number that must fit in K.
func ParseUint[K uint8 | uint16 | uint32 | uint64](s string) (K, error) {
	var bits int
	switch any(K(0)).(type) {
	case uint8:
		bits = 8
	case uint16:
		bits = 16
	case uint32:
		bits = 32
	default:
		bits = 64
	}

	n, err := strconv.ParseUint(s, 10, bits)
	return K(n), err
}

func FormatUint[K uint | uint8 | uint16 | uint32 | uint64](n K) string {
	return strconv.FormatUint(uint64(n), 10)
}
