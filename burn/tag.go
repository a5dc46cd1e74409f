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

import "github.com/zeebo/blake3"

// PrefixFromTag derives a burn prefix from an application tag, so unrelated
// applications sharing the scheme land on distinct addresses.
func PrefixFromTag(tag string) []byte {
	h := blake3.Sum256([]byte(tag))
	return h[:PREFIX_LENGTH]
}
