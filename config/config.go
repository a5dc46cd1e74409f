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

package config

import "time"

const DEFAULT_CONFIG_FILE = "config.json"
const DEFAULT_DATABASE = "p2put.db"

const DEFAULT_BECH_PREFIX = "bc"

const DEFAULT_API_HOST = "0.0.0.0"
const DEFAULT_API_PORT = 8080

// in seconds
const API_CACHE_MAX_AGE = 3600

const DEADLOCK_TIMEOUT = 30 * time.Second

// rate limit scores, see ratelimit.MAX_SCORE
const (
	ACTION_PALETTE = 1
	ACTION_DECODE  = 5
	ACTION_ADDRESS = 10
	ACTION_INVALID = 100
)
