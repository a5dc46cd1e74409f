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

package cfg

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"p2put/burn"
	"p2put/config"
	"p2put/log"
)

var ErrNoConfig = errors.New("configuration file not found")

type Config struct {
	LogLevel uint8

	// human readable part of the generated addresses
	BechPrefix string

	// BurnPrefix is the 5 byte burn prefix in hex. When empty, BurnTag is
	// hashed into a prefix instead.
	BurnPrefix string
	BurnTag    string

	DatabasePath string

	Api Api
}

type Api struct {
	Host           string
	Port           uint16
	TrustedProxies []string
}

func Default() Config {
	return Config{
		BechPrefix:   config.DEFAULT_BECH_PREFIX,
		BurnTag:      "p2put",
		DatabasePath: config.DEFAULT_DATABASE,
		Api: Api{
			Host:           config.DEFAULT_API_HOST,
			Port:           config.DEFAULT_API_PORT,
			TrustedProxies: []string{"127.0.0.1"},
		},
	}
}

// Load reads the configuration from path, falling back to the same file name
// in the parent directory. ErrNoConfig is returned when neither exists.
func Load(path string) (Config, error) {
	fd, err := os.ReadFile(path)
	if err != nil {
		log.Debug(err)

		parent := filepath.Join(filepath.Dir(path), "..", filepath.Base(path))
		fd, err = os.ReadFile(parent)
		if err != nil {
			log.Debug(err)
			return Config{}, fmt.Errorf("%w: %s", ErrNoConfig, path)
		}
	}

	c := Default()
	if err := json.Unmarshal(fd, &c); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	log.LogLevel = c.LogLevel

	return c, nil
}

// WriteBlank writes the default configuration to path.
func WriteBlank(path string) error {
	blankCfg, err := json.MarshalIndent(Default(), "", "\t")
	if err != nil {
		return err
	}

	return os.WriteFile(path, blankCfg, 0o666)
}

// BurnPrefixBytes returns the configured burn prefix.
func (c Config) BurnPrefixBytes() ([]byte, error) {
	if c.BurnPrefix == "" {
		if c.BurnTag == "" {
			return nil, errors.New("neither BurnPrefix nor BurnTag is set")
		}
		return burn.PrefixFromTag(c.BurnTag), nil
	}

	b, err := hex.DecodeString(c.BurnPrefix)
	if err != nil {
		return nil, fmt.Errorf("BurnPrefix: %w", err)
	}
	if len(b) != burn.PREFIX_LENGTH {
		return nil, fmt.Errorf("BurnPrefix: %w, got %d", burn.ErrPrefixLength, len(b))
	}
	return b, nil
}
