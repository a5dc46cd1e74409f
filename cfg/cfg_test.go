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
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"p2put/burn"
)

func TestLoadMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.json")

	if _, err := Load(path); !errors.Is(err, ErrNoConfig) {
		t.Fatalf("expected ErrNoConfig; got %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("Load created files: %v", entries)
	}
}

func TestWriteBlank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	if err := WriteBlank(path); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.BechPrefix != "bc" || c.Api.Port != 8080 {
		t.Fatalf("unexpected defaults %+v", c)
	}
}

func TestLoadParentDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"BechPrefix":"tb"}`), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	// absolute path, found one directory up
	c, err := Load(filepath.Join(dir, "sub", "config.json"))
	if err != nil {
		t.Fatal(err)
	}
	if c.BechPrefix != "tb" {
		t.Fatalf("unexpected config %+v", c)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	err := os.WriteFile(path, []byte(`{"BechPrefix":"ppc","BurnPrefix":"1122334455","Api":{"Port":9000}}`), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.BechPrefix != "ppc" || c.Api.Port != 9000 || c.DatabasePath != "p2put.db" {
		t.Fatalf("unexpected config %+v", c)
	}

	prefix, err := c.BurnPrefixBytes()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(prefix, []byte{0x11, 0x22, 0x33, 0x44, 0x55}) {
		t.Fatalf("unexpected prefix %x", prefix)
	}
}

func TestBurnPrefixBytes(t *testing.T) {
	c := Default()
	prefix, err := c.BurnPrefixBytes()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(prefix, burn.PrefixFromTag("p2put")) {
		t.Fatalf("tag prefix mismatch %x", prefix)
	}

	c.BurnPrefix = "1122"
	if _, err := c.BurnPrefixBytes(); !errors.Is(err, burn.ErrPrefixLength) {
		t.Fatalf("expected ErrPrefixLength; got %v", err)
	}

	c.BurnPrefix = "zz"
	if _, err := c.BurnPrefixBytes(); err == nil {
		t.Fatal("expected hex error")
	}

	c.BurnPrefix, c.BurnTag = "", ""
	if _, err := c.BurnPrefixBytes(); err == nil {
		t.Fatal("expected error with no prefix")
	}
}
