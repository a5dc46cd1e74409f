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

package sync

import (
	"bytes"
	"strings"
	stdsync "sync"
	"testing"

	"p2put/log"
)

func TestMutexTrace(t *testing.T) {
	var buf bytes.Buffer
	oldOut, oldLevel := log.Stdout, log.LogLevel
	log.Stdout, log.LogLevel = &buf, 3
	defer func() { log.Stdout, log.LogLevel = oldOut, oldLevel }()

	var m Mutex
	m.Lock()
	m.Unlock()

	var rw RWMutex
	rw.RLock()
	rw.RUnlock()

	out := buf.String()
	for _, s := range []string{"[MUTEX] Lock!", "[MUTEX] Unlock!", "[MUTEX] RLock!", "[MUTEX] RUnlock!"} {
		if !strings.Contains(out, s) {
			t.Fatalf("missing %q in:\n%s", s, out)
		}
	}
	if !strings.Contains(out, "rw_mutex_test:") {
		t.Fatalf("trace does not name the locking caller:\n%s", out)
	}
}

func TestRWMutexCounter(t *testing.T) {
	var rw RWMutex
	var wg stdsync.WaitGroup
	counter := 0

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				rw.Lock()
				counter++
				rw.Unlock()

				rw.RLock()
				_ = counter
				rw.RUnlock()
			}
		}()
	}
	wg.Wait()

	if counter != 800 {
		t.Fatalf("expected 800; got %d", counter)
	}
}
