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
	"time"

	"p2put/log"

	deadlock "github.com/sasha-s/go-deadlock"
)

// SetDeadlockTimeout configures how long a lock may be waited on before the
// detector reports it. A zero duration disables detection.
func SetDeadlockTimeout(d time.Duration) {
	deadlock.Opts.Disable = d == 0
	deadlock.Opts.DeadlockTimeout = d
}

// Mutex is a deadlock-detecting mutex that traces lock activity at log level 3.
type Mutex struct {
	mutex deadlock.Mutex
}

// RWMutex is the read/write variant of Mutex.
type RWMutex struct {
	mutex deadlock.RWMutex
}

var numLock deadlock.Mutex
var numLocked int
var numRLocked int

func trace(counter *int, delta int, msg string) {
	if log.LogLevel < 3 {
		return
	}
	numLock.Lock()
	*counter += delta
	n := *counter
	numLock.Unlock()

	log.Mutex(msg, n)
}

func (m *Mutex) Lock() {
	trace(&numLocked, 1, "Lock!")
	m.mutex.Lock()
}

func (m *Mutex) Unlock() {
	trace(&numLocked, -1, "Unlock!")
	m.mutex.Unlock()
}

func (r *RWMutex) Lock() {
	trace(&numLocked, 1, "Lock!")
	r.mutex.Lock()
}

func (r *RWMutex) Unlock() {
	trace(&numLocked, -1, "Unlock!")
	r.mutex.Unlock()
}

func (r *RWMutex) RLock() {
	trace(&numRLocked, 1, "RLock!")
	r.mutex.RLock()
}

func (r *RWMutex) RUnlock() {
	trace(&numRLocked, -1, "RUnlock!")
	r.mutex.RUnlock()
}
