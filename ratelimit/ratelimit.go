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

package ratelimit

import (
	"context"
	"time"

	"p2put/log"
	"p2put/sync"
)

/*
consumption, see config.ACTION_*:
palette: 1 (1000 per interval)
decode: 5 (200 per interval)
address: 10 (100 per interval)
invalid request: 100 (10 per interval)
*/

const MAX_SCORE = 1000
const RESET_INTERVAL = 60 * time.Second
const BAN_DURATION = 5 * 60

type rateLimiter struct {
	Score uint32
}
type ban struct {
	Ends int64
}

// Limiter accumulates a score per IP and bans IPs exceeding MAX_SCORE until
// the ban expires. Scores are cleared every RESET_INTERVAL by Run.
type Limiter struct {
	mut          sync.RWMutex
	rateLimiters map[string]rateLimiter
	bans         map[string]ban

	now func() time.Time
}

func New() *Limiter {
	return &Limiter{
		rateLimiters: make(map[string]rateLimiter, 500),
		bans:         make(map[string]ban, 10),
		now:          time.Now,
	}
}

func (l *Limiter) IsBanned(ip string) bool {
	l.mut.RLock()
	defer l.mut.RUnlock()

	return l.bans[ip].Ends > l.now().Unix()
}

// CanDoAction adds requiredScore to the IP's score and reports whether the
// action is allowed.
func (l *Limiter) CanDoAction(ip string, requiredScore uint32) bool {
	l.mut.Lock()
	defer l.mut.Unlock()

	l.rateLimiters[ip] = rateLimiter{
		Score: l.rateLimiters[ip].Score + requiredScore,
	}

	log.Debug("rate limit score", l.rateLimiters[ip].Score, "/", MAX_SCORE)

	t := l.now().Unix()

	if l.bans[ip].Ends > t {
		return false
	}

	if l.rateLimiters[ip].Score > MAX_SCORE {
		l.bans[ip] = ban{
			Ends: t + BAN_DURATION,
		}
		log.Warnf("banning %s until %d", ip, t+BAN_DURATION)
		return false
	}

	return true
}

// Run clears scores and expired bans every RESET_INTERVAL until ctx is done.
func (l *Limiter) Run(ctx context.Context) {
	ticker := time.NewTicker(RESET_INTERVAL)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Clear()
		}
	}
}

func (l *Limiter) Clear() {
	l.mut.Lock()
	defer l.mut.Unlock()

	// clear rate limiters
	l.rateLimiters = make(map[string]rateLimiter, len(l.rateLimiters))

	// clear outdated bans
	t := l.now().Unix()
	bans2 := make(map[string]ban, len(l.bans))
	for i, v := range l.bans {
		if v.Ends > t { // ban is not outdated
			bans2[i] = v
		}
	}
	l.bans = bans2
}
