package service

import (
	"strconv"
	"sync/atomic"
	"time"
)

var lastID atomic.Int64

// newID returns a time-based numeric identifier: the current Unix time in
// milliseconds, bumped past the previous value so ids never repeat within a
// process.
func newID(now time.Time) string {
	ms := now.UnixMilli()
	for {
		prev := lastID.Load()
		next := ms
		if next <= prev {
			next = prev + 1
		}
		if lastID.CompareAndSwap(prev, next) {
			return strconv.FormatInt(next, 10)
		}
	}
}
