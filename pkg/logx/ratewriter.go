package logx

import (
	"io"
	"sync/atomic"

	"golang.org/x/time/rate"
)

// RateLimitedWriter drops writes beyond a per-second cap instead of
// blocking the caller. Dropped events are counted, not buffered; log sinks
// that fall behind should lose lines, not stall the process.
type RateLimitedWriter struct {
	w       io.Writer
	lim     *rate.Limiter
	dropped atomic.Uint64
}

// NewRateLimitedWriter caps w at eventsPerSec writes per second (burst of the
// same size). eventsPerSec below 1 is treated as 1.
func NewRateLimitedWriter(w io.Writer, eventsPerSec int) *RateLimitedWriter {
	if eventsPerSec < 1 {
		eventsPerSec = 1
	}
	return &RateLimitedWriter{
		w:   w,
		lim: rate.NewLimiter(rate.Limit(eventsPerSec), eventsPerSec),
	}
}

func (rw *RateLimitedWriter) Write(p []byte) (int, error) {
	if !rw.lim.Allow() {
		rw.dropped.Add(1)
		// Report success so upstream writers don't treat the drop as an error.
		return len(p), nil
	}
	return rw.w.Write(p)
}

// Dropped returns and resets the number of writes discarded so far.
func (rw *RateLimitedWriter) Dropped() uint64 {
	return rw.dropped.Swap(0)
}
