package pacing

import (
	"time"

	"glpipeline/internal/config"
)

// FPSLimiter provides high-precision frame rate limiting
type FPSLimiter struct {
	next time.Time
	// limit overrides config.GetFPSLimit when non-nil.
	limit func() int
}

// NewFPSLimiter creates a limiter that follows config.GetFPSLimit
func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{limit: config.GetFPSLimit}
}

// Wait blocks until the next frame is due. A limit of 0 returns at once.
// Uses a hybrid sleep/spin approach for better precision on high FPS caps.
func (f *FPSLimiter) Wait() {
	limit := f.limit()
	if limit <= 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(limit)

	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
		// busy-wait for the final few microseconds
		if time.Until(f.next) <= 0 {
			break
		}
	}

	// If we're significantly late (e.g., hitch), resync to avoid drift
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}

// FPSCounter counts presented frames and reports the rate once per interval.
type FPSCounter struct {
	interval time.Duration
	frames   int
	last     time.Time
}

func NewFPSCounter(interval time.Duration, now time.Time) *FPSCounter {
	return &FPSCounter{interval: interval, last: now}
}

// Frame records one frame at now. It returns the average rate and true when
// an interval has elapsed.
func (c *FPSCounter) Frame(now time.Time) (float64, bool) {
	c.frames++
	elapsed := now.Sub(c.last)
	if elapsed < c.interval {
		return 0, false
	}
	fps := float64(c.frames) / elapsed.Seconds()
	c.frames = 0
	c.last = now
	return fps, true
}
