package countdown

import (
	"context"
	"fmt"
	"time"
)

// HoldDuration is how long a search keeps its booking hold on the client
// side. The booking API enforces its own expiry.
const HoldDuration = 1800 * time.Second

// Remaining returns the hold time left at now, never negative and never more
// than HoldDuration.
func Remaining(start, now time.Time) time.Duration {
	elapsed := now.Sub(start).Truncate(time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	left := HoldDuration - elapsed
	if left < 0 {
		return 0
	}
	return left
}

func RemainingSeconds(start, now time.Time) int {
	return int(Remaining(start, now) / time.Second)
}

func Expired(start, now time.Time) bool {
	return Remaining(start, now) == 0
}

// StartFromMillis converts the stored search start time.
func StartFromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// Format renders seconds as HH:MM:SS.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

type Option func(*Countdown)

func WithClock(now func() time.Time) Option {
	return func(c *Countdown) {
		c.now = now
	}
}

func WithInterval(d time.Duration) Option {
	return func(c *Countdown) {
		c.interval = d
	}
}

type Countdown struct {
	start    time.Time
	now      func() time.Time
	interval time.Duration
}

func New(start time.Time, opts ...Option) *Countdown {
	c := &Countdown{
		start:    start,
		now:      time.Now,
		interval: time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Countdown) Remaining() int {
	return RemainingSeconds(c.start, c.now())
}

// Ticks emits the remaining seconds immediately and then once per interval.
// The channel closes after 0 has been sent or when ctx is done.
func (c *Countdown) Ticks(ctx context.Context) <-chan int {
	out := make(chan int, 1)

	go func() {
		defer close(out)

		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			left := c.Remaining()
			select {
			case out <- left:
			case <-ctx.Done():
				return
			}
			if left == 0 {
				return
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
