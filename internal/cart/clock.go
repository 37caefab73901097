package cart

import "time"

// DateFormat is the wall-clock layout written into orders.date.
const DateFormat = "2006-01-02 15:04:05"

// Clock supplies the checkout timestamp.
//
// Production code uses WallClock; tests substitute testutil.FixedClock so
// receipts and order rows are reproducible.
type Clock interface {
	Now() time.Time
}

// WallClock reads the system clock.
type WallClock struct{}

// Now returns the current local time.
func (WallClock) Now() time.Time {
	return time.Now()
}
