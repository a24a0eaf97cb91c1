// Package clock supplies the reference "now" read once per request.
package clock

import "time"

type Clock func() time.Time

// In returns a clock reading wall time in loc.
func In(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return func() time.Time { return time.Now().In(loc) }
}

// Fixed always returns t.
func Fixed(t time.Time) Clock { return func() time.Time { return t } }
