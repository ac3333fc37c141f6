// Package snowflake provides a time-ordered unique ID generator.
package snowflake

import (
	"math/rand"
	"time"
)

// An ID is a 64 bit identifier. The top 48 bits are the creation time in
// milliseconds, the low 16 bits are random.
type ID uint64

// Now returns an ID for the current time.
func Now() ID {
	return TimeToID(time.Now())
}

// TimeToID converts a time.Time to an ID.
func TimeToID(ts time.Time) ID {
	return ID(uint64(ts.UnixNano()/int64(time.Millisecond))<<16 | uint64(rand.Intn(1<<16)))
}

// ToTime returns the time the ID was created.
func (id ID) ToTime() time.Time {
	return time.Unix(0, int64(id>>16)*1e6)
}
