package xedi

import (
	"time"

	"github.com/trickstertwo/xclock"
)

// Clock is the part of xclock.Clock that composition needs. Any xclock
// clock satisfies it; tests can pass a fixed clock.
type Clock interface {
	Now() time.Time
}

func defaultClock() Clock { return xclock.Default() }
