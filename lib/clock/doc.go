// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction for testability.
//
// Production code accepts a Clock interface parameter instead of calling
// time.Now directly. In production, Real() provides the standard library
// behavior. In tests, Fake() provides a deterministic clock that moves
// only when told to.
//
// # Wiring Pattern
//
// Functions that measure elapsed time take a Clock:
//
//	func measure(c clock.Clock) time.Duration {
//	    start := c.Now()
//	    // ... work ...
//	    return c.Now().Sub(start)
//	}
//
// In production:
//
//	d := measure(clock.Real())
//
// In tests, AutoAdvance makes the measurement deterministic: every Now
// call moves the clock forward by a fixed step, so a start/end pair
// observes exactly one step of elapsed time:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	c.AutoAdvance(250 * time.Millisecond)
//	d := measure(c) // always 250ms
package clock
