package domain

import "github.com/jonboulle/clockwork"

// clock stamps assessments. Tests and fixture generation freeze it via SetClock
// so repeated runs produce identical output.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source for assessment timestamps. Pass nil to reset to
// real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
