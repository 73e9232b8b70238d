package liveroute

import "time"

// Observer receives controller lifecycle notifications. Implementations
// must be safe for concurrent use; controllers of different sessions share
// one observer.
type Observer interface {
	// ObserveTransition is called when a controller changes state.
	ObserveTransition(route string, from, to State)

	// ObserveHook is called after OnHide ("hide") or OnReappear
	// ("reappear") fired.
	ObserveHook(route, hook string)

	// ObserveEvaluation is called after every evaluation.
	ObserveEvaluation(route string, d time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveTransition(string, State, State)  {}
func (nopObserver) ObserveHook(string, string)              {}
func (nopObserver) ObserveEvaluation(string, time.Duration) {}
