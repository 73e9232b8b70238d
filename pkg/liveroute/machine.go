package liveroute

import "github.com/vango-dev/liveroute/pkg/pathmatch"

// Machine is the part of a controller's state the transition depends on.
type Machine struct {
	State State

	// HasHandle reports whether a view handle is currently cached.
	HasHandle bool
}

// Input is the outcome of matching one location.
type Input struct {
	// PathMatch is the primary path match, nil when it did not match.
	PathMatch *pathmatch.Match

	// LiveMatch is the first matching live path. It is only consulted when
	// PathMatch is nil.
	LiveMatch *pathmatch.Match

	// ForceUnmount is the forceUnmount predicate's verdict for a live-only
	// match.
	ForceUnmount bool
}

// Effect is a side effect requested by a transition.
type Effect uint8

const (
	EffectShowView      Effect = iota + 1 // Restore the saved display value
	EffectRestoreScroll                   // Scroll back to the saved position
	EffectClearScroll                     // Drop the saved scroll position
	EffectFireReappear                    // Call OnReappear
	EffectFireHide                        // Call OnHide
	EffectSaveScroll                      // Save the scroll position unless saved
	EffectHideView                        // Set display to none
	EffectReleaseView                     // Drop the handle and display backup
)

// String returns the string representation of the effect.
func (e Effect) String() string {
	switch e {
	case EffectShowView:
		return "ShowView"
	case EffectRestoreScroll:
		return "RestoreScroll"
	case EffectClearScroll:
		return "ClearScroll"
	case EffectFireReappear:
		return "FireReappear"
	case EffectFireHide:
		return "FireHide"
	case EffectSaveScroll:
		return "SaveScroll"
	case EffectHideView:
		return "HideView"
	case EffectReleaseView:
		return "ReleaseView"
	default:
		return "Unknown"
	}
}

// Decision says what an evaluation renders.
type Decision uint8

const (
	RenderNothing Decision = iota // Render no output
	RenderFresh                   // Render with the current routing context
	RenderFrozen                  // Render with the last matched snapshot
)

// String returns the string representation of the decision.
func (d Decision) String() string {
	switch d {
	case RenderNothing:
		return "nothing"
	case RenderFresh:
		return "fresh"
	case RenderFrozen:
		return "frozen"
	default:
		return "unknown"
	}
}

// Step is the result of one transition.
type Step struct {
	Next     Machine
	Effects  []Effect
	Decision Decision
}

// Transition computes the next state, the ordered effects to run and the
// render decision. It has no side effects.
//
// A primary match always wins. With no match at all the view unmounts. A
// live-only match hides the view, unless forceUnmount says otherwise or the
// view never produced a handle to hide.
func Transition(prev Machine, in Input) Step {
	if in.PathMatch != nil {
		step := Step{
			Next:     Machine{State: StateMatched, HasHandle: prev.HasHandle},
			Decision: RenderFresh,
		}
		if prev.State == StateHidden {
			step.Effects = []Effect{
				EffectShowView,
				EffectRestoreScroll,
				EffectClearScroll,
				EffectFireReappear,
			}
		}
		return step
	}

	if in.LiveMatch == nil {
		step := Step{
			Next:     Machine{State: StateUnmatched},
			Effects:  []Effect{EffectClearScroll},
			Decision: RenderNothing,
		}
		if prev.State != StateOnInit {
			step.Effects = append(step.Effects, EffectReleaseView)
		}
		return step
	}

	if in.ForceUnmount {
		return Step{
			Next:     Machine{State: StateUnmatched},
			Effects:  []Effect{EffectClearScroll, EffectReleaseView},
			Decision: RenderNothing,
		}
	}

	if !prev.HasHandle {
		return Step{
			Next:     Machine{State: StateUnmatched},
			Decision: RenderNothing,
		}
	}

	step := Step{
		Next:     Machine{State: StateHidden, HasHandle: true},
		Decision: RenderFrozen,
	}
	if prev.State == StateMatched {
		step.Effects = []Effect{EffectFireHide, EffectSaveScroll, EffectHideView}
	}
	return step
}
