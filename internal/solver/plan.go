package solver

import (
	"time"

	"codeberg.org/snonux/autolingo/internal/exercise"
)

// ActionKind is the kind of a single UI step
type ActionKind int

const (
	ActionClick ActionKind = iota
	ActionKey
	ActionSubmit
	ActionPause
	// ActionRevealReference reads the reference answer when the exercise
	// was marked incorrect. Informational only.
	ActionRevealReference
)

// Target names the element group a click refers to
type Target int

const (
	TargetNone Target = iota
	TargetChoice
	TargetCard
)

// Action is one step of a plan
type Action struct {
	Kind   ActionKind
	Target Target
	Index  int           // Element index within Target
	Key    rune          // ActionKey only
	Delay  time.Duration // Pause after a key, or the pause length
}

// Pair links a source card to a target card. Source indexes the first half
// of the cards and Target the second half.
type Pair struct {
	Source int
	Target int
}

// Plan is the resolved answer for one exercise
type Plan struct {
	Variant exercise.Variant

	// Select and Assist
	Choice    int
	Confident bool

	// Match
	Pairs []Pair

	// Translate and PartialReverseTranslate
	Answer string

	Actions []Action
}

func click(target Target, index int) Action {
	return Action{Kind: ActionClick, Target: target, Index: index}
}

func pause(d time.Duration) Action {
	return Action{Kind: ActionPause, Delay: d}
}

// typeText emits one key event per rune followed by submission
func typeText(text string, delay time.Duration) []Action {
	actions := make([]Action, 0, len(text)+1)
	for _, r := range text {
		actions = append(actions, Action{Kind: ActionKey, Key: r, Delay: delay})
	}
	return append(actions, Action{Kind: ActionSubmit})
}
