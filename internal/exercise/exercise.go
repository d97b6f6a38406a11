package exercise

import (
	"errors"
	"fmt"
	"strings"
)

// Variant is the kind of exercise on screen
type Variant int

const (
	// Ignore is an interstitial screen with nothing to solve
	Ignore Variant = iota
	Select
	Translate
	Assist
	Match
	PartialReverseTranslate

	// Recognised but not solvable
	Name
	ListenOnly
)

var (
	// ErrUnknownExercise is returned for markers outside the known table
	ErrUnknownExercise = errors.New("unknown exercise type")

	// ErrUnsupportedExercise is returned for recognised variants that have
	// no solver
	ErrUnsupportedExercise = errors.New("unsupported exercise type")
)

// MarkerPrefix prefixes every exercise token in the marker attribute
const MarkerPrefix = "challenge-"

var tokens = map[string]Variant{
	"select":                  Select,
	"translate":               Translate,
	"assist":                  Assist,
	"match":                   Match,
	"partialReverseTranslate": PartialReverseTranslate,
	"name":                    Name,
	"listen":                  ListenOnly,
	"listenTap":               ListenOnly,
}

// Classify maps a marker such as "challenge challenge-translate" to its
// variant. An empty marker means the element is absent and yields Ignore.
func Classify(marker string) (Variant, error) {
	fields := strings.Fields(marker)
	if len(fields) == 0 {
		return Ignore, nil
	}

	token := fields[len(fields)-1]
	name, ok := strings.CutPrefix(token, MarkerPrefix)
	if !ok {
		return Ignore, fmt.Errorf("%w: %q", ErrUnknownExercise, marker)
	}

	variant, ok := tokens[name]
	if !ok {
		return Ignore, fmt.Errorf("%w: %q", ErrUnknownExercise, marker)
	}
	return variant, nil
}

// Supported reports whether a solver exists for v
func (v Variant) Supported() bool {
	return v != Name && v != ListenOnly
}

// Check returns ErrUnsupportedExercise for variants without a solver
func (v Variant) Check() error {
	if !v.Supported() {
		return fmt.Errorf("%w: %s", ErrUnsupportedExercise, v)
	}
	return nil
}

func (v Variant) String() string {
	switch v {
	case Ignore:
		return "ignore"
	case Select:
		return "select"
	case Translate:
		return "translate"
	case Assist:
		return "assist"
	case Match:
		return "match"
	case PartialReverseTranslate:
		return "partial-reverse-translate"
	case Name:
		return "name"
	case ListenOnly:
		return "listen"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}
