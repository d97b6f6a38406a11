package solver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/autolingo/internal/exercise"
	"codeberg.org/snonux/autolingo/internal/language"
	"codeberg.org/snonux/autolingo/internal/testutil"
	"codeberg.org/snonux/autolingo/internal/translation"
)

func newSolver(t *testing.T, translations map[string]string, detections map[string]language.Language) (*Solver, *testutil.MockTranslator) {
	t.Helper()

	mock := testutil.NewMockTranslator(translations)
	cache := translation.NewCache(mock, testutil.NewMockDetector(detections), nil)
	opts := DefaultOptions()
	opts.TypingDelay = 5 * time.Millisecond
	return New(cache, opts), mock
}

func TestSelect_PicksMatchingChoice(t *testing.T) {
	t.Parallel()

	s, _ := newSolver(t, map[string]string{
		"hond":  "dog",
		"kat":   "cat",
		"vogel": "bird",
	}, nil)

	plan, err := s.Select(context.Background(), "Which one of these is “hond”?", []string{"kat1", "hond 2", "vogel\n3"})
	require.NoError(t, err)

	assert.Equal(t, exercise.Select, plan.Variant)
	assert.Equal(t, 1, plan.Choice)
	assert.True(t, plan.Confident)
	assert.Equal(t, "hond 2", plan.Answer)
	assert.Equal(t, []Action{
		{Kind: ActionClick, Target: TargetChoice, Index: 1},
		{Kind: ActionSubmit},
	}, plan.Actions)
}

func TestSelect_CaseFolded(t *testing.T) {
	t.Parallel()

	s, _ := newSolver(t, map[string]string{
		"Hond":   "Dog",
		"kat":    "cat",
		"honden": "dog",
	}, nil)

	plan, err := s.Select(context.Background(), "“Hond”", []string{"kat", "honden"})
	require.NoError(t, err)
	assert.Equal(t, 1, plan.Choice)
	assert.True(t, plan.Confident)
}

func TestSelect_FallsBackToFirstChoice(t *testing.T) {
	t.Parallel()

	s, _ := newSolver(t, map[string]string{
		"hond":  "dog",
		"kat":   "cat",
		"vogel": "bird",
		"vis":   "fish",
	}, nil)

	plan, err := s.Select(context.Background(), "Which one of these is “hond”?", []string{"kat", "vogel", "vis"})
	require.NoError(t, err)

	assert.Equal(t, 0, plan.Choice)
	assert.False(t, plan.Confident)
	assert.Equal(t, ActionClick, plan.Actions[0].Kind)
	assert.Equal(t, 0, plan.Actions[0].Index)
}

func TestSelect_UsesCacheAcrossExercises(t *testing.T) {
	t.Parallel()

	s, mock := newSolver(t, map[string]string{"hond": "dog", "kat": "cat"}, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.Select(ctx, "“hond”", []string{"kat", "hond"})
		require.NoError(t, err)
	}
	assert.Equal(t, 1, mock.CallCount("hond"))
	assert.Equal(t, 1, mock.CallCount("kat"))
}

func TestSelect_PropagatesServiceErrors(t *testing.T) {
	t.Parallel()

	s, mock := newSolver(t, map[string]string{"hond": "dog"}, nil)
	quota := errors.New("quota exceeded")
	mock.Errors["kat"] = quota

	_, err := s.Select(context.Background(), "“hond”", []string{"kat", "hond"})
	assert.ErrorIs(t, err, quota)
}

func TestSelect_NoChoices(t *testing.T) {
	t.Parallel()

	s, _ := newSolver(t, nil, nil)
	_, err := s.Select(context.Background(), "“hond”", nil)
	assert.Error(t, err)
}

func TestAssist_DetectsDirection(t *testing.T) {
	t.Parallel()

	s, mock := newSolver(t,
		map[string]string{"dog": "hond"},
		map[string]language.Language{"dog": language.English},
	)

	plan, err := s.Assist(context.Background(), "dog", []string{"1 kat", "2 hond", "3 vogel"})
	require.NoError(t, err)

	assert.Equal(t, exercise.Assist, plan.Variant)
	assert.Equal(t, 1, plan.Choice)
	assert.True(t, plan.Confident)
	assert.Equal(t, []string{"Translate: dog (en->nl)"}, mock.Calls())
}

func TestAssist_ExactEqualityOnly(t *testing.T) {
	t.Parallel()

	s, _ := newSolver(t,
		map[string]string{"hond": "Dog"},
		map[string]language.Language{"hond": language.Dutch},
	)

	plan, err := s.Assist(context.Background(), "hond", []string{"1cat", "2dog"})
	require.NoError(t, err)
	assert.Equal(t, 0, plan.Choice)
	assert.False(t, plan.Confident)
}

func TestAssist_UndeterminedLanguageIsFatal(t *testing.T) {
	t.Parallel()

	s, _ := newSolver(t, nil, nil)
	_, err := s.Assist(context.Background(), "xyz", []string{"a", "b"})
	assert.ErrorIs(t, err, language.ErrUndetermined)
}

func TestTranslate_TypesTranslation(t *testing.T) {
	t.Parallel()

	s, mock := newSolver(t, map[string]string{"Goede nacht": "Good night"}, nil)

	plan, err := s.Translate(context.Background(), "Write this in English", "Goede nacht")
	require.NoError(t, err)

	assert.Equal(t, exercise.Translate, plan.Variant)
	assert.Equal(t, "Good night", plan.Answer)
	assert.Equal(t, []string{"Translate: Goede nacht (nl->en)"}, mock.Calls())

	require.Len(t, plan.Actions, len("Good night")+2)
	for i, r := range "Good night" {
		assert.Equal(t, Action{Kind: ActionKey, Key: r, Delay: 5 * time.Millisecond}, plan.Actions[i])
	}
	assert.Equal(t, ActionSubmit, plan.Actions[len(plan.Actions)-2].Kind)
	assert.Equal(t, ActionRevealReference, plan.Actions[len(plan.Actions)-1].Kind)
}

func TestTranslate_DutchHeader(t *testing.T) {
	t.Parallel()

	s, mock := newSolver(t, map[string]string{"I eat an apple": "Ik eet een appel"}, nil)

	plan, err := s.Translate(context.Background(), "WRITE THIS IN DUTCH", "I eat an apple")
	require.NoError(t, err)
	assert.Equal(t, "Ik eet een appel", plan.Answer)
	assert.Equal(t, []string{"Translate: I eat an apple (en->nl)"}, mock.Calls())
}

func TestTranslate_UnknownHeader(t *testing.T) {
	t.Parallel()

	s, _ := newSolver(t, nil, nil)

	_, err := s.Translate(context.Background(), "Tap what you hear", "x")
	assert.ErrorIs(t, err, ErrUnrecognizedPrompt)

	_, err = s.Translate(context.Background(), "Write this in French", "x")
	assert.ErrorIs(t, err, language.ErrUnsupported)
}

func TestHeaderLanguage(t *testing.T) {
	t.Parallel()

	tests := map[string]language.Language{
		"Write this in English":      language.English,
		"write this in dutch":        language.Dutch,
		"Write   this in Nederlands": language.Dutch,
	}
	for header, want := range tests {
		got, err := HeaderLanguage(header)
		require.NoError(t, err, header)
		assert.Equal(t, want, got, header)
	}
}

func TestMatch_PairsInSourceOrder(t *testing.T) {
	t.Parallel()

	s, _ := newSolver(t, map[string]string{"hond": "dog", "kat": "cat"}, nil)
	s.opts.Direction = Direction{From: language.Dutch, To: language.English}

	plan, err := s.Match(context.Background(), []string{"hond", "kat", "dog", "cat"})
	require.NoError(t, err)

	assert.Equal(t, []Pair{{0, 0}, {1, 1}}, plan.Pairs)
	assert.True(t, plan.Confident)
	assert.Equal(t, []Action{
		{Kind: ActionClick, Target: TargetCard, Index: 0},
		{Kind: ActionClick, Target: TargetCard, Index: 2},
		{Kind: ActionClick, Target: TargetCard, Index: 1},
		{Kind: ActionClick, Target: TargetCard, Index: 3},
	}, plan.Actions)
}

func TestMatch_DuplicateTargetIsNotExcluded(t *testing.T) {
	t.Parallel()

	s, _ := newSolver(t, map[string]string{"hond": "dog", "reu": "dog"}, nil)
	s.opts.Direction = Direction{From: language.Dutch, To: language.English}

	plan, err := s.Match(context.Background(), []string{"hond", "reu", "dog", "dog"})
	require.NoError(t, err)
	assert.Equal(t, []Pair{{0, 0}, {1, 0}}, plan.Pairs)
}

func TestMatch_SkipsUnmatchedAndFoldsCase(t *testing.T) {
	t.Parallel()

	s, _ := newSolver(t, map[string]string{"hond": "Dog", "kat": "cat", "vis": "fish"}, nil)
	s.opts.Direction = Direction{From: language.Dutch, To: language.English}

	plan, err := s.Match(context.Background(), []string{"hond", "kat", "vis", "bird", "dog", "fish"})
	require.NoError(t, err)
	assert.Equal(t, []Pair{{0, 1}, {2, 2}}, plan.Pairs)
	assert.False(t, plan.Confident)
}

func TestMatch_OddCards(t *testing.T) {
	t.Parallel()

	s, _ := newSolver(t, nil, nil)
	_, err := s.Match(context.Background(), []string{"a", "b", "c"})
	assert.ErrorIs(t, err, ErrOddCards)
}

func TestPartialReverse_WarmsCacheAndTypesRemainder(t *testing.T) {
	t.Parallel()

	s, mock := newSolver(t,
		map[string]string{"Ik eet een appel": "I eat an apple"},
		map[string]language.Language{"Ik eet een appel": language.Dutch},
	)

	plan, err := s.PartialReverse(context.Background(), "Ik eet een appel", "apple")
	require.NoError(t, err)

	assert.Equal(t, "apple", plan.Answer)
	assert.Equal(t, []string{"Translate: Ik eet een appel (nl->en)"}, mock.Calls())
	require.Len(t, plan.Actions, len("apple")+1)
	assert.Equal(t, 'a', plan.Actions[0].Key)
	assert.Equal(t, ActionSubmit, plan.Actions[len(plan.Actions)-1].Kind)
}

func TestSolve_Dispatch(t *testing.T) {
	t.Parallel()

	s, _ := newSolver(t, map[string]string{"hond": "dog", "kat": "cat"}, nil)
	ctx := context.Background()

	plan, err := s.Solve(ctx, Challenge{Variant: exercise.Ignore})
	require.NoError(t, err)
	assert.Equal(t, []Action{{Kind: ActionPause, Delay: time.Second}}, plan.Actions)

	plan, err = s.Solve(ctx, Challenge{Variant: exercise.Select, Prompt: "“hond”", Choices: []string{"kat", "hond"}})
	require.NoError(t, err)
	assert.Equal(t, 1, plan.Choice)

	for _, v := range []exercise.Variant{exercise.Name, exercise.ListenOnly} {
		_, err = s.Solve(ctx, Challenge{Variant: v})
		assert.ErrorIs(t, err, exercise.ErrUnsupportedExercise)
	}
}

func TestQuotedPhrase(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Which one of these is “the dog”?": "the dog",
		"“hond”":                           "hond",
		"  plain prompt ":                  "plain prompt",
		"unterminated “quote":              "unterminated “quote",
	}
	for prompt, want := range tests {
		assert.Equal(t, want, QuotedPhrase(prompt), prompt)
	}
}

func TestStripNumbering(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hond", StripTrailingNumbering("hond\n1"))
	assert.Equal(t, "de hond", StripTrailingNumbering("de hond 12 "))
	assert.Equal(t, "hond", StripLeadingNumbering("1\nhond"))
	assert.Equal(t, "honden", StripLeadingNumbering("3 2 honden"))
}
