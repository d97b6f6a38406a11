package exercise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_KnownMarkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		marker string
		want   Variant
	}{
		{"challenge challenge-select", Select},
		{"challenge challenge-translate", Translate},
		{"challenge challenge-assist", Assist},
		{"challenge challenge-match", Match},
		{"challenge challenge-partialReverseTranslate", PartialReverseTranslate},
		{"challenge challenge-name", Name},
		{"challenge challenge-listen", ListenOnly},
		{"challenge challenge-listenTap", ListenOnly},
		{"challenge-select", Select},
		{"  challenge   challenge-match  ", Match},
	}

	for _, tt := range tests {
		t.Run(tt.marker, func(t *testing.T) {
			got, err := Classify(tt.marker)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_AbsentMarkerIsIgnore(t *testing.T) {
	t.Parallel()

	for _, marker := range []string{"", "   "} {
		got, err := Classify(marker)
		require.NoError(t, err)
		assert.Equal(t, Ignore, got)
	}
}

func TestClassify_UnknownMarkerFails(t *testing.T) {
	t.Parallel()

	for _, marker := range []string{
		"challenge challenge-speak",
		"challenge challenge-",
		"challenge select",
		"challenge",
	} {
		_, err := Classify(marker)
		assert.ErrorIs(t, err, ErrUnknownExercise, marker)
	}
}

func TestVariant_Check(t *testing.T) {
	t.Parallel()

	for _, v := range []Variant{Ignore, Select, Translate, Assist, Match, PartialReverseTranslate} {
		assert.NoError(t, v.Check(), v.String())
		assert.True(t, v.Supported())
	}
	for _, v := range []Variant{Name, ListenOnly} {
		assert.ErrorIs(t, v.Check(), ErrUnsupportedExercise, v.String())
		assert.False(t, v.Supported())
	}
}

func TestVariant_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "partial-reverse-translate", PartialReverseTranslate.String())
	assert.Equal(t, "variant(42)", Variant(42).String())
}
