package page

// CSS selectors for the exercise UI
const (
	SelectorChallenge       = `div[data-test^="challenge "]`
	SelectorChallengeHeader = `[data-test="challenge-header"]`
	SelectorHintSentence    = `[data-test="hint-sentence"]`
	SelectorChoice          = `[data-test="challenge-choice"]`
	SelectorMatchCard       = `[data-test$="challenge-tap-token"]`
	SelectorTextInput       = `[data-test="challenge-translate-input"]`
	SelectorPartialInput    = `[data-test="challenge-partialReverseTranslate-input"]`
	SelectorPartialPrefix   = `[data-test="challenge-partialReverseTranslate-prompt"]`
	SelectorCheckButton     = `[data-test="player-next"]`
	SelectorSkipButton      = `[data-test="player-skip"]`
	SelectorIncorrect       = `[data-test="blame blame-incorrect"]`
	SelectorReference       = `[data-test="blame blame-incorrect"] h2 + div`

	SelectorHaveAccount = `[data-test="have-account"]`
	SelectorEmail       = `input[data-test="email-input"]`
	SelectorPassword    = `input[data-test="password-input"]`
	SelectorLogin       = `[data-test="register-button"]`
	SelectorLesson      = `[data-test^="skill-path-level"]`
	SelectorStartLesson = `a[data-test="start-button"]`
)

// Site locations
const (
	HomeURL   = "https://www.duolingo.com/"
	LearnURL  = "https://www.duolingo.com/learn"
	LessonURL = "https://www.duolingo.com/lesson"
)
