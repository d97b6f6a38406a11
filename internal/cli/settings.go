package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"codeberg.org/snonux/autolingo/internal/language"
)

// Settings is the resolved session configuration
type Settings struct {
	Headless          bool                `mapstructure:"headless"`
	Email             string              `mapstructure:"email"`
	Password          string              `mapstructure:"password"`
	PathToGeckodriver string              `mapstructure:"path_to_geckodriver"`
	WebDriverPort     int                 `mapstructure:"webdriver_port"`
	Translation       TranslationSettings `mapstructure:"translation"`
	Course            CourseSettings      `mapstructure:"course"`
	TypingDelay       time.Duration       `mapstructure:"typing_delay"`
	Log               LogSettings         `mapstructure:"log"`
	Journal           string              `mapstructure:"journal"`
	Parallel          int                 `mapstructure:"parallel"`
	FailFast          bool                `mapstructure:"fail_fast"`
	SkipUnsupported   bool                `mapstructure:"skip_unsupported"`
}

// TranslationSettings selects the translation backend
type TranslationSettings struct {
	Provider  string `mapstructure:"provider"`
	OpenAIKey string `mapstructure:"openai_key"`
	GeminiKey string `mapstructure:"gemini_key"`
	Model     string `mapstructure:"model"`
}

// CourseSettings is the fixed direction of the course
type CourseSettings struct {
	From string `mapstructure:"from"`
	To   string `mapstructure:"to"`
}

// LogSettings configures the structured logger
type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// setDefaults registers every settings key so AUTOLINGO_* environment
// variables reach Unmarshal even without a config file
func setDefaults(flags *Flags) {
	viper.SetDefault("headless", false)
	viper.SetDefault("email", "")
	viper.SetDefault("password", "")
	viper.SetDefault("path_to_geckodriver", flags.Geckodriver)
	viper.SetDefault("webdriver_port", flags.Port)
	viper.SetDefault("translation.provider", flags.Provider)
	viper.SetDefault("translation.openai_key", "")
	viper.SetDefault("translation.gemini_key", "")
	viper.SetDefault("translation.model", "")
	viper.SetDefault("course.from", flags.From)
	viper.SetDefault("course.to", flags.To)
	viper.SetDefault("typing_delay", flags.TypingDelay)
	viper.SetDefault("log.level", flags.LogLevel)
	viper.SetDefault("log.format", flags.LogFormat)
	viper.SetDefault("journal", "")
	viper.SetDefault("parallel", flags.Parallel)
	viper.SetDefault("fail_fast", false)
	viper.SetDefault("skip_unsupported", false)
}

// LoadSettings resolves the settings from flags, config file and environment
func LoadSettings() (*Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	s.Translation.OpenAIKey = GetOpenAIKey()
	s.Translation.GeminiKey = GetGeminiKey()

	if s.Parallel < 1 {
		return nil, fmt.Errorf("parallel must be at least 1, got %d", s.Parallel)
	}
	if s.TypingDelay < 0 {
		return nil, fmt.Errorf("typing_delay must not be negative, got %s", s.TypingDelay)
	}
	if _, _, err := s.Direction(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Direction parses the course languages
func (s *Settings) Direction() (from, to language.Language, err error) {
	if from, err = language.Parse(s.Course.From); err != nil {
		return "", "", fmt.Errorf("course.from: %w", err)
	}
	if to, err = language.Parse(s.Course.To); err != nil {
		return "", "", fmt.Errorf("course.to: %w", err)
	}
	if from == to {
		return "", "", fmt.Errorf("course.from and course.to are both %s", from.Name())
	}
	return from, to, nil
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("translation.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("translation.gemini_key")
}
