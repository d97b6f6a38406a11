package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile         string
	Headless        bool
	Geckodriver     string
	Port            int
	Parallel        int
	FailFast        bool
	SkipUnsupported bool
	JournalFile     string
	SeedFile        string
	ListModels      bool
	Archive         bool

	// Translation flags
	Provider    string
	Model       string
	From        string
	To          string
	TypingDelay time.Duration

	// Logging flags
	LogLevel  string
	LogFormat string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Geckodriver: "geckodriver",
		Port:        4444,
		Parallel:    1,
		Provider:    "openai",
		From:        "en",
		To:          "nl",
		TypingDelay: 40 * time.Millisecond,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}
