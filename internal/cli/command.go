package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/autolingo/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "autolingo",
		Short: "Language course exercise automation",
		Long: `autolingo works through English/Dutch language course lessons in a
Firefox session driven by geckodriver. It classifies every exercise,
derives the answer from cached translations and submits it.

Examples:
  autolingo --config settings.json          # Log in and solve all lessons
  autolingo --parallel 3 --headless         # Three browsers, no windows
  autolingo translate Have a good night     # Translate through the cache
  autolingo detect "Goede nacht"            # Detect the language of a text
  autolingo classify "challenge challenge-match"`,
		Args:          cobra.NoArgs,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	rootCmd.AddCommand(
		newTranslateCommand(),
		newDetectCommand(),
		newClassifyCommand(),
	)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.autolingo.json)")
	cmd.PersistentFlags().StringVar(&flags.Provider, "provider", flags.Provider, "Translation provider: openai or gemini")
	cmd.PersistentFlags().StringVar(&flags.Model, "model", "", "Translation model (default depends on provider)")
	cmd.PersistentFlags().StringVar(&flags.From, "from", flags.From, "Course source language (en or nl)")
	cmd.PersistentFlags().StringVar(&flags.To, "to", flags.To, "Course target language (en or nl)")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "Log format: text or json")

	// Local flags
	cmd.Flags().BoolVar(&flags.Headless, "headless", false, "Run Firefox without a window")
	cmd.Flags().StringVar(&flags.Geckodriver, "geckodriver", flags.Geckodriver, "Path to the geckodriver binary")
	cmd.Flags().IntVar(&flags.Port, "port", flags.Port, "Port geckodriver listens on")
	cmd.Flags().DurationVar(&flags.TypingDelay, "typing-delay", flags.TypingDelay, "Pause between typed characters")
	cmd.Flags().IntVar(&flags.Parallel, "parallel", flags.Parallel, "Number of browser sessions solving lessons in parallel")
	cmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Cancel all sessions on the first error")
	cmd.Flags().BoolVar(&flags.SkipUnsupported, "skip-unsupported", false, "Skip unsupported exercises instead of stopping")
	cmd.Flags().StringVar(&flags.JournalFile, "journal", "", "Record solved exercises in this sqlite file")
	cmd.Flags().StringVar(&flags.SeedFile, "seed", "", "Pre-seed the translation cache from file ('text = translation' per line)")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move the journal into an archive directory and exit")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI chat models for the current API key")

	// Bind flags to viper
	bindFlagsToViper(cmd)
	setDefaults(flags)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("translation.provider", cmd.PersistentFlags().Lookup("provider"))
	viper.BindPFlag("translation.model", cmd.PersistentFlags().Lookup("model"))
	viper.BindPFlag("course.from", cmd.PersistentFlags().Lookup("from"))
	viper.BindPFlag("course.to", cmd.PersistentFlags().Lookup("to"))
	viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", cmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("headless", cmd.Flags().Lookup("headless"))
	viper.BindPFlag("path_to_geckodriver", cmd.Flags().Lookup("geckodriver"))
	viper.BindPFlag("webdriver_port", cmd.Flags().Lookup("port"))
	viper.BindPFlag("typing_delay", cmd.Flags().Lookup("typing-delay"))
	viper.BindPFlag("parallel", cmd.Flags().Lookup("parallel"))
	viper.BindPFlag("fail_fast", cmd.Flags().Lookup("fail-fast"))
	viper.BindPFlag("skip_unsupported", cmd.Flags().Lookup("skip-unsupported"))
	viper.BindPFlag("journal", cmd.Flags().Lookup("journal"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".autolingo" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(filepath.Join(home, ".config", "autolingo"))
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName(".autolingo")
	}

	// Environment variables, nested keys as AUTOLINGO_TRANSLATION_MODEL
	viper.SetEnvPrefix("AUTOLINGO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
