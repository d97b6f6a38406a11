// Package cli provides command-line interface setup and configuration
// for the autolingo application. It handles flag parsing, command
// creation, the translate/detect/classify subcommands and settings
// loading using cobra and viper.
package cli
