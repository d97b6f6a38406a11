package cli

import (
	"reflect"
	"testing"
	"time"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	// Test default values
	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Geckodriver", flags.Geckodriver, "geckodriver"},
		{"Port", flags.Port, 4444},
		{"Parallel", flags.Parallel, 1},
		{"Provider", flags.Provider, "openai"},
		{"From", flags.From, "en"},
		{"To", flags.To, "nl"},
		{"TypingDelay", flags.TypingDelay, 40 * time.Millisecond},
		{"LogLevel", flags.LogLevel, "info"},
		{"LogFormat", flags.LogFormat, "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	// Test boolean defaults (should be false)
	boolTests := []struct {
		name  string
		value bool
	}{
		{"Headless", flags.Headless},
		{"FailFast", flags.FailFast},
		{"SkipUnsupported", flags.SkipUnsupported},
		{"ListModels", flags.ListModels},
		{"Archive", flags.Archive},
	}

	for _, tt := range boolTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != false {
				t.Errorf("%s = %v, want false", tt.name, tt.value)
			}
		})
	}

	// Test string defaults (should be empty)
	stringTests := []struct {
		name  string
		value string
	}{
		{"CfgFile", flags.CfgFile},
		{"JournalFile", flags.JournalFile},
		{"SeedFile", flags.SeedFile},
		{"Model", flags.Model},
	}

	for _, tt := range stringTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Errorf("%s = %v, want empty string", tt.name, tt.value)
			}
		})
	}
}
