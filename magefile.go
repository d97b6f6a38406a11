//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "autolingo"

var Default = Build

// Build compiles the autolingo binary
func Build() error {
	mg.Deps(Vet)
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	ldflags := fmt.Sprintf("-X codeberg.org/snonux/autolingo/internal.Version=%s", version)
	return sh.RunV("go", "build", "-ldflags", ldflags, "-o", binary, "./cmd/autolingo")
}

// Test runs the unit tests with the race detector
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install installs the binary into GOPATH/bin
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", "./cmd/autolingo")
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm(binary)
}
