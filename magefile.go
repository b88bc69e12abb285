//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "translatebar"

// Default target to run when none is specified
var Default = Build

// Build compiles the translatebar binary
func Build() error {
	fmt.Println("Building", binary)
	return sh.RunV("go", "build", "-o", binary, "./cmd/translatebar")
}

// Install installs translatebar into GOPATH/bin
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", "./cmd/translatebar")
}

// Test runs the unit tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Race runs the unit tests with the race detector
func Race() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Integration runs the tests that call the real translation services. They
// skip themselves unless OPENAI_API_KEY or GEMINI_API_KEY is set.
func Integration() error {
	if os.Getenv("OPENAI_API_KEY") == "" && os.Getenv("GEMINI_API_KEY") == "" {
		fmt.Println("No API key set, integration tests will be skipped")
	}
	return sh.RunV("go", "test", "-run", "Integration", "./internal/...")
}

// Clean removes the built binary
func Clean() error {
	return sh.Rm(binary)
}
