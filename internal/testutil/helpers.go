package testutil

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/snonux/translatebar/internal/language"
)

// Languages used across tests
var (
	English  = language.Language{ShortName: "en", FullName: "English"}
	Russian  = language.Language{ShortName: "ru", FullName: "Russian"}
	German   = language.Language{ShortName: "de", FullName: "German"}
	French   = language.Language{ShortName: "fr", FullName: "French"}
	Spanish  = language.Language{ShortName: "es", FullName: "Spanish"}
	Italian  = language.Language{ShortName: "it", FullName: "Italian"}
	Japanese = language.Language{ShortName: "ja", FullName: "Japanese"}
)

// Catalog returns a small catalog containing every test language
func Catalog() language.Preferences {
	langs := []language.Language{English, French, German, Italian, Japanese, Russian, Spanish}
	return language.Preferences{
		Languages: langs,
		Directions: map[language.Language][]language.Language{
			English: {Russian, German, French},
			Russian: {English, German},
			German:  {English, Russian},
		},
	}
}

// WaitFor polls cond until it holds or the timeout expires
func WaitFor(t *testing.T, timeout time.Duration, what string, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	if !cond() {
		t.Fatalf("Timed out after %v waiting for %s", timeout, what)
	}
}

// Never checks that cond stays false for the whole duration
func Never(t *testing.T, duration time.Duration, what string, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(duration)
	for time.Now().Before(deadline) {
		if cond() {
			t.Fatalf("Unexpected: %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// ReadFile returns the content of path
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// CaptureOutput captures stdout/stderr during test execution
func CaptureOutput(t *testing.T, f func()) (stdout, stderr string) {
	t.Helper()

	// Save current stdout/stderr
	oldStdout := os.Stdout
	oldStderr := os.Stderr

	// Create pipes
	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()

	// Redirect stdout/stderr
	os.Stdout = wOut
	os.Stderr = wErr

	outC := make(chan string)
	errC := make(chan string)
	go func() {
		b, _ := io.ReadAll(rOut)
		outC <- string(b)
	}()
	go func() {
		b, _ := io.ReadAll(rErr)
		errC <- string(b)
	}()

	// Run function
	f()

	// Close writers and restore
	wOut.Close()
	wErr.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	return <-outC, <-errC
}
