package testutil

import (
	"os"
	"testing"
)

// RequireTestEnvironment fails the test unless GO_ENV is "test". It guards
// suites that open databases against accidentally running with a development
// configuration.
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	if env := os.Getenv("GO_ENV"); env != "test" {
		t.Fatalf("Tests must run with GO_ENV=test, got %q", env)
	}
}

// MustSetTestEnvironment sets GO_ENV to test. Use it in suite setup so the
// config loader never picks up development .env files.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	if err := os.Setenv("GO_ENV", "test"); err != nil {
		t.Fatalf("Failed to set GO_ENV=test: %v", err)
	}
}
