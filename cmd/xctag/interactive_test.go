package main

import (
	"strings"
	"testing"

	"github.com/jflowers/xctag/internal/resolve"
	"github.com/jflowers/xctag/internal/status"
	"github.com/jflowers/xctag/internal/swiftscan"
)

// TestRenderResultsContent_EmptyResults verifies that an empty slice
// produces a header with all-zero counts.
func TestRenderResultsContent_EmptyResults(t *testing.T) {
	output := renderResultsContent(nil)

	if !strings.Contains(output, "0 file(s)") {
		t.Errorf("expected output to contain '0 file(s)', got:\n%s", output)
	}
}

// TestRenderResultsContent_WithResults verifies that a result row
// carries the file path, classification, strategy, and statuses.
func TestRenderResultsContent_WithResults(t *testing.T) {
	results := []resolve.Result{
		{
			File: swiftscan.FileInfo{
				Path:   "AppTests/LoginTests.swift",
				Suites: []string{"LoginSuite"},
			},
			Class:    resolve.Failed,
			Strategy: resolve.StrategySuite,
			Statuses: []status.Status{status.Failure},
		},
	}

	output := renderResultsContent(results)

	for _, want := range []string{
		"1 file(s)", "1 failed",
		"AppTests/LoginTests.swift", "Failed", "suite", "Failure",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}
