// Package xctag provides public constants for external tools
// integrating with the xctag CLI.
package xctag

// Exit codes returned by the xctag CLI. Each empty-result condition
// gets its own code so scripts can tell them apart.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure (unreadable bundle,
	// bad flags, tag write errors, etc.).
	ExitFailure = 1

	// ExitNoTestRefs indicates the result bundle carried no test
	// references at all.
	ExitNoTestRefs = 2

	// ExitNoStatusNodes indicates a test plan was found but no test
	// nodes carried a status.
	ExitNoStatusNodes = 3

	// ExitNoTestFiles indicates no Swift test files were discovered
	// under the scan root.
	ExitNoTestFiles = 4
)
