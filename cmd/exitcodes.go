package cmd

// Exit codes returned by the kiln CLI. Distinct codes per failure
// class so callers can script on them symbolically rather than parsing
// diagnostics.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates a build failure (compiler error, compiler
	// not found, program failure under `kiln run`).
	ExitFailure = 1

	// ExitConfigError indicates a descriptor or flag validation failure.
	ExitConfigError = 2

	// ExitEnvError indicates that no virtual environment is active.
	ExitEnvError = 3
)
