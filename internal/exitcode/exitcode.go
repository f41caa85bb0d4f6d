// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown command, unresolvable task reference).
	UserError = 1

	// AuthError indicates missing or invalid Google credentials.
	AuthError = 2

	// BackendError indicates storage that cannot be opened or a remote API failure.
	BackendError = 3
)
