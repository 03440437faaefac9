// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	Success = 0

	// UserError covers bad arguments, invalid task fields and unknown ids.
	UserError = 1

	// StorageError indicates the config file or database could not be used.
	StorageError = 2
)
