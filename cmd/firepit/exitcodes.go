package main

// Exit codes.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing config, bad credentials)
	ExitQueryError  = 3 // Query error (malformed clause, unsupported operator)
	ExitBackendErr  = 4 // Backend call failed (permissions, missing index, connectivity)
)
