package main

// Exit codes shared by all bibwire commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing config, invalid paths)
	ExitDataError   = 3 // Data error (malformed corpus, corpus load failure)
	ExitUnresolved  = 4 // Strict mode: unresolved or ambiguous citations remain
)
