// Package process runs one-shot shell commands for the name resolver.
//
// A command line is handed to the platform shell (sh -c, or cmd /C on
// Windows) in a chosen working directory. Its stdout, stderr and exit status
// are captured into a Result. Nothing is supervised after exit: each Run
// spawns, waits and forgets.
//
// Start runs a command on its own goroutine and hands the Result to a
// continuation, so callers with an event loop can post the completion back
// onto it without blocking.
package process
