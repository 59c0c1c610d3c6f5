package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess   = 0 // Run finished with a usable release
	ExitRunFailed = 1 // Pipeline ran but could not produce a release
	ExitError     = 2 // Configuration or runtime error
)

// RunFailureError indicates that the pipeline executed, but no usable
// release came out of it (every writer failed, or synthesis degraded).
type RunFailureError struct {
	Message string
}

func (e *RunFailureError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		// Check error type to determine exit code
		var runErr *RunFailureError
		if errors.As(err, &runErr) {
			os.Exit(ExitRunFailed)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
