package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess = 0 // Command completed
	ExitInvalid = 1 // Input was read but failed validation
	ExitError   = 2 // Configuration or runtime error
)

// ValidationError indicates that the input was readable but did not pass
// validation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ExitInvalid
	}
	return ExitError
}
