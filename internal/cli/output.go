package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/daybook/internal/errmodel"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Operation failure (fetch failed, parse failed, etc.)
	ExitCommandError = 2 // Command error (bad arguments, invalid paths, etc.)
)

// Error codes reported in JSON output.
const (
	ErrCodeValidation = "validation"
	ErrCodeParse      = "parse"
	ErrCodeFetch      = "fetch"
	ErrCodeIO         = "io"
	ErrCodeGeneric    = "error"
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success outputs a successful result in the configured format.
// In text mode, text is printed; in JSON mode, data is wrapped in the
// standard response envelope.
func (f *OutputFormatter) Success(text string, data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}
	_, err := fmt.Fprintln(f.Writer, text)
	return err
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message},
		})
	}
	_, err := fmt.Fprintln(f.ErrWriter, "Error:", message)
	return err
}

// VerboseLog writes a diagnostic line to the error writer when verbose
// output is enabled. Diagnostics go to stderr to avoid corrupting JSON.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if f.Verbose {
		fmt.Fprintf(f.ErrWriter, format+"\n", args...)
	}
}

// fail reports err through the formatter and converts it into an ExitError
// whose code reflects the error kind: validation problems are command
// errors, everything else is an operation failure.
func fail(f *OutputFormatter, err error) error {
	code := ErrCodeGeneric
	exit := ExitFailure
	switch {
	case errmodel.IsValidation(err):
		code = ErrCodeValidation
		exit = ExitCommandError
	case errmodel.IsParse(err):
		code = ErrCodeParse
	case errmodel.IsFetch(err):
		code = ErrCodeFetch
	case errmodel.IsPersistence(err):
		code = ErrCodeIO
	}
	_ = f.Error(code, err.Error())
	return WrapExitError(exit, "command failed", err)
}
