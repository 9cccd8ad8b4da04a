package console

import (
	"fmt"
	"os"

	"github.com/TwiN/go-color"
	"github.com/camly/cli/constants"
)

type LogLevel int64

const (
	LogLevelVerbose LogLevel = iota
	LogLevelInfo
	LogLevelWarning
	LogLevelError
)

// Returns true if verbose logging is enabled.
func IsVerbose() bool {
	return os.Getenv(constants.VerboseEnvVar) == "1"
}

// Log verbose message to console.
// `V` environment variable must be set to `1` for message to be printed.
func Verbose(message string, vars ...any) {
	if IsVerbose() {
		fmt.Printf(color.Ize(color.Gray, message+"\n"), vars...)
	}
}

// Log success message to console.
func Success(message string, vars ...any) {
	fmt.Printf(color.Ize(color.Green, message+"\n"), vars...)
}

// Log info message to console.
func Info(message string, vars ...any) {
	fmt.Printf(color.Ize(color.Cyan, message+"\n"), vars...)
}

// Log warning message to console.
func Warning(message string, vars ...any) {
	fmt.Printf(color.Ize(color.Yellow, message+"\n"), vars...)
}

// Log error message to console.
func Error(message string, vars ...any) error {
	return fmt.Errorf(color.Ize(color.Red, message+"\n"), vars...)
}

// Log error message to console.
func ErrorPrint(message string, vars ...any) {
	fmt.Printf(color.Ize(color.Red, message+"\n"), vars...)
}

// Log error message to console if verbose logging is enabled.
func ErrorPrintV(message string, vars ...any) {
	if IsVerbose() {
		ErrorPrint(message, vars...)
	}
}

// Log error message to console and exit.
func Fatal(message string, vars ...any) {
	ErrorPrint(message, vars...)
	os.Exit(1)
}
