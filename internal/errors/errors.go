package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/dayrail/internal/logger"
	"github.com/julianstephens/dayrail/internal/storage"
	"github.com/julianstephens/dayrail/internal/storage/postgres"
)

// hints maps well-known failures to a next step for the user
var hints = []struct {
	target error
	hint   string
}{
	{storage.ErrNotInitialized, "run 'dayrail init' to create the ledger"},
	{postgres.ErrEmbeddedCredentials, "keep the connection string in the OS keyring with 'dayrail config set-connection'"},
}

// Hint returns a suggested next step for err, or "" when none is known
func Hint(err error) string {
	for _, h := range hints {
		if errors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Format renders err for the terminal with an "Error: " prefix and, when one
// is known, a hint on the following line.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\nHint: " + hint
	}
	return msg
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs err, prints it to stderr and exits with status 1. A nil err is a no-op.
func Fatal(err error) {
	if err != nil {
		logger.Error("Command failed", "error", err)
		fmt.Fprintln(os.Stderr, Format(err))
		os.Exit(1)
	}
}

// Fatalf is Fatal with a format string
func Fatalf(format string, args ...interface{}) {
	logger.Error("Command failed", "error", fmt.Sprintf(format, args...))
	fmt.Fprintln(os.Stderr, Formatf(format, args...))
	os.Exit(1)
}
