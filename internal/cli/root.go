// Package cli wires the toon encode/decode operations into a cobra-based
// command line front end.
package cli

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:           "toon",
		Short:         "toon",
		Long:          "Encode and decode Token-Oriented Object Notation (TOON) documents.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	debug bool
)

// exitError attaches a process exit code to an error returned from a
// command's RunE, per the 0/1/2 success/user-error/internal-error
// convention.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error {
	return &exitError{code: 1, err: err}
}

func internalError(err error) error {
	return &exitError{code: 2, err: err}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log at debug level and dump intermediate values")
	rootCmd.AddCommand(encodeCmd, decodeCmd)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	logger := logrus.StandardLogger()
	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			logger.Error(ee.err)
			return ee.code
		}
		logger.Error(err)
		return 1
	}
	return 0
}
