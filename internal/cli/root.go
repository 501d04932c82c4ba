// Package cli implements the chests command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/chests/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	logLevel  string
	jsonMode  bool
}

// app carries the state of one command invocation.
type app struct {
	flags    rootFlags
	settings settings
	errOut   io.Writer
}

// NewRootCmd creates the top-level "chests" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{errOut: os.Stderr}

	root := &cobra.Command{
		Use:   "chests",
		Short: "Inspect and configure storage containers in a save",
		Long: "Chests gives every storage entity in a save (chests, storage furniture,\n" +
			"the shipping bin) one container view: list, configure, test item\n" +
			"acceptance and open them.",
		Version: Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.errOut = cmd.ErrOrStderr()
			if cmd.Name() == "version" {
				return nil
			}
			return a.loadSettings()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "save data directory (default: $(CWD)/.chests-save)")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newRenameCmd(a),
		newSetCmd(a),
		newAcceptsCmd(a),
		newOpenCmd(a),
		newAddEntityCmd(a),
		newPutItemCmd(a),
		newTakeCmd(a),
		newDeleteCmd(a),
	)
	return root
}

// Execute runs the root command and exits with the matching code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "chests:", err)
		os.Exit(exitCode(err))
	}
}

// sysError marks failures of the environment (storage, filesystem) rather
// than of the user's request.
type sysError struct {
	err error
}

func (e *sysError) Error() string { return e.err.Error() }
func (e *sysError) Unwrap() error { return e.err }

// systemErr wraps err as a system failure with a message prefix.
func systemErr(what string, err error) error {
	return &sysError{err: fmt.Errorf("%s: %w", what, err)}
}

// exitCode maps an error returned by a command to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *sysError
	if errors.As(err, &se) {
		return exitSysError
	}
	return exitUserError
}

// errNoSuchContainer is returned when an ID names no entity in the save.
func errNoSuchContainer(id string) error {
	return fmt.Errorf("%w: %s", types.ErrNotFound, id)
}
