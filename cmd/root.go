// Package cmd implements the unitconv command line interface.
package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lone-faerie/unitconv"
	"github.com/lone-faerie/unitconv/internal/build"
)

// RootCommand is the root [cobra.Command]. With three positional arguments
// it performs a single conversion and prints the result; with none it
// starts the server.
var RootCommand = &cobra.Command{
	Use:   "unitconv [value] [from_unit] [to_unit]",
	Short: "Convert values between units of measurement",
	Long: `Convert values between units of measurement (length, mass, force, torque, density, temperature).

With three positional arguments, unitconv performs a single conversion and prints:

	<value> <from_unit> = <result> <to_unit>

If the unit pair is not supported, the error message is printed instead and the exit code is still 0. Unit codes are case-insensitive; only pairs explicitly present in the conversion tables are convertible, with no chaining through intermediate units.

With no arguments, unitconv starts the HTTP server (see "unitconv serve --help").`,
	Example: `  unitconv 100 m ft
  unitconv 37 C F
  unitconv 1 ly m
  unitconv`,
	Version: build.Version(),
	Args:    cobra.MaximumNArgs(3),
	RunE:    run,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		for _, f := range cleanup {
			f()
		}
	},
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},

	DisableFlagsInUseLine: true,
}

func init() {
	RootCommand.AddGroup(
		&cobra.Group{ID: "commands", Title: "Commands:"},
	)

	RootCommand.PersistentFlags().StringSliceVarP(&ConfigPath, "config", "c", nil, "Path(s) to config file")
	RootCommand.PersistentFlags().StringVarP(&LogLevel, "log", "l", "", "Log level")

	RootCommand.MarkPersistentFlagFilename("config", "yaml", "yml")

	RootCommand.SetHelpTemplate(RootCommand.HelpTemplate() + "\n" + fullDocsFooter + "\n")
}

// Execute runs the root command.
func Execute() error {
	return RootCommand.Execute()
}

func run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return runServe(cmd, args)
	}

	if len(args) != 3 {
		return &ExitError{fmt.Errorf("expected <value> <from_unit> <to_unit>, got %d argument(s)", len(args)), 2}
	}

	value, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return &ExitError{fmt.Errorf("invalid value %q", args[0]), 2}
	}

	result, err := unitconv.Convert(value, args[1], args[2])
	if err != nil {
		// An unsupported pair prints its message to stdout and exits
		// cleanly.
		fmt.Fprintln(cmd.OutOrStdout(), err)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%v %s = %v %s\n", value, args[1], result, args[2])

	return nil
}
