package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "golox",
	Short: "A tree-walking interpreter for Lox",
	Long: `golox runs programs written in Lox, the small dynamically-typed
scripting language from Crafting Interpreters: closures, single-inheritance
classes and C-like control flow, evaluated directly off the syntax tree
after a static resolution pass.

Run a script with 'golox run <file>', evaluate an inline expression with
'golox run -e', or start an interactive session with 'golox repl'.`,
	Version: Version,
	// Bare `golox` starts the REPL and `golox <file>` runs the file, the
	// same as `golox repl` and `golox run <file>`.
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runRepl(cmd, args)
		}
		return runScript(cmd, args)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
