package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/golox/internal/replline"
)

const banner = `           _
  __ _  __| |__  __
 / _' |/ _' |\ \/ /
| (_| | (_| | >  <
 \__, |\__,_|/_/\_\
 |___/  golox`

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Lox session",
	Long:  `Start a read-eval-print loop: variables, functions and classes declared on one line stay visible on the next.`,
	RunE:  runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(_ *cobra.Command, _ []string) error {
	it := newInterpreter(os.Stdout)
	r := replline.New(banner, Version, "------------------------------------", "golox> ", compile)
	return r.Start(os.Stdout, it)
}
