// Package cli implements the logicmin command tree.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type app struct {
	opts  Options
	log   *zap.Logger
	cache *functionCache
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(os.LookupEnv)
}

func newRootCmd(lookup func(string) (string, bool)) *cobra.Command {
	a := &app{
		opts:  defaultOptions(lookup),
		log:   zap.NewNop(),
		cache: newFunctionCache(cacheSize),
	}
	rootCmd := &cobra.Command{
		Use:   "logicmin",
		Short: "logicmin minimizes Boolean functions",
		Long: `Builds truth tables of logical expressions and minimizes them to
disjunctive or conjunctive normal form by the Quine-McCluskey calculus
method, its chart variant, or a Karnaugh map.

Operators, loosest binding first: ~ (equivalence), -> (implication),
| or # (or), & (and), ! (not). Constants 0 and 1.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := a.opts.Logger()
			if err != nil {
				return err
			}
			a.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}
	a.opts.bindGlobal(rootCmd.PersistentFlags())

	// add sub-commands
	rootCmd.AddCommand(a.newTableCommand())
	rootCmd.AddCommand(a.newMinimizeCommand())
	rootCmd.AddCommand(a.newEquivCommand())
	rootCmd.AddCommand(a.newPLACommand())
	rootCmd.AddCommand(a.newMenuCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
