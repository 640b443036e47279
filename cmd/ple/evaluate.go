package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var ruleName string

var evalCmd = &cobra.Command{
	Use:   "eval [file]",
	Short: "Evaluate a stored rule against a file or stdin",
	Long: `eval loads the rule with the given name from the database and
evaluates it against the contents of the file argument, or stdin if no
file is given. Prints "true" or "false"; exits non-zero on a false
result so the command composes in shell pipelines.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, store, err := openEngine()
		if err != nil {
			return err
		}
		defer store.Close()

		var data []byte
		if len(args) == 1 {
			data, err = os.ReadFile(args[0])
		} else {
			data, err = io.ReadAll(cmd.InOrStdin())
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		rule, err := engine.OperatorNamed(cmd.Context(), ruleName)
		if err != nil {
			return err
		}

		result, err := engine.Evaluate(rule, string(data))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result)
		if !result {
			os.Exit(1)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a stored rule tree",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, store, err := openEngine()
		if err != nil {
			return err
		}
		defer store.Close()

		rule, err := engine.OperatorNamed(cmd.Context(), ruleName)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), rule.Dump())
		return nil
	},
}

func init() {
	evalCmd.Flags().StringVarP(&ruleName, "rule", "r", "", "name of the rule to evaluate")
	_ = evalCmd.MarkFlagRequired("rule")
	showCmd.Flags().StringVarP(&ruleName, "rule", "r", "", "name of the rule to show")
	_ = showCmd.MarkFlagRequired("rule")
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(showCmd)
}
