package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gople/ple"
)

// docketText is a sample court docket entry used by the demo rules.
const docketText = "ORDER, for the reasons set forth in the related Memoranda Opinions " +
	"issued in this matter on 06/30/06 and 10/10/06, and for good cause, the final " +
	"Markman definitions applicable to the disputed claim terms and phrases are as " +
	"follows: (see Order for details). Signed by Judge T. S. Ellis III on 10/10/06. " +
	"Copies mailed: yes (pmil) (Entered: 10/12/2006)"

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Rebuild the tables and run the built-in demonstration rules",
	Long: `demo drops and recreates the operator tables, builds a small set of
rules against a sample docket entry, evaluates them, and prints the
results. It exercises every operator kind and the pattern cache.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, store, err := openEngine()
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := cmd.Context()
		if err := store.DropTables(ctx); err != nil {
			return err
		}
		if err := store.CreateTables(ctx); err != nil {
			return err
		}
		return runDemo(ctx, cmd, engine)
	},
}

func runDemo(ctx context.Context, cmd *cobra.Command, engine *ple.Engine) error {
	out := cmd.OutOrStdout()

	check := func(name string, op *ple.Operator, data any, want bool) error {
		got, err := engine.Evaluate(op, data)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		status := "ok"
		if got != want {
			status = "UNEXPECTED"
		}
		fmt.Fprintf(out, "%-24s => %-5v (%s)\n", name, got, status)
		if got != want {
			return fmt.Errorf("%s: got %v, want %v", name, got, want)
		}
		return nil
	}

	alwaysTrue, err := engine.NewOperator(ctx, ple.AlwaysTrue)
	if err != nil {
		return err
	}
	alwaysFalse, err := engine.NewOperator(ctx, ple.AlwaysFalse)
	if err != nil {
		return err
	}
	if err := check("always true", alwaysTrue, nil, true); err != nil {
		return err
	}
	if err := check("always false", alwaysFalse, nil, false); err != nil {
		return err
	}

	and, err := engine.NewOperator(ctx, ple.And)
	if err != nil {
		return err
	}
	for _, p := range []*ple.Operator{alwaysTrue, alwaysFalse} {
		if err := engine.AddParameter(ctx, and, p); err != nil {
			return err
		}
	}
	if err := check("and(T, F)", and, nil, false); err != nil {
		return err
	}

	or, err := engine.NewOperator(ctx, ple.Or)
	if err != nil {
		return err
	}
	for _, p := range []*ple.Operator{alwaysTrue, alwaysFalse} {
		if err := engine.AddParameter(ctx, or, p); err != nil {
			return err
		}
	}
	if err := check("or(T, F)", or, nil, true); err != nil {
		return err
	}

	markman, err := engine.CompoundRegexRule(ctx, ple.And,
		[]string{"^ORDER", "markman"}, "markman orders")
	if err != nil {
		return err
	}
	if err := check("markman orders", markman, docketText, true); err != nil {
		return err
	}
	if err := check("markman orders (miss)", markman, "ORDER re: foobar and stuff", false); err != nil {
		return err
	}

	xor, err := engine.NewOperator(ctx, ple.Xor)
	if err != nil {
		return err
	}
	for _, p := range []*ple.Operator{alwaysFalse, alwaysTrue} {
		if err := engine.AddParameter(ctx, xor, p); err != nil {
			return err
		}
	}
	if err := check("xor(F, T)", xor, nil, true); err != nil {
		return err
	}

	nand, err := engine.NewOperator(ctx, ple.Nand)
	if err != nil {
		return err
	}
	for _, p := range []*ple.Operator{alwaysTrue, alwaysTrue} {
		if err := engine.AddParameter(ctx, nand, p); err != nil {
			return err
		}
	}
	if err := check("nand(T, T)", nand, nil, false); err != nil {
		return err
	}

	nor, err := engine.NewOperator(ctx, ple.Nor)
	if err != nil {
		return err
	}
	for _, p := range []*ple.Operator{alwaysFalse, alwaysFalse} {
		if err := engine.AddParameter(ctx, nor, p); err != nil {
			return err
		}
	}
	if err := check("nor(F, F)", nor, nil, true); err != nil {
		return err
	}

	not, err := engine.NewOperator(ctx, ple.Not)
	if err != nil {
		return err
	}
	if err := engine.AddParameter(ctx, not, alwaysTrue); err != nil {
		return err
	}
	if err := check("not(T)", not, nil, false); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, markman.Tree())
	fmt.Fprintf(out, "\npattern cache: %d compiles, %d hits\n",
		engine.Cache().Compiles(), engine.Cache().Hits())
	return nil
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
