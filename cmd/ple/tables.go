package main

import (
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the operator tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, err := openEngine()
		if err != nil {
			return err
		}
		defer store.Close()
		return store.CreateTables(cmd.Context())
	},
}

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop the operator tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, err := openEngine()
		if err != nil {
			return err
		}
		defer store.Close()
		return store.DropTables(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(dropCmd)
}
