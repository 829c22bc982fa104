package main

import (
	"github.com/spf13/cobra"
)

var version = "dev" // set during build

var rootCmd = &cobra.Command{
	Use:   "medusa-policy-miner",
	Short: "Mine a MAC policy from audit-log evidence",
	Long: `medusa-policy-miner builds a filesystem access trie from audit-log
evidence, generalizes concrete accesses, merges multiple runs, and
evaluates the result against a reference policy.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(mineCmd)
	rootCmd.AddCommand(showTreeCmd)
	rootCmd.AddCommand(versionCmd)
}
