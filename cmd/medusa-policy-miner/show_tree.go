package main

import (
	"github.com/Programator2/medusa-policy-mining/internal/trie"
	"github.com/spf13/cobra"
)

var showTreeCmd = &cobra.Command{
	Use:   "show-tree LOGFILE...",
	Short: "Parse audit logs and print the resulting trie",
	Long: `show-tree loads one or more audit logs into a trie, with no
generalization applied, and prints it as an ASCII tree, the Go analogue
of mpm/tree.py's show/print_backend.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t := trie.New()
		for _, logFile := range args {
			entries, err := parseAuditLog(logFile)
			if err != nil {
				return err
			}
			logEntries := make([]trie.LogEntry, 0, len(entries))
			for _, e := range entries {
				logEntries = append(logEntries, trie.LogEntry{
					Path: e.Path, Permission: e.Permission, UID: e.UID, Domain: e.Domain, Comm: e.Proctitle,
				})
			}
			t.LoadLog(logEntries)
		}
		t.Show(cmd.OutOrStdout())
		return nil
	},
}
