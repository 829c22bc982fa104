package main

import (
	"fmt"

	"github.com/Programator2/medusa-policy-mining/internal/config"
	"github.com/Programator2/medusa-policy-mining/internal/logging"
	"github.com/spf13/cobra"
)

var (
	mineUsers      []string
	mineGroups     []string
	mineSubjects   []string
	mineObjects    []string
	mineManifest   string
	mineFSSnapshot string
	mineFHSRules   string
	mineReference  string
	mineConfigPath string
)

var mineCmd = &cobra.Command{
	Use:   "mine CASE SERVICE1_LOGS... [-- SERVICE2_LOGS...]",
	Short: "Run the full mining pipeline for one case",
	Long: `mine parses one or more audit logs into a trie, generalizes it
with the configured algorithms, and writes a policy (and, with
--reference, an evaluation) under the results directory.

A second group of log files after "--" is treated as an independent run
of the same service and merged with the multi-run generalizer (C8)
instead of simply being appended to the first run's trie.

--manifest points at a YAML file describing one or more cases and
overrides CASE/SERVICE*_LOGS entirely.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if mineConfigPath != "" {
			loaded, err := config.Load(mineConfigPath)
			if err != nil {
				return err
			}
			cfg = *loaded
		}
		if cfg.AppLogPath != "" || cfg.DecisionLog != "" {
			if err := logging.Initialize(cfg.AppLogPath, cfg.DecisionLog, logging.LogLevelInfo, cfg.AppLogMaxSize, 0); err != nil {
				return fmt.Errorf("mine: initializing logging: %w", err)
			}
		}

		if mineManifest != "" {
			manifest, err := config.LoadManifest(mineManifest)
			if err != nil {
				return err
			}
			for _, mc := range manifest.Cases {
				spec := caseSpec{
					Name:          mc.Name,
					Service:       mc.Service,
					LogGroups:     [][]string{mc.LogFiles},
					FSSnapshot:    mc.FSSnapshot,
					FHSRulesFile:  mc.FHSRulesFile,
					Users:         mc.Users,
					Groups:        mc.Groups,
					Subjects:      mc.Subjects,
					Objects:       mc.Objects,
					ReferenceFile: mc.ReferenceFile,
				}
				if err := runCase(&cfg, spec); err != nil {
					return fmt.Errorf("mine: case %s: %w", mc.Name, err)
				}
			}
			return nil
		}

		if len(args) < 2 {
			return fmt.Errorf("mine requires CASE and at least one log file (or --manifest)")
		}
		name := args[0]
		rest := args[1:]

		var groups [][]string
		if dash := cmd.ArgsLenAtDash(); dash > 1 {
			idx := dash - 1
			groups = [][]string{rest[:idx], rest[idx:]}
		} else {
			groups = [][]string{rest}
		}

		users, err := parseIntList(mineUsers)
		if err != nil {
			return err
		}
		groupIDs, err := parseIntList(mineGroups)
		if err != nil {
			return err
		}

		spec := caseSpec{
			Name:          name,
			Service:       name,
			LogGroups:     groups,
			FSSnapshot:    mineFSSnapshot,
			FHSRulesFile:  mineFHSRules,
			Users:         users,
			Groups:        groupIDs,
			Subjects:      mineSubjects,
			Objects:       mineObjects,
			ReferenceFile: mineReference,
		}
		return runCase(&cfg, spec)
	},
}

func init() {
	mineCmd.Flags().StringArrayVar(&mineUsers, "user", nil, "uid to treat as an owner for directory generalization (repeatable)")
	mineCmd.Flags().StringArrayVar(&mineGroups, "group", nil, "gid to treat as an owner for directory generalization (repeatable)")
	mineCmd.Flags().StringArrayVar(&mineSubjects, "subject", nil, "SELinux subject context to record for this case (repeatable)")
	mineCmd.Flags().StringArrayVar(&mineObjects, "object", nil, "SELinux object context to record for this case (repeatable)")
	mineCmd.Flags().StringVar(&mineManifest, "manifest", "", "YAML case manifest; overrides positional CASE/logs")
	mineCmd.Flags().StringVar(&mineFSSnapshot, "fs-snapshot", "", "filesystem snapshot root for the FS-aware generalizers")
	mineCmd.Flags().StringVar(&mineFHSRules, "fhs-rules-file", "", "FHS rules file to apply before generalization")
	mineCmd.Flags().StringVar(&mineReference, "reference", "", "reference policy JSON to evaluate the mined trie against")
	mineCmd.Flags().StringVar(&mineConfigPath, "config", "", "JSON config file (generalization thresholds, logging, results dir)")
}
