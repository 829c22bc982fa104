package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Programator2/medusa-policy-mining/internal/auditlog"
	"github.com/Programator2/medusa-policy-mining/internal/config"
	"github.com/Programator2/medusa-policy-mining/internal/domain"
	"github.com/Programator2/medusa-policy-mining/internal/evaluator"
	"github.com/Programator2/medusa-policy-mining/internal/fhs"
	"github.com/Programator2/medusa-policy-mining/internal/fsdb"
	"github.com/Programator2/medusa-policy-mining/internal/generalize"
	"github.com/Programator2/medusa-policy-mining/internal/logging"
	"github.com/Programator2/medusa-policy-mining/internal/multirun"
	"github.com/Programator2/medusa-policy-mining/internal/policyemit"
	"github.com/Programator2/medusa-policy-mining/internal/seccontext"
	"github.com/Programator2/medusa-policy-mining/internal/trie"
	"github.com/spf13/afero"
)

// caseSpec is one mining run, built either from a YAML manifest entry
// or from the mine command's positional args and flags.
type caseSpec struct {
	Name          string
	Service       string
	LogGroups     [][]string
	FSSnapshot    string
	FHSRulesFile  string
	Users, Groups []int
	Subjects      []string
	Objects       []string
	ReferenceFile string
}

// runCase builds a trie for every log group, applies the generalizers
// the config enables, merges multiple runs, and emits a policy (and, if
// a reference file is given, an evaluation) under cfg.ResultsDir/Name.
func runCase(cfg *config.Config, spec caseSpec) error {
	genCfg := cfg.Generalize()

	var db fsdb.DB
	if spec.FSSnapshot != "" {
		d, err := fsdb.New(afero.NewOsFs(), spec.FSSnapshot, fsdb.OSOwnerLookup)
		if err != nil {
			return fmt.Errorf("mine: loading fs snapshot %s: %w", spec.FSSnapshot, err)
		}
		db = d
	}

	var runs []*trie.Trie
	var domains []domain.Domain
	seenDomain := make(map[string]bool)

	for _, group := range spec.LogGroups {
		t := trie.New()
		var runDomains []domain.Domain

		for _, logFile := range group {
			entries, err := parseAuditLog(logFile)
			if err != nil {
				return err
			}
			logEntries := make([]trie.LogEntry, 0, len(entries))
			for _, e := range entries {
				logEntries = append(logEntries, trie.LogEntry{
					Path: e.Path, Permission: e.Permission, UID: e.UID, Domain: e.Domain, Comm: e.Proctitle,
				})
				key := e.Domain.Key()
				if !seenDomain[key] {
					seenDomain[key] = true
					domains = append(domains, e.Domain)
					runDomains = append(runDomains, e.Domain)
				}
			}
			t.LoadLog(logEntries)
		}

		if spec.FHSRulesFile != "" {
			rules, err := fhs.NewFileSource(spec.FHSRulesFile).Load()
			if err != nil {
				return fmt.Errorf("mine: loading FHS rules: %w", err)
			}
			fhs.Apply(t, rules, runDomains)
		}

		if err := generalize.Threshold(t, genCfg.Threshold); err != nil {
			return fmt.Errorf("mine: threshold generalization: %w", err)
		}

		if db != nil {
			if err := generalize.ThresholdFS(t, db, genCfg.FSThreshold); err != nil {
				return fmt.Errorf("mine: FS-threshold generalization: %w", err)
			}
			if err := generalize.ByOwner(t, db, genCfg.OwnerStrategies); err != nil {
				return fmt.Errorf("mine: owner generalization: %w", err)
			}
			if err := generalize.Nonexistent(t, db); err != nil {
				return fmt.Errorf("mine: nonexistent generalization: %w", err)
			}
			if len(spec.Users) > 0 || len(spec.Groups) > 0 {
				if err := generalize.ByOwnerDirectory(t, db, spec.Users, spec.Groups, runDomains); err != nil {
					return fmt.Errorf("mine: owner-directory generalization: %w", err)
				}
			}
		}

		t.PromoteGeneralized()
		runs = append(runs, t)
	}

	merged := runs[0]
	if len(runs) > 1 {
		var err error
		merged, err = multirun.Generalize(genCfg.MultipleRunsStrategy, runs...)
		if err != nil {
			return fmt.Errorf("mine: multi-run generalization: %w", err)
		}
	}

	subjects, objects := spec.Subjects, spec.Objects
	if len(subjects) == 0 {
		if ctxs, err := seccontext.BuiltinSubjects().ContextsFor(spec.Service); err == nil {
			subjects = ctxs
		}
	}
	if len(objects) == 0 {
		if ctxs, err := seccontext.BuiltinObjects().ContextsFor(spec.Service); err == nil {
			objects = ctxs
		}
	}

	if logging.App != nil {
		logging.App.Info("mined trie", "case", spec.Name, "service", spec.Service,
			"nodes", len(merged.AllNodes()), "subjects", len(subjects), "objects", len(objects))
	}

	resultsDir := filepath.Join(cfg.ResultsDir, spec.Name)
	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		return fmt.Errorf("mine: creating results dir: %w", err)
	}

	policyFile, err := os.Create(filepath.Join(resultsDir, "policy.txt"))
	if err != nil {
		return fmt.Errorf("mine: creating policy output: %w", err)
	}
	defer policyFile.Close()
	if err := policyemit.Emit(policyFile, merged, domains, genCfg.GeneralizeProc); err != nil {
		return fmt.Errorf("mine: emitting policy: %w", err)
	}

	if spec.ReferenceFile != "" {
		cases, err := evaluator.LoadCases(spec.ReferenceFile)
		if err != nil {
			return err
		}
		confusion, err := evaluator.Evaluate(merged, domains, cases)
		if err != nil {
			return fmt.Errorf("mine: evaluating: %w", err)
		}
		if err := confusion.Export(filepath.Join(resultsDir, "evaluation")); err != nil {
			return fmt.Errorf("mine: exporting evaluation: %w", err)
		}
	}

	return nil
}

func parseAuditLog(path string) ([]auditlog.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mine: opening %s: %w", path, err)
	}
	defer f.Close()
	entries, err := auditlog.NewLineParser().Parse(f)
	if err != nil {
		return nil, fmt.Errorf("mine: parsing %s: %w", path, err)
	}
	return entries, nil
}

func parseIntList(ss []string) ([]int, error) {
	out := make([]int, 0, len(ss))
	for _, s := range ss {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("mine: %q is not an integer id: %w", s, err)
		}
		out = append(out, n)
	}
	return out, nil
}
