// Package config loads the JSON miner configuration and the YAML case
// manifest, grounded on the teacher's cmd/vkftpd/config.go
// (encoding/json, paths resolved relative to the config file,
// zero-value defaults filled in after unmarshal).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Programator2/medusa-policy-mining/internal/generalize"
)

// Config holds the generalization knobs and ambient paths for a mining
// run (§6 unchanged from spec.md: GENERALIZE_THRESHOLD,
// GENERALIZE_FS_THRESHOLD, GENERALIZE_PROC,
// OWNER_GENERALIZATION_STRATEGY, MULTIPLE_RUNS_STRATEGY).
type Config struct {
	GeneralizeThreshold          float64 `json:"generalize_threshold"`
	GeneralizeFSThreshold        float64 `json:"generalize_fs_threshold"`
	GeneralizeProc               bool    `json:"generalize_proc"`
	OwnerGeneralizationStrategy  uint8   `json:"owner_generalization_strategy"`
	MultipleRunsStrategy         int     `json:"multiple_runs_strategy"`

	ResultsDir    string `json:"results_dir"`
	AppLogPath    string `json:"app_log_path,omitempty"`
	DecisionLog   string `json:"decision_log_path,omitempty"`
	AppLogMaxSize int64  `json:"app_log_max_size,omitempty"`
}

// Default returns the Config used when no config file is given: the
// same values Load produces from an empty JSON object.
func Default() Config {
	c := Config{
		GeneralizeProc:       true,
		MultipleRunsStrategy: int(generalize.NumericalGeneralization),
	}
	c.fillDefaults()
	return c
}

// Load reads and unmarshals the JSON config at path, resolving relative
// paths against the config file's directory and filling zero-value
// fields with Config's defaults. GeneralizeProc and MultipleRunsStrategy
// default to true and NumericalGeneralization when the file omits them.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	c := &Config{
		GeneralizeProc:       true,
		MultipleRunsStrategy: int(generalize.NumericalGeneralization),
	}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if c.ResultsDir != "" && !filepath.IsAbs(c.ResultsDir) {
		c.ResultsDir = filepath.Join(dir, c.ResultsDir)
	}
	if c.AppLogPath != "" && !filepath.IsAbs(c.AppLogPath) {
		c.AppLogPath = filepath.Join(dir, c.AppLogPath)
	}
	if c.DecisionLog != "" && !filepath.IsAbs(c.DecisionLog) {
		c.DecisionLog = filepath.Join(dir, c.DecisionLog)
	}

	c.fillDefaults()
	return c, nil
}

func (c *Config) fillDefaults() {
	if c.GeneralizeThreshold == 0 {
		c.GeneralizeThreshold = 1.0
	}
	if c.GeneralizeFSThreshold == 0 {
		c.GeneralizeFSThreshold = 1.0
	}
	if c.OwnerGeneralizationStrategy == 0 {
		c.OwnerGeneralizationStrategy = uint8(generalize.OwnDir | generalize.OwnFiles | generalize.ReadFiles | generalize.WriteFiles)
	}
	if c.ResultsDir == "" {
		c.ResultsDir = "results"
	}
	if c.AppLogMaxSize == 0 {
		c.AppLogMaxSize = 10 * 1024 * 1024
	}
}

// Generalize returns the generalize.Config this Config implies.
func (c *Config) Generalize() generalize.Config {
	return generalize.Config{
		Threshold:             c.GeneralizeThreshold,
		FSThreshold:           c.GeneralizeFSThreshold,
		GeneralizeProc:        c.GeneralizeProc,
		OwnerStrategies:       generalize.OwnerStrategy(c.OwnerGeneralizationStrategy),
		MultipleRunsStrategy:  generalize.MultipleRunsStrategy(c.MultipleRunsStrategy),
	}
}
