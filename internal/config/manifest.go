package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the YAML case manifest (an EXPANSION over spec.md): one or
// more named mining cases, each naming the service and pointing at the
// log files, FS-snapshot root, FHS rules file, owner uids/gids, subject
// and object contexts, and reference policy file.
type Manifest struct {
	Cases []ManifestCase `yaml:"cases"`
}

// ManifestCase is one entry of the manifest: a named run of the mining
// pipeline.
type ManifestCase struct {
	Name         string   `yaml:"name"`
	Service      string   `yaml:"service"`
	LogFiles     []string `yaml:"log_files"`
	FSSnapshot   string   `yaml:"fs_snapshot"`
	FHSRulesFile string   `yaml:"fhs_rules_file,omitempty"`
	Users        []int    `yaml:"users,omitempty"`
	Groups       []int    `yaml:"groups,omitempty"`
	Subjects     []string `yaml:"subjects,omitempty"`
	Objects      []string `yaml:"objects,omitempty"`
	ReferenceFile string  `yaml:"reference_file,omitempty"`
}

// LoadManifest reads and unmarshals the YAML case manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading manifest %s: %w", path, err)
	}
	m := &Manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("config: parsing manifest %s: %w", path, err)
	}
	return m, nil
}
