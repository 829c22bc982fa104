package evaluator

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadCases reads a reference policy from a JSON file: an array of
// {"path": "...", "read": bool, "write": bool} objects, grounded on the
// teacher's JSON config-loading convention (cmd/vkftpd/config.go).
func LoadCases(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("evaluator: reading reference %s: %w", path, err)
	}
	var cases []Case
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("evaluator: parsing reference %s: %w", path, err)
	}
	return cases, nil
}
