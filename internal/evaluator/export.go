package evaluator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Export writes the six result files into dir: hit.txt, correct_denial.txt,
// underpermission.txt, overpermission.txt, tree.txt, and confusion.txt,
// using the teacher's pkg/status.Writer atomic-write pattern (write to a
// sibling .tmp file, then os.Rename into place) so a crash mid-export
// never leaves a half-written result file.
func (c *Confusion) Export(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("evaluator: creating result directory: %w", err)
	}

	files := map[string]string{
		"hit.txt":             renderDecisions(c.Hits),
		"correct_denial.txt":  renderDecisions(c.CorrectDenials),
		"underpermission.txt": renderDecisions(c.Underpermissions),
		"overpermission.txt":  renderDecisions(c.Overpermissions),
		"tree.txt":            c.TreeDump,
		"confusion.txt":       c.renderSummary(),
	}

	for name, content := range files {
		if err := atomicWrite(filepath.Join(dir, name), []byte(content)); err != nil {
			return fmt.Errorf("evaluator: writing %s: %w", name, err)
		}
	}
	return nil
}

func renderDecisions(ds []Decision) string {
	var b strings.Builder
	for _, d := range ds {
		fmt.Fprintf(&b, "%s %s\n", d.Operation, d.Path)
	}
	return b.String()
}

func (c *Confusion) renderSummary() string {
	return fmt.Sprintf(
		"hit: %d\ncorrect_denial: %d\nunderpermission: %d\noverpermission: %d\n",
		len(c.Hits), len(c.CorrectDenials), len(c.Underpermissions), len(c.Overpermissions),
	)
}

// atomicWrite writes content to a temp file in path's directory, then
// renames it into place.
func atomicWrite(path string, content []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
