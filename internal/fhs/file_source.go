package fhs

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Programator2/medusa-policy-mining/internal/access"
)

// FileSource reads a ruleset from a line-oriented text file. Each
// non-blank, non-comment line holds four whitespace-separated fields:
//
//	path permission-word recursive-flag regex-flag
//
// Lines starting with '#' and blank lines are skipped.
type FileSource struct {
	filePath string
}

// NewFileSource creates a source that reads rules from the given file path.
func NewFileSource(filePath string) *FileSource {
	return &FileSource{filePath: filePath}
}

// Load implements Source.
func (s *FileSource) Load() ([]Rule, error) {
	f, err := os.Open(s.filePath)
	if err != nil {
		return nil, fmt.Errorf("fhs: %w", err)
	}
	defer f.Close()

	var rules []Rule
	sc := bufio.NewScanner(f)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rule, err := parseRuleLine(line)
		if err != nil {
			return nil, fmt.Errorf("fhs: %s:%d: %w", s.filePath, lineNum, err)
		}
		rules = append(rules, rule)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("fhs: %s: %w", s.filePath, err)
	}
	return rules, nil
}

func parseRuleLine(line string) (Rule, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return Rule{}, fmt.Errorf("expected 4 fields, got %d: %q", len(fields), line)
	}
	perm, err := access.ParsePermission(fields[1])
	if err != nil {
		return Rule{}, err
	}
	recursive, err := strconv.ParseBool(fields[2])
	if err != nil {
		return Rule{}, fmt.Errorf("invalid recursive flag %q: %w", fields[2], err)
	}
	isRegex, err := strconv.ParseBool(fields[3])
	if err != nil {
		return Rule{}, fmt.Errorf("invalid regex flag %q: %w", fields[3], err)
	}
	return Rule{
		Path:       fields[0],
		Permission: perm,
		Recursive:  recursive,
		Regex:      isRegex,
	}, nil
}
