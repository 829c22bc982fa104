package seccontext

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Programator2/medusa-policy-mining/internal/cache"
)

// FileSource reads operator-supplied context overrides from a text file:
// one service per line, "service: context1,context2,...". The file is
// read and parsed once, when the source is created; lookups are served
// from the parsed table through a cache with ttl cacheDuration.
type FileSource struct {
	repo *cache.Repository[string, []string]
}

// NewFileSource reads the whole override file once up front and serves
// lookups from an in-memory, ttl-bounded cache (grounded on the
// teacher's pkg/playerdata.Repository).
func NewFileSource(filePath string, cacheDuration time.Duration) (*FileSource, error) {
	table, err := loadFile(filePath)
	if err != nil {
		return nil, err
	}
	loader := func(service string) ([]string, error) {
		contexts, ok := table[service]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownService, service)
		}
		return contexts, nil
	}
	return &FileSource{repo: cache.NewRepository(loader, cacheDuration)}, nil
}

// ContextsFor implements Source.
func (s *FileSource) ContextsFor(service string) ([]string, error) {
	return s.repo.Get(service)
}

func loadFile(path string) (map[string][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("seccontext: %w", err)
	}
	defer f.Close()

	table := make(map[string][]string)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		service, rest, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("seccontext: %s: malformed line %q", path, line)
		}
		var contexts []string
		for _, c := range strings.Split(rest, ",") {
			c = strings.TrimSpace(c)
			if c != "" {
				contexts = append(contexts, c)
			}
		}
		table[strings.TrimSpace(service)] = contexts
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("seccontext: %s: %w", path, err)
	}
	return table, nil
}
