// Package skills provides skill-phrase extraction and fuzzy skill
// matching for resume-to-job scoring.
package skills

import (
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/jobmatch/internal/textproc"
)

// Extract matches known skill phrases against text using padded
// whole-phrase containment: both the normalized text and each lowercased
// phrase are wrapped in single spaces before a substring test. This is a
// crude boundary check — it rejects "java" inside "javascript" because
// the surrounding characters are not spaces, but it can still leak at
// boundaries where the normalizer kept adjacent symbols (e.g. "go/java"
// normalizes with the slash intact, so neither side matches).
//
// The returned phrases keep their original casing. Duplicate phrases in
// the input collapse to one entry; empty phrases are ignored.
func Extract(text string, phrases []string) []string {
	padded := " " + textproc.Normalize(text) + " "
	seen := make(map[string]struct{}, len(phrases))
	found := make([]string, 0, len(phrases))
	for _, phrase := range phrases {
		p := strings.ToLower(strings.TrimSpace(phrase))
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		if strings.Contains(padded, " "+p+" ") {
			seen[p] = struct{}{}
			found = append(found, strings.TrimSpace(phrase))
		}
	}
	return found
}

// LoadList reads a skill master list from a file, one phrase per line.
// Blank lines and duplicates are filtered. A missing file is not an
// error: matching degrades to an always-empty skill set instead.
func LoadList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read skill list %s: %w", path, err)
	}
	seen := make(map[string]struct{})
	var phrases []string
	for _, line := range strings.Split(string(data), "\n") {
		phrase := strings.TrimSpace(line)
		if phrase == "" {
			continue
		}
		key := strings.ToLower(phrase)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		phrases = append(phrases, phrase)
	}
	return phrases, nil
}
