// Package testfixture loads golden test fixtures for the core's §8 seed
// scenarios. Each fixture is a txtar archive (golang.org/x/tools/txtar,
// a direct requirement in this module's go.mod)
// holding a free-form `notes` section describing the scenario in prose
// and a `want` section holding the golden,
// line-oriented rendering of the expected result. The HIR a scenario
// exercises is still built in Go (§1 puts lexing/parsing out of the
// core's scope, so there is no source-text front end to feed a fixture
// through) — the fixture only carries the human-readable scenario
// description and its golden output, the two parts that are tedious to
// keep in sync by hand across edits.
package testfixture

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/txtar"
)

// Fixture is one loaded golden scenario.
type Fixture struct {
	Name  string // base file name, without extension
	Notes string // prose description of the scenario (informational only)
	Want  string // golden text a test compares its rendered output against
}

// Load parses the txtar archive at path into a Fixture. It requires
// exactly two files, "notes" and "want"; any other shape is a fixture
// authoring error, reported immediately rather than silently ignored.
func Load(path string) (*Fixture, error) {
	arc, err := txtar.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("testfixture: %s: %w", path, err)
	}

	f := &Fixture{Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))}
	seen := map[string]bool{}
	for _, file := range arc.Files {
		seen[file.Name] = true
		switch file.Name {
		case "notes":
			f.Notes = string(file.Data)
		case "want":
			f.Want = string(file.Data)
		default:
			return nil, fmt.Errorf("testfixture: %s: unexpected section %q", path, file.Name)
		}
	}
	if !seen["notes"] || !seen["want"] {
		return nil, fmt.Errorf("testfixture: %s: must have both a \"notes\" and a \"want\" section", path)
	}
	return f, nil
}

// LoadDir loads every *.txtar fixture in dir, sorted by file name.
func LoadDir(dir string) ([]*Fixture, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("testfixture: %s: %w", dir, err)
	}
	var out []*Fixture
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txtar") {
			continue
		}
		f, err := Load(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// WantLines splits Want on newlines, trimming one trailing blank line if
// present (txtar sections conventionally end with a newline). Tests use
// this to compare against a line-oriented rendering of their own output.
func (f *Fixture) WantLines() []string {
	trimmed := strings.TrimSuffix(f.Want, "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
