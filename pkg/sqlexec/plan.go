package sqlexec

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RawInput is the provenance label attached to statements that came from
// literal SQL text rather than a file.
const RawInput = "raw input"

// SplitFunc converts raw SQL text into a sequence of individual statements.
// The parsing itself is opaque to this package.
type SplitFunc func(raw string) []string

// StatementGroup is an ordered batch of individual statements tagged with
// where they came from, for error reporting.
type StatementGroup struct {
	// Source is the resolved filename, or RawInput for literal SQL.
	Source string
	// Statements run in order; each is already substituted and trimmed.
	Statements []string
}

// BuildPlan turns SQL sources into ordered statement groups. Blank sources
// are discarded. With fromFiles set, each remaining source names a file
// under baseDir and becomes its own group; otherwise all sources are
// substituted individually, joined, and split into a single RawInput group.
func BuildPlan(cmap ContextMap, sources []string, baseDir string, fromFiles bool, split SplitFunc) ([]StatementGroup, error) {
	kept := sources[:0:0]
	for _, s := range sources {
		if strings.TrimSpace(s) != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return nil, nil
	}

	if fromFiles {
		groups := make([]StatementGroup, 0, len(kept))
		for _, name := range kept {
			path := filepath.Join(baseDir, strings.TrimSpace(name))
			raw, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read sql file: %w", err)
			}
			groups = append(groups, StatementGroup{
				Source:     path,
				Statements: trimStatements(split(cmap.Substitute(string(raw)))),
			})
		}
		return groups, nil
	}

	substituted := make([]string, 0, len(kept))
	for _, s := range kept {
		substituted = append(substituted, cmap.Substitute(s))
	}
	return []StatementGroup{{
		Source:     RawInput,
		Statements: trimStatements(split(strings.Join(substituted, ";\n"))),
	}}, nil
}

func trimStatements(stmts []string) []string {
	out := stmts[:0:0]
	for _, s := range stmts {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func statementCount(groups []StatementGroup) int {
	n := 0
	for _, g := range groups {
		n += len(g.Statements)
	}
	return n
}
