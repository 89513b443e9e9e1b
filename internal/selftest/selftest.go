// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package selftest verifies that a daily-arXiv checkout holds the artifacts the
// pipeline produces and consumes: enhancement files with the expected record
// shape, the markdown conversion script, the README generation files, and the
// static web assets.
//
// Each check writes human-readable status lines to an io.Writer and returns a
// nil error on success. Failures are reported, never raised: a check returns an
// error wrapping one of the sentinel kinds below so callers can tell them apart
// with errors.Is.
package selftest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/daily-arxiv/pkg/types"
)

// Error kinds reported by checks.
var (
	// ErrMissing means a required file or directory does not exist.
	ErrMissing = errors.New("missing resource")

	// ErrMalformed means a file exists but is empty, unparsable, or lacks a
	// required key.
	ErrMalformed = errors.New("malformed content")

	// ErrHeuristic means the conversion script does not contain the expected
	// source markers.
	ErrHeuristic = errors.New("source markers not found")
)

const ruleWidth = 50

// Check is one named validation over a repository root.
type Check struct {
	Name string
	Run  func(root string, w io.Writer) error
}

// Checks returns the self-test checks for cfg in their fixed run order.
func Checks(cfg types.SelftestConfig) []Check {
	return []Check{
		{
			Name: "Data structure",
			Run: func(root string, w io.Writer) error {
				return DataStructure(root, cfg.Data, w)
			},
		},
		{
			Name: "Markdown conversion",
			Run: func(root string, w io.Writer) error {
				return MarkdownConversion(root, cfg.Conversion, w)
			},
		},
		{
			Name: "README generation",
			Run: func(root string, w io.Writer) error {
				return ReadmeGeneration(root, cfg.Readme, w)
			},
		},
		{
			Name: "Web assets",
			Run: func(root string, w io.Writer) error {
				return WebAssets(root, cfg.Web, w)
			},
		},
	}
}

// Result is the outcome of a single check.
type Result struct {
	Name     string
	Passed   bool
	Err      error
	Duration time.Duration
}

// Summary holds the outcome of a self-test run.
type Summary struct {
	Root      string
	StartedAt time.Time
	Results   []Result
	Passed    int
}

// Total returns the number of checks in the run.
func (s Summary) Total() int {
	return len(s.Results)
}

// OK reports whether every check passed.
func (s Summary) OK() bool {
	return s.Passed == s.Total()
}

// Err returns nil when every check passed, or an error naming the failure count.
func (s Summary) Err() error {
	if s.OK() {
		return nil
	}
	return fmt.Errorf("%d of %d checks failed", s.Total()-s.Passed, s.Total())
}

// Run executes checks in order against root, printing a header, per-check
// status and a final pass count to w. If ctx is cancelled the remaining checks
// are recorded as failed with the context error.
func Run(ctx context.Context, root string, checks []Check, w io.Writer) Summary {
	summary := Summary{
		Root:      root,
		StartedAt: time.Now().UTC(),
		Results:   make([]Result, 0, len(checks)),
	}

	fmt.Fprintln(w, "🚀 Testing daily-arXiv-ai-enhanced setup...")
	fmt.Fprintln(w, strings.Repeat("=", ruleWidth))

	for _, c := range checks {
		if err := ctx.Err(); err != nil {
			summary.Results = append(summary.Results, Result{Name: c.Name, Err: err})
			continue
		}

		fmt.Fprintf(w, "\n📋 %s:\n", c.Name)
		start := time.Now()
		err := c.Run(root, w)
		res := Result{
			Name:     c.Name,
			Passed:   err == nil,
			Err:      err,
			Duration: time.Since(start),
		}
		if res.Passed {
			summary.Passed++
		} else {
			fmt.Fprintf(w, "❌ %s failed\n", c.Name)
		}
		summary.Results = append(summary.Results, res)
	}

	fmt.Fprintln(w, "\n"+strings.Repeat("=", ruleWidth))
	fmt.Fprintf(w, "📊 Results: %d/%d tests passed\n", summary.Passed, summary.Total())
	if summary.OK() {
		fmt.Fprintln(w, "🎉 All tests passed! Setup is working correctly.")
	} else {
		fmt.Fprintln(w, "⚠️  Some tests failed. See output above for details.")
	}

	return summary
}

// exists reports whether path names an existing file or directory.
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// displayPath returns path relative to root when possible.
func displayPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
