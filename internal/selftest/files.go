// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package selftest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/daily-arxiv/pkg/types"
)

// MarkdownConversion checks that the conversion script and its template exist
// and that the script source contains every marker in cfg.Markers.
//
// The marker match is a substring test on the source text, not a parse: it
// accepts code that merely looks right and rejects equivalent code worded
// differently.
func MarkdownConversion(root string, cfg types.ConversionConfig, w io.Writer) error {
	script := filepath.Join(root, cfg.Script)
	if !exists(script) {
		fmt.Fprintf(w, "❌ %s not found\n", filepath.Base(cfg.Script))
		return fmt.Errorf("%w: %s", ErrMissing, cfg.Script)
	}

	if !exists(filepath.Join(root, cfg.Template)) {
		fmt.Fprintf(w, "❌ %s not found\n", filepath.Base(cfg.Template))
		return fmt.Errorf("%w: %s", ErrMissing, cfg.Template)
	}

	data, err := os.ReadFile(script)
	if err != nil {
		fmt.Fprintf(w, "❌ Error testing markdown conversion: %v\n", err)
		return fmt.Errorf("%w: reading %s: %w", ErrMalformed, cfg.Script, err)
	}

	src := string(data)
	for _, m := range cfg.Markers {
		if !strings.Contains(src, m) {
			fmt.Fprintln(w, "❌ Markdown conversion script missing key functions")
			return fmt.Errorf("%w: %s lacks %q", ErrHeuristic, cfg.Script, m)
		}
	}

	fmt.Fprintln(w, "✅ Markdown conversion script structure valid")
	return nil
}

// ReadmeGeneration checks that the README templates and update script exist.
// The first missing file is reported; contents are not inspected.
func ReadmeGeneration(root string, cfg types.ReadmeConfig, w io.Writer) error {
	for _, f := range cfg.Files {
		if !exists(filepath.Join(root, f)) {
			fmt.Fprintf(w, "❌ %s not found\n", f)
			return fmt.Errorf("%w: %s", ErrMissing, f)
		}
	}

	fmt.Fprintln(w, "✅ README generation system files present")
	return nil
}

// WebAssets checks that every static site asset exists. Unlike the other
// checks it reports all missing paths at once, in configured order.
func WebAssets(root string, cfg types.WebConfig, w io.Writer) error {
	missing := MissingAssets(root, cfg.Assets)
	if len(missing) > 0 {
		list := strings.Join(missing, ", ")
		fmt.Fprintf(w, "❌ Missing web files: %s\n", list)
		return fmt.Errorf("%w: %s", ErrMissing, list)
	}

	fmt.Fprintln(w, "✅ All web assets present")
	return nil
}

// MissingAssets returns the entries of paths that do not exist under root,
// preserving order.
func MissingAssets(root string, paths []string) []string {
	var missing []string
	for _, p := range paths {
		if !exists(filepath.Join(root, p)) {
			missing = append(missing, p)
		}
	}
	return missing
}
