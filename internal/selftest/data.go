// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package selftest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/daily-arxiv/pkg/types"
)

// DataStructure checks the most recent enhancement file under cfg.Dir. Only the
// first record is inspected: every key in types.PaperFields and
// types.AIFields must be present. Values are not validated.
func DataStructure(root string, cfg types.DataConfig, w io.Writer) error {
	dir := filepath.Join(root, cfg.Dir)
	// A non-directory at dir counts as present; the glob below then finds nothing.
	if !exists(dir) {
		fmt.Fprintln(w, "❌ Data directory not found")
		return fmt.Errorf("%w: data directory %s", ErrMissing, dir)
	}

	matches, err := filepath.Glob(filepath.Join(dir, cfg.Pattern))
	if err != nil {
		fmt.Fprintf(w, "❌ Invalid file pattern %q\n", cfg.Pattern)
		return fmt.Errorf("%w: pattern %q: %w", ErrMalformed, cfg.Pattern, err)
	}
	if len(matches) == 0 {
		fmt.Fprintln(w, "❌ No AI-enhanced files found")
		return fmt.Errorf("%w: no files matching %s in %s", ErrMissing, cfg.Pattern, dir)
	}

	// Names carry a leading YYYY-MM-DD stamp, so the greatest name is the newest.
	sort.Strings(matches)
	path := matches[len(matches)-1]
	fmt.Fprintf(w, "✅ Testing file: %s\n", displayPath(root, path))

	lines, err := readLines(path)
	if err != nil {
		fmt.Fprintf(w, "❌ Error reading file: %v\n", err)
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if len(lines) == 0 {
		fmt.Fprintln(w, "❌ File is empty")
		return fmt.Errorf("%w: %s is empty", ErrMalformed, path)
	}

	record, err := decodeObject([]byte(lines[0]))
	if err != nil {
		fmt.Fprintf(w, "❌ Error reading file: %v\n", err)
		return fmt.Errorf("%w: first record: %w", ErrMalformed, err)
	}

	if key, ok := firstMissing(record, types.PaperFields); !ok {
		fmt.Fprintf(w, "❌ Missing field: %s\n", key)
		return fmt.Errorf("%w: missing field %s", ErrMalformed, key)
	}

	ai, err := decodeObject(record["AI"])
	if err != nil {
		err = fmt.Errorf("AI field: %w", err)
		fmt.Fprintf(w, "❌ Error reading file: %v\n", err)
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if key, ok := firstMissing(ai, types.AIFields); !ok {
		fmt.Fprintf(w, "❌ Missing AI field: %s\n", key)
		return fmt.Errorf("%w: missing AI field %s", ErrMalformed, key)
	}

	var paper types.Paper
	if err := decodeCategories(record["categories"], &paper); err != nil {
		err = fmt.Errorf("categories field: %w", err)
		fmt.Fprintf(w, "❌ Error reading file: %v\n", err)
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	fmt.Fprintf(w, "✅ Data structure valid - %d papers in file\n", len(lines))
	fmt.Fprintf(w, "✅ Categories: %s\n", strings.Join(paper.Categories, ", "))
	fmt.Fprintln(w, "✅ AI enhancement present")
	return nil
}

// readLines returns the lines of path, each with its terminator. "\n",
// "\r\n" and a lone "\r" all end a line. A final line without a terminator
// still counts; no empty line follows the last terminator. The whole file
// must be valid UTF-8.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%s is not valid UTF-8", filepath.Base(path))
	}

	var lines []string
	for len(data) > 0 {
		i := bytes.IndexAny(data, "\r\n")
		if i < 0 {
			lines = append(lines, string(data))
			break
		}
		end := i + 1
		if data[i] == '\r' && end < len(data) && data[end] == '\n' {
			end++
		}
		lines = append(lines, string(data[:end]))
		data = data[end:]
	}
	return lines, nil
}

// decodeCategories decodes raw into p.Categories. A JSON null is rejected:
// categories must be an array of strings.
func decodeCategories(raw json.RawMessage, p *types.Paper) error {
	if err := json.Unmarshal(raw, &p.Categories); err != nil {
		return err
	}
	if p.Categories == nil {
		return fmt.Errorf("expected an array of strings, got %s", strings.TrimSpace(string(raw)))
	}
	return nil
}

// decodeObject decodes raw as a JSON object, keeping values undecoded.
func decodeObject(raw json.RawMessage) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, fmt.Errorf("expected a JSON object, got %s", strings.TrimSpace(string(raw)))
	}
	return obj, nil
}

// firstMissing returns the first key in keys absent from obj.
func firstMissing(obj map[string]json.RawMessage, keys []string) (string, bool) {
	for _, k := range keys {
		if _, ok := obj[k]; !ok {
			return k, false
		}
	}
	return "", true
}
