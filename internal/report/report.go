// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders a self-test summary as Markdown and HTML.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/pdiddy/daily-arxiv/internal/selftest"
)

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

// Markdown renders s as a Markdown document with one table row per check.
func Markdown(s selftest.Summary) string {
	var b strings.Builder
	b.WriteString("# daily-arXiv setup self-test\n\n")
	fmt.Fprintf(&b, "- Root: `%s`\n", s.Root)
	fmt.Fprintf(&b, "- Started: %s\n", s.StartedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "- Result: **%d/%d passed**\n\n", s.Passed, s.Total())

	b.WriteString("| Check | Status | Detail |\n")
	b.WriteString("|-------|--------|--------|\n")
	for _, r := range s.Results {
		status, detail := "pass", ""
		if !r.Passed {
			status = "FAIL"
			if r.Err != nil {
				detail = escapeCell(r.Err.Error())
			}
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", r.Name, status, detail)
	}
	return b.String()
}

// HTML renders s as a standalone HTML page.
func HTML(s selftest.Summary) ([]byte, error) {
	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(s)), &body); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	page.WriteString("<title>daily-arXiv self-test</title>\n</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

// WriteHTML renders s and writes it to path, creating parent directories.
func WriteHTML(path string, s selftest.Summary) error {
	data, err := HTML(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
