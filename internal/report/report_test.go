// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/daily-arxiv/internal/selftest"
)

func sampleSummary() selftest.Summary {
	return selftest.Summary{
		Root:      "/repo",
		StartedAt: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
		Passed:    1,
		Results: []selftest.Result{
			{Name: "Data structure", Passed: true},
			{Name: "Web assets", Err: errors.New("missing resource: index.html | css/styles.css")},
		},
	}
}

func TestMarkdown(t *testing.T) {
	got := Markdown(sampleSummary())

	assert.Contains(t, got, "- Root: `/repo`\n")
	assert.Contains(t, got, "- Started: 2024-01-01T08:00:00Z\n")
	assert.Contains(t, got, "**1/2 passed**")
	assert.Contains(t, got, "| Data structure | pass |  |\n")
	assert.Contains(t, got, `| Web assets | FAIL | missing resource: index.html \| css/styles.css |`)
}

func TestHTML(t *testing.T) {
	got, err := HTML(sampleSummary())
	require.NoError(t, err)

	page := string(got)
	assert.Contains(t, page, "<!DOCTYPE html>")
	assert.Contains(t, page, "<h1>daily-arXiv setup self-test</h1>")
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, "<td>Data structure</td>")
	assert.Contains(t, page, "<strong>1/2 passed</strong>")
}

func TestWriteHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "selftest.html")

	require.NoError(t, WriteHTML(path, sampleSummary()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<table>")
}
