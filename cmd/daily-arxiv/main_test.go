// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/daily-arxiv/pkg/types"
)

const sampleRecord = `{"id":"1","categories":["cs.AI"],"title":"T","authors":["A"],"summary":"S","AI":{"tldr":"x","motivation":"x","method":"x","result":"x","conclusion":"x"}}`

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func completeRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "data/2024-01-01_AI_enhanced_Chinese.jsonl", sampleRecord+"\n")
	writeFile(t, root, "to_md/convert.py", "def rank(p):\n    return template.format(**p)\n")
	writeFile(t, root, "to_md/paper_template.md", "")
	for _, f := range types.DefaultSelftestConfig().Readme.Files {
		writeFile(t, root, f, "")
	}
	for _, a := range types.DefaultSelftestConfig().Web.Assets {
		writeFile(t, root, a, "")
	}
	return root
}

// execute runs the CLI with args and returns its standard output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSelftestCommandPasses(t *testing.T) {
	root := completeRepo(t)

	out, err := execute(t, "selftest", "--root", root, "--record=false", "--html=")

	require.NoError(t, err)
	assert.Contains(t, out, "📊 Results: 4/4 tests passed")
	assert.Contains(t, out, "✅ Categories: cs.AI")
}

func TestRootCommandRunsSelftest(t *testing.T) {
	root := completeRepo(t)

	out, err := execute(t, "--root", root)

	require.NoError(t, err)
	assert.Contains(t, out, "🎉 All tests passed!")
}

func TestSelftestCommandFails(t *testing.T) {
	root := t.TempDir()

	out, err := execute(t, "selftest", "--root", root, "--record=false", "--html=")

	require.EqualError(t, err, "4 of 4 checks failed")
	assert.Contains(t, out, "📊 Results: 0/4 tests passed")
	assert.Contains(t, out, "❌ Data directory not found")
}

func TestSelftestRecordHistoryAndReport(t *testing.T) {
	root := completeRepo(t)
	htmlPath := filepath.Join(root, "reports", "selftest.html")

	_, err := execute(t, "selftest", "--root", root, "--record", "--html", htmlPath)
	require.NoError(t, err)
	assert.FileExists(t, htmlPath)
	assert.FileExists(t, filepath.Join(root, ".selftest", "history.db"))

	out, err := execute(t, "history", "--root", root, "--format", "json", "--limit", "0")
	require.NoError(t, err)
	assert.Contains(t, out, `"passed": 4`)
	assert.Contains(t, out, `"name": "Data structure"`)

	out, err = execute(t, "history", "--root", root, "--format", "table", "--limit", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "4/4")
	assert.Contains(t, out, "1 runs")
}

func TestHistoryCommandEmpty(t *testing.T) {
	root := t.TempDir()

	out, err := execute(t, "history", "--root", root, "--format", "table", "--limit", "0")

	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded.")
	assert.NoDirExists(t, filepath.Join(root, ".selftest"))
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "daily-arxiv dev\n", out)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig()
	require.NoError(t, err)

	want := types.DefaultSelftestConfig()
	assert.Equal(t, want.Data, cfg.Data)
	assert.Equal(t, want.Conversion, cfg.Conversion)
	assert.Equal(t, want.Readme, cfg.Readme)
	assert.Equal(t, want.Web, cfg.Web)
	assert.Equal(t, want.History, cfg.History)
}
