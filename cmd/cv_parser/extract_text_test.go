package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCV = `Jane Doe
jane@example.com

WORK EXPERIENCE
Senior Engineer, Acme Corp, 2020 - Present
- Led migration of the billing platform to Go services
- Built event pipelines processing millions of messages daily

SKILLS
Go, PostgreSQL, Kubernetes`

func TestExtractTextCommand(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	a := writeFile(t, dir, "jane.txt", sampleCV)
	b := writeFile(t, dir, "short.txt", "Hello")

	out, err := executeCommand(t, "extract-text", "--out-dir", outDir, "--concurrency", "2", a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "jane.txt: text")
	assert.Contains(t, out, "short.txt: text")
	assert.Contains(t, out, "Extracted 2 files")

	text, err := os.ReadFile(filepath.Join(outDir, "jane.txt"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(text), "Jane Doe"))

	raw, err := os.ReadFile(filepath.Join(outDir, "short.meta.json"))
	require.NoError(t, err)
	var meta map[string]any
	require.NoError(t, json.Unmarshal(raw, &meta))
	assert.Equal(t, "short.txt", meta["filename"])
	assert.Equal(t, false, meta["readable"])
}

func TestExtractTextCommand_OutDirFromConfig(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "from-config")
	in := writeFile(t, dir, "cv.txt", sampleCV)
	cfg := writeFile(t, dir, "config.json", `{"out_dir": "`+filepath.ToSlash(outDir)+`", "concurrency": 1}`)

	_, err := executeCommand(t, "--config", cfg, "extract-text", in)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "cv.txt"))
	assert.FileExists(t, filepath.Join(outDir, "cv.meta.json"))
}

func TestExtractTextCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "cv.txt", sampleCV)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "other"), 0755))
	dup := writeFile(t, filepath.Join(dir, "other"), "cv.txt", sampleCV)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "no files", args: []string{"extract-text", "--out-dir", dir}, wantErr: "requires at least 1 arg"},
		{name: "no out dir", args: []string{"extract-text", in}, wantErr: "--out-dir is required"},
		{name: "missing input", args: []string{"extract-text", "--out-dir", dir, filepath.Join(dir, "nope.pdf")}, wantErr: "file not found"},
		{name: "duplicate names", args: []string{"extract-text", "--out-dir", dir, in, dup}, wantErr: "same output files"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
