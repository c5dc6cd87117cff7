package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ByLCY/jackfield/project"
)

const testStrip = `strip "Drums" {
  height 6mm
  cell-width 20
  cells 2 text "${data.prefix}${n}"
}
`

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeStrip(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drums.strip")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestVersionCommandOutputsBuildInfo(t *testing.T) {
	originalVersion, originalCommit, originalDate := version, commit, date
	t.Cleanup(func() {
		version, commit, date = originalVersion, originalCommit, originalDate
	})
	version, commit, date = "1.2.3", "abcdef1", "2026-10-01"

	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "1.2.3")
	require.Contains(t, out, "abcdef1")
	require.Contains(t, out, project.Version)
}

func TestBuildWritesProject(t *testing.T) {
	src := writeStrip(t, testStrip)
	dest := filepath.Join(t.TempDir(), "out", "drums")

	out, err := executeCommand(t, "build", src, "-o", dest, "--data", `{"prefix":"K"}`)
	require.NoError(t, err)
	require.Contains(t, out, dest+project.Extension)

	p, err := project.Load(dest + project.Extension)
	require.NoError(t, err)
	cells := p.Strip.ContentCells()
	require.Len(t, cells, 2)
	require.Equal(t, "K1", cells[0].Text())
	require.Equal(t, "K2", cells[1].Text())

	info, err := executeCommand(t, "info", dest+project.Extension)
	require.NoError(t, err)
	require.Contains(t, info, project.Application)
	require.Contains(t, info, "可打开:   true")
}

func TestBuildDataFromFile(t *testing.T) {
	src := writeStrip(t, testStrip)
	dataPath := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(dataPath, []byte(`{"prefix":"T"}`), 0o644))

	_, err := executeCommand(t, "build", src, "--data", dataPath)
	require.NoError(t, err)

	p, err := project.Load(strings.TrimSuffix(src, ".strip") + project.Extension)
	require.NoError(t, err)
	require.Equal(t, "T1", p.Strip.ContentCells()[0].Text())
}

func TestBuildFailsOnMissingData(t *testing.T) {
	src := writeStrip(t, testStrip)
	_, err := executeCommand(t, "build", src)
	require.Error(t, err)
	require.Contains(t, err.Error(), "data.prefix")
}

func TestRenderPNGAndDebugLayout(t *testing.T) {
	src := writeStrip(t, testStrip)
	dir := t.TempDir()
	png := filepath.Join(dir, "drums.png")
	debug := filepath.Join(dir, "debug", "layout.json")

	out, err := executeCommand(t, "render", src, "-o", png, "--dpi", "72", "--debug", debug, "--data", `{"prefix":"S"}`)
	require.NoError(t, err)
	require.Contains(t, out, "PNG")

	data, err := os.ReadFile(png)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	layoutJSON, err := os.ReadFile(debug)
	require.NoError(t, err)
	require.Contains(t, string(layoutJSON), `"S1"`)
}

func TestRenderPDFWithRotation(t *testing.T) {
	src := writeStrip(t, testStrip)
	pdf := filepath.Join(t.TempDir(), "drums.pdf")

	_, err := executeCommand(t, "render", src, "-o", pdf, "--rotate", "90", "--data", `{"prefix":"S"}`)
	require.NoError(t, err)

	data, err := os.ReadFile(pdf)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRenderRejectsBadInput(t *testing.T) {
	src := writeStrip(t, testStrip)
	dir := t.TempDir()

	_, err := executeCommand(t, "render", src, "-o", filepath.Join(dir, "a.pdf"), "--rotate", "45", "--data", `{"prefix":"S"}`)
	require.Error(t, err)

	_, err = executeCommand(t, "render", src, "-o", filepath.Join(dir, "a.svg"), "--data", `{"prefix":"S"}`)
	require.Error(t, err)

	_, err = executeCommand(t, "render", filepath.Join(dir, "missing.strip"), "-o", filepath.Join(dir, "a.pdf"))
	require.Error(t, err)
}

func TestPreviewPrintsPlainGrid(t *testing.T) {
	src := writeStrip(t, testStrip)

	out, err := executeCommand(t, "preview", src, "--columns", "44", "--rows", "5", "--data", `{"prefix":"A"}`)
	require.NoError(t, err)
	require.Contains(t, out, "A1")
	require.Contains(t, out, "A2")
	require.Contains(t, out, "│")
	require.Contains(t, out, "Drums")
	require.NotContains(t, out, "\x1b[")
}

func TestValidateCommand(t *testing.T) {
	ok := writeStrip(t, "strip { cells 3 }")
	out, err := executeCommand(t, "validate", ok)
	require.NoError(t, err)
	require.Contains(t, out, "OK")

	empty := writeStrip(t, "strip { }")
	_, err = executeCommand(t, "validate", empty)
	require.Error(t, err)
}

func TestConfigFileIsApplied(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "jackfield.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("png:\n  dpi: 10\n"), 0o644))

	src := writeStrip(t, "strip { cells 1 }")
	_, err := executeCommand(t, "--config", cfg, "validate", src)
	require.Error(t, err, "dpi below the allowed range must be rejected")
}

func TestReadData(t *testing.T) {
	v, err := readData("")
	require.NoError(t, err)
	require.Nil(t, v)

	v, err = readData(`[1, 2]`)
	require.NoError(t, err)
	require.Equal(t, []any{float64(1), float64(2)}, v)

	_, err = readData(`{broken`)
	require.Error(t, err)
}
