// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/outrigdev/boolsearch/pkg/base"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv(base.ConfigFileEnvName, "")
	files := map[string]string{
		".git/HEAD":  "ref: refs/heads/main",
		"notes.txt":  "error: timeout\nall good\nerror in test\n",
		"other.txt":  "timeout only\n",
		"sub/x.log":  "ERROR timeout\n",
		"binary.bin": "error\x00timeout",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := runCmdWithStderr(t, args...)
	return out, err
}

func runCmdWithStderr(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := makeRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestSearchCommand(t *testing.T) {
	root := makeWorkspace(t)

	out, err := runCmd(t, "search", "error AND timeout", root)
	require.NoError(t, err)
	assert.Contains(t, out, "Found 2 file(s) with matches:")
	assert.Contains(t, out, "notes.txt\n   2 match(es):\n   Line 1: error: timeout\n   Line 3: error in test\n")
	assert.Contains(t, out, filepath.Join("sub", "x.log"))
	assert.NotContains(t, out, "binary.bin")
}

func TestSearchCommandFlags(t *testing.T) {
	root := makeWorkspace(t)

	out, err := runCmd(t, "search", "--scope", "line", "error AND timeout NOT test", root)
	require.NoError(t, err)
	assert.Contains(t, out, "Line 1: error: timeout")
	assert.NotContains(t, out, "error in test")

	out, err = runCmd(t, "search", "-c", "--format", "vimgrep", "ERROR", root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("sub", "x.log")+":1:1:ERROR timeout\n", out)

	out, err = runCmd(t, "search", "--include", "**/*.log", "--format", "json", "timeout", root)
	require.NoError(t, err)
	assert.Contains(t, out, `"totalfiles": 1`)
}

func TestSearchCommandConfigFile(t *testing.T) {
	root := makeWorkspace(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, base.ConfigFileName), []byte("scope = \"line\"\nformat = \"vimgrep\"\n"), 0644))

	out, err := runCmd(t, "search", "error AND timeout", root)
	require.NoError(t, err)
	assert.Equal(t, "notes.txt:1:1:error: timeout\n"+filepath.Join("sub", "x.log")+":1:1:ERROR timeout\n", out)

	// flags win over the file
	out, err = runCmd(t, "search", "--format", "text", "error AND timeout", root)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Found 2 file(s)"))

	explicit := filepath.Join(t.TempDir(), "explicit.toml")
	require.NoError(t, os.WriteFile(explicit, []byte("casesensitive = true\n"), 0644))
	out, err = runCmd(t, "search", "--config", explicit, "ERROR", root)
	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 file(s)")
}

func TestSearchCommandConfigLogLevel(t *testing.T) {
	root := makeWorkspace(t)
	t.Setenv(base.LogLevelEnvName, "")
	require.NoError(t, os.WriteFile(filepath.Join(root, base.ConfigFileName), []byte("loglevel = \"debug\"\n"), 0644))

	_, stderr, err := runCmdWithStderr(t, "search", "timeout", root)
	require.NoError(t, err)
	assert.Contains(t, stderr, "listed files")
	assert.Contains(t, stderr, "search complete")

	// an explicit flag wins over the file
	_, stderr, err = runCmdWithStderr(t, "--loglevel", "warn", "search", "timeout", root)
	require.NoError(t, err)
	assert.NotContains(t, stderr, "listed files")

	require.NoError(t, os.WriteFile(filepath.Join(root, base.ConfigFileName), []byte("loglevel = \"loud\"\n"), 0644))
	_, _, err = runCmdWithStderr(t, "search", "timeout", root)
	assert.ErrorContains(t, err, "invalid loglevel in config")
}

func TestSearchCommandErrors(t *testing.T) {
	root := makeWorkspace(t)

	_, err := runCmd(t, "search", "  ", root)
	require.Error(t, err)
	assert.Equal(t, "please enter a search query", err.Error())
	assert.Equal(t, ExitCodeError, exitCode(err))

	_, err = runCmd(t, "search", "error AND", root)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "invalid query: "))
	assert.Equal(t, ExitCodeInvalidQuery, exitCode(err))

	_, err = runCmd(t, "search", "error", filepath.Join(root, "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no folder to search")
	assert.Equal(t, ExitCodeError, exitCode(err))

	_, err = runCmd(t, "search", "--scope", "word", "error", root)
	assert.Error(t, err)
}

func TestParseCommand(t *testing.T) {
	out, err := runCmd(t, "parse", "a OR b NOT c")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "OR\n  TERM: \"a\"\n  AND\n"), out)
	assert.Contains(t, out, "positive terms: a, b\n")

	out, err = runCmd(t, "parse", "--tokens", "--scope", "line", "foo bar AND baz")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "tokens: foo bar AND baz\n\nTERM: \"foo\"\nignored: bar AND baz\n"), out)
	assert.Contains(t, out, "scope: line\n")
	assert.Contains(t, out, "positive terms: foo\n")

	_, err = runCmd(t, "parse", "OR a")
	require.Error(t, err)
	assert.Equal(t, ExitCodeInvalidQuery, exitCode(err))
}

func TestVersionCommand(t *testing.T) {
	out, err := runCmd(t, "version")
	require.NoError(t, err)
	assert.Equal(t, base.VersionString()+"\n", out)
}
