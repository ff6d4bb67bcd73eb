// Copyright © 2020 The Pea Authors under an MIT-style license.

package main

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/eaburns/parsec/calc"
	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExec(t *testing.T) {
	p := calc.NewParser(nil)
	env := calc.Env{}
	var buf bytes.Buffer
	require.NoError(t, exec(p, env, "let x = 2; x * 21", &buf))
	require.NoError(t, exec(p, env, "x + 1", &buf))
	assert.Equal(t, "2\n42\n3\n", buf.String())

	buf.Reset()
	err := exec(p, env, "1; 2 / 0; 3", &buf)
	require.Error(t, err)
	assert.Equal(t, "error at (line 1, column 6): division by zero", err.Error())
	assert.Equal(t, "1\n", buf.String(), "output before the error")

	buf.Reset()
	err = exec(p, env, "1 +", &buf)
	require.Error(t, err)
	assert.True(t, calc.Incomplete(err), "Incomplete")
	assert.Empty(t, buf.String())
}

func TestHistory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, historyFile)

	ln := liner.NewLiner()
	assert.ErrorIs(t, loadHistory(ln, path), fs.ErrNotExist)
	ln.AppendHistory("let x = 1")
	ln.AppendHistory("x + 1")
	require.NoError(t, saveHistory(ln, path))
	ln.Close()

	ln = liner.NewLiner()
	defer ln.Close()
	require.NoError(t, loadHistory(ln, path))
	copyPath := filepath.Join(dir, "copy")
	require.NoError(t, saveHistory(ln, copyPath))
	data, err := os.ReadFile(copyPath)
	require.NoError(t, err)
	assert.Equal(t, "let x = 1\nx + 1\n", string(data))

	assert.Error(t, saveHistory(ln, filepath.Join(dir, "missing", "dir")))
}

func TestHistoryPath(t *testing.T) {
	t.Setenv("HOME", "/home/calc")
	got, err := historyPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/calc", historyFile), got)

	t.Setenv("HOME", "")
	_, err = historyPath()
	assert.Error(t, err, "HOME unset")
}
