package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReverse(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	out := filepath.Join(dir, "out")
	require.NoError(t, os.WriteFile(in, []byte("stressed"), 0o600))

	for _, args := range [][]string{
		{"-o", out, in},
		{"-o", out, "--no-mmap", "-b", "3", in},
	} {
		var stderr bytes.Buffer
		require.NoError(t, run(args, &stderr))

		got, err := os.ReadFile(out)
		require.NoError(t, err)
		require.Equal(t, "desserts", string(got))
	}
}

func TestReverseSizeFlag(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	out := filepath.Join(dir, "out")
	require.NoError(t, os.WriteFile(in, []byte("abcdef"), 0o600))

	var stderr bytes.Buffer
	require.NoError(t, run([]string{"-s", "3", "-o", out, in}, &stderr))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "cba", string(got))
}

func TestReverseErrors(t *testing.T) {
	dir := t.TempDir()
	var stderr bytes.Buffer

	err := run([]string{"-o", filepath.Join(dir, "out"), filepath.Join(dir, "missing")}, &stderr)
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)

	in := filepath.Join(dir, "short")
	require.NoError(t, os.WriteFile(in, []byte("ab"), 0o600))
	err = run([]string{"-s", "5", "-o", filepath.Join(dir, "out"), in}, &stderr)
	require.ErrorContains(t, err, "reading input")

	err = run([]string{"a", "b"}, &stderr)
	require.ErrorContains(t, err, "unexpected argument")
}
