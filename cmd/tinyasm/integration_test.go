package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tinyasm/internal/object"
)

const helloSrc = `
section .data
  msg: "hi"
section .text
  mov %RAX, #msg
  putc %RAX
  hlt
`

func runRoot(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestTranslateThenExecRoundTrip(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "hello.asm")
	objPath := filepath.Join(dir, "hello.obj")
	require.NoError(t, os.WriteFile(srcPath, []byte(helloSrc), 0644))

	require.NoError(t, runRoot(t, "translate", srcPath, "-o", objPath))

	f, err := os.Open(objPath)
	require.NoError(t, err)
	defer f.Close()
	program, err := object.Decode(f)
	require.NoError(t, err)
	assert.Len(t, program.Text.Lines, 3)

	require.NoError(t, runRoot(t, "exec", objPath))
}

func TestRunTranslatesAndExecutesDirectly(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "hello.asm")
	require.NoError(t, os.WriteFile(srcPath, []byte(helloSrc), 0644))

	require.NoError(t, runRoot(t, "run", srcPath))
}

func TestScanReportsAsmFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.asm"), []byte(helloSrc), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.asm"), []byte("section .text\nbogus\n"), 0644))

	require.NoError(t, runRoot(t, "scan", dir))
}

func TestExecRejectsUnreadableFile(t *testing.T) {
	err := runRoot(t, "exec", filepath.Join(t.TempDir(), "missing.obj"))
	assert.Error(t, err)
}
