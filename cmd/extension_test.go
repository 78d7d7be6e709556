package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/bank/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExtension_NotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	found, code := RunExtension("nope", nil)
	assert.False(t, found)
	assert.Equal(t, 0, code)
}

func TestRunExtension(t *testing.T) {
	setup(t, store.KindJSON, "")
	bin := t.TempDir()
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))

	script := "#!/bin/sh\necho \"$BANK_STORE $BANK_DATA_FILE\" > \"$1\"\nexit 3\n"
	require.NoError(t, os.WriteFile(filepath.Join(bin, "bk-hello"), []byte(script), 0o755))

	out := filepath.Join(t.TempDir(), "out.txt")
	found, code := RunExtension("hello", []string{out})
	assert.True(t, found)
	assert.Equal(t, 3, code)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "json "+*dataFile, strings.TrimSpace(string(got)))
}
