package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTrainCorrectCheck(t *testing.T) {
	dir := t.TempDir()
	corpus := filepath.Join(dir, "corpus.txt")
	modelPath := filepath.Join(dir, "model.gz")
	require.NoError(t, os.WriteFile(corpus, []byte("the cat sat on the mat\n"), 0o644))

	out, err := run(t, "", "train", "--order", "2", "-o", modelPath, corpus)
	require.NoError(t, err)
	assert.Contains(t, out, "saved 5 words")

	out, err = run(t, "", "correct", "-m", modelPath, "the", "cta")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "cat "), out)

	out, err = run(t, "", "correct", "-m", modelPath, "qqqqqqq")
	require.NoError(t, err)
	assert.Equal(t, "no candidates\n", out)

	out, err = run(t, "the cta sat", "check", "-m", modelPath)
	require.NoError(t, err)
	assert.Equal(t, "the cat sat", out)

	out, err = run(t, "the cta sat", "check", "-v", "-m", modelPath)
	require.NoError(t, err)
	assert.Contains(t, out, "cta -> cat (auto_replace)")
}

func TestTrainFromStdinWithConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "corrector.yaml")
	modelPath := filepath.Join(dir, "model.gz")
	require.NoError(t, os.WriteFile(cfgPath, []byte("order: 2\nextra_words: [gopher]\n"), 0o644))

	out, err := run(t, "the cat sat", "--config", cfgPath, "train", "-o", modelPath)
	require.NoError(t, err)
	assert.Contains(t, out, "saved 4 words")

	out, err = run(t, "", "correct", "-m", modelPath, "gophr")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "gopher "), out)
}

func TestCommandErrors(t *testing.T) {
	_, err := run(t, "", "correct", "-m", filepath.Join(t.TempDir(), "missing.gz"), "cat")
	assert.Error(t, err)

	_, err = run(t, "", "train", "--order", "0", "-o", filepath.Join(t.TempDir(), "m.gz"))
	assert.Error(t, err)

	_, err = run(t, "", "--log-level", "loud", "check")
	assert.Error(t, err)
}
