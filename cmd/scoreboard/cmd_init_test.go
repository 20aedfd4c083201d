package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/brain-score/scoreboard/internal/projectconfig"
	"github.com/brain-score/scoreboard/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runInit(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newInitCommand()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return output.String(), err
}

func TestInitCommand_Flags(t *testing.T) {
	t.Setenv(projectconfig.EnvSnapshot, "")
	t.Setenv(projectconfig.EnvPort, "")
	dir := t.TempDir()
	out, err := runInit(t, dir, "--snapshot", "snapshot.yaml", "--port", "8080", "--title", "Vision")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	cfg, err := projectconfig.LoadFile(filepath.Join(dir, projectconfig.FileName))
	require.NoError(t, err)
	assert.Equal(t, "snapshot.yaml", cfg.Snapshot.Path)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "Vision", cfg.Page.Title)
}

func TestInitCommand_RequiresSource(t *testing.T) {
	_, err := runInit(t, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshot file or a database URL")
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, projectconfig.FileName)
	require.NoError(t, os.WriteFile(target, []byte("page:\n  title: keep\n"), 0644))

	_, err := runInit(t, dir, "--dsn", "postgres://db")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	_, err = runInit(t, dir, "--dsn", "postgres://db", "--force")
	require.NoError(t, err)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "postgres://db")
}

func TestMergeAnswers(t *testing.T) {
	dst := wizard.Answers{Port: "3000", Title: "Default"}
	mergeAnswers(&dst, wizard.Answers{Title: "Custom", Container: "$web"})
	assert.Equal(t, wizard.Answers{Port: "3000", Title: "Custom", Container: "$web"}, dst)
}
