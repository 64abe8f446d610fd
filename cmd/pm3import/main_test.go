package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/pm3import/internal/pm3"
	"github.com/JonMunkholm/pm3import/internal/savefile"
)

const (
	clubsCSV   = "club_id,club_name,league,home_shirt_design,home_shirt_primary_r\n1,Alpha,0,3,200\n2,Beta,1,1,10\n"
	playersCSV = "player_id,club_id,short_name,player_positions,overall\n" +
		"1,1,Keeper,GK,70\n" +
		"2,1,Striker,ST,80\n" +
		"3,2,Back,CB,65\n" +
		"4,2,Ghost,ST,0\n"
)

// cleanEnv isolates a test from the caller's configuration.
func cleanEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PM3_PATH", "DATABASE_URL", "HISTORY_SQLITE_PATH", "IMPORT_BACKUP", "IMPORT_LOANS", "REQUIRE_API_KEY"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "text")
}

func seedInstall(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	save := pm3.NewSave()
	save.Game.SetYear(2024)
	require.NoError(t, savefile.Store(dir, savefile.BaseTarget, save))
	require.NoError(t, savefile.Store(dir, savefile.GameTarget(2), save))
	return dir
}

func writeTables(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	clubs := filepath.Join(dir, "clubs.csv")
	players := filepath.Join(dir, "players.csv")
	require.NoError(t, os.WriteFile(clubs, []byte(clubsCSV), 0o644))
	require.NoError(t, os.WriteFile(players, []byte(playersCSV), 0o644))
	return clubs, players
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestImportCommand(t *testing.T) {
	cleanEnv(t)
	dir := seedInstall(t)
	clubs, players := writeTables(t)

	out, err := execute(t, "import", "--clubs", clubs, "--players", players, "--pm3", dir, "--base")
	require.NoError(t, err)

	assert.Contains(t, out, "Import complete!\n")
	assert.Contains(t, out, "  Clubs imported: 2\n")
	assert.Contains(t, out, "  Players imported: 3\n")
	assert.Contains(t, out, "  Players skipped: 1\n")
	assert.Contains(t, out, "  Base year: 2024\n")
	assert.Contains(t, out, "  Backup: BACKUP")
	assert.True(t, strings.HasSuffix(out, "Data saved successfully!\n"))

	saved, err := savefile.Load(dir, savefile.BaseTarget)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", saved.Clubs[0].Name())

	untouched, err := savefile.Load(dir, savefile.GameTarget(2))
	require.NoError(t, err)
	assert.Empty(t, untouched.Clubs[0].Name())
}

func TestImportCommand_GameWithYearAndNoBackup(t *testing.T) {
	cleanEnv(t)
	dir := seedInstall(t)
	clubs, players := writeTables(t)

	t.Setenv("PM3_PATH", dir)
	out, err := execute(t, "import", "--clubs", clubs, "--players", players,
		"--game", "2", "--year", "2030", "--max-players", "1", "--no-backup")
	require.NoError(t, err)
	assert.Contains(t, out, "  Base year: 2030\n")
	assert.NotContains(t, out, "Backup:")

	saved, err := savefile.Load(dir, savefile.GameTarget(2))
	require.NoError(t, err)
	assert.Equal(t, 2030, saved.Game.Year())
	assert.Len(t, saved.Clubs[0].Squad(), 1)

	backups, err := savefile.ListBackups(dir)
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestImportCommand_Errors(t *testing.T) {
	cleanEnv(t)
	dir := seedInstall(t)
	clubs, players := writeTables(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"both targets", []string{"--game", "1", "--base"}, "none of the others can be"},
		{"no target", nil, "at least one of the flags"},
		{"game out of range", []string{"--game", "9"}, "invalid game number"},
		{"missing save", []string{"--game", "5"}, "open save file"},
		{"negative year", []string{"--base", "--year=-1"}, "invalid season year"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"import", "--clubs", clubs, "--players", players, "--pm3", dir}, tt.args...)
			_, err := execute(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	_, err := execute(t, "import", "--players", players, "--pm3", dir, "--base")
	assert.ErrorContains(t, err, `"clubs" not set`)

	_, err = execute(t, "import", "--clubs", filepath.Join(dir, "nope.csv"), "--players", players, "--pm3", dir, "--base")
	assert.ErrorContains(t, err, "open clubs table")

	_, err = execute(t, "import", "--clubs", clubs, "--players", players, "--base")
	assert.ErrorContains(t, err, "installation path is not configured")
}

func TestKitsCommand(t *testing.T) {
	cleanEnv(t)
	dir := seedInstall(t)
	clubs, players := writeTables(t)

	_, err := execute(t, "import", "--clubs", clubs, "--players", players, "--pm3", dir, "--base")
	require.NoError(t, err)

	out, err := execute(t, "kits", "--pm3", dir, "--base", "--csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "club_idx,club_name,home_design,home_primary_r"))
	assert.True(t, strings.HasPrefix(lines[1], "0,Alpha,3,200,"))

	out, err = execute(t, "kits", "--pm3", dir, "--base")
	require.NoError(t, err)
	assert.Contains(t, out, "[1] Beta\n")
}

func TestBackupsAndRestoreCommands(t *testing.T) {
	cleanEnv(t)
	dir := seedInstall(t)
	clubs, players := writeTables(t)

	out, err := execute(t, "backups", "--pm3", dir)
	require.NoError(t, err)
	assert.Equal(t, "No backups found\n", out)

	_, err = execute(t, "import", "--clubs", clubs, "--players", players, "--pm3", dir, "--base")
	require.NoError(t, err)

	out, err = execute(t, "backups", "--pm3", dir)
	require.NoError(t, err)
	backup := strings.TrimSpace(out)
	require.True(t, strings.HasPrefix(backup, "BACKUP"), backup)

	out, err = execute(t, "restore", "--pm3", dir, "--base", "--backup", backup)
	require.NoError(t, err)
	assert.Equal(t, "Restored base from "+backup+"\n", out)

	saved, err := savefile.Load(dir, savefile.BaseTarget)
	require.NoError(t, err)
	assert.Empty(t, saved.Clubs[0].Name())

	_, err = execute(t, "restore", "--pm3", dir, "--game", "2", "--backup", backup)
	assert.ErrorContains(t, err, "backup not found")
}

func TestRunsCommand(t *testing.T) {
	cleanEnv(t)
	dir := seedInstall(t)
	clubs, players := writeTables(t)

	_, err := execute(t, "runs")
	assert.ErrorContains(t, err, "run history is not configured")

	t.Setenv("HISTORY_SQLITE_PATH", filepath.Join(t.TempDir(), "runs.db"))
	_, err = execute(t, "import", "--clubs", clubs, "--players", players, "--pm3", dir, "--base")
	require.NoError(t, err)
	_, err = execute(t, "import", "--clubs", clubs, "--players", players, "--pm3", dir, "--game", "6")
	require.Error(t, err)

	out, err := execute(t, "runs", "--limit", "5")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "OUTCOME")
	assert.Contains(t, lines[1], "game6")
	assert.Contains(t, lines[1], "failure: ")
	assert.Contains(t, lines[2], "base")
	assert.Contains(t, lines[2], "success")
}
