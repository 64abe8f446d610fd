package savefile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/pm3import/internal/pm3"
)

func TestTarget_Validate(t *testing.T) {
	tests := []struct {
		name    string
		target  Target
		wantErr bool
	}{
		{"base", BaseTarget, false},
		{"first game", GameTarget(1), false},
		{"last game", GameTarget(8), false},
		{"zero", GameTarget(0), true},
		{"nine", GameTarget(9), true},
		{"base ignores game", Target{Base: true, Game: 42}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.target.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidGame)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseTarget(t *testing.T) {
	target, err := ParseTarget(0, true)
	require.NoError(t, err)
	assert.Equal(t, BaseTarget, target)

	target, err = ParseTarget(5, false)
	require.NoError(t, err)
	assert.Equal(t, GameTarget(5), target)

	_, err = ParseTarget(2, true)
	assert.ErrorIs(t, err, ErrTargetChoice)
	_, err = ParseTarget(0, false)
	assert.ErrorIs(t, err, ErrTargetChoice)
	_, err = ParseTarget(11, false)
	assert.ErrorIs(t, err, ErrInvalidGame)
}

func TestTarget_Files(t *testing.T) {
	assert.Equal(t, Files{Game: "gamedata.dat", Clubs: "clubdata.dat", Players: "playdata.dat"}, BaseTarget.Files())

	f := GameTarget(3).Files()
	assert.Equal(t, filepath.Join("SAVES", "GAME3A.SAV"), f.Game)
	assert.Equal(t, filepath.Join("SAVES", "GAME3B.SAV"), f.Clubs)
	assert.Equal(t, filepath.Join("SAVES", "GAME3C.SAV"), f.Players)
	assert.Equal(t, "game3", GameTarget(3).String())
}

func sampleSave() *pm3.Save {
	s := pm3.NewSave()
	s.Game.SetYear(2025)
	s.Clubs[0].SetName("Alpha")
	s.Clubs[0].SetPlayerSlot(0, 7)
	s.Players[7].SetName("Striker")
	return s
}

func TestStoreLoad_RoundTrip(t *testing.T) {
	for _, target := range []Target{BaseTarget, GameTarget(2)} {
		t.Run(target.String(), func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, Store(dir, target, sampleSave()))

			info, err := os.Stat(filepath.Join(dir, target.Files().Clubs))
			require.NoError(t, err)
			assert.Equal(t, int64(pm3.ClubDataSize), info.Size())

			got, err := Load(dir, target)
			require.NoError(t, err)
			assert.Equal(t, 2025, got.Game.Year())
			assert.Equal(t, "Alpha", got.Clubs[0].Name())
			assert.Equal(t, []int{7}, got.Clubs[0].Squad())
			assert.Equal(t, "Striker", got.Players[7].Name())

			clubs, err := LoadClubs(dir, target)
			require.NoError(t, err)
			assert.Equal(t, "Alpha", clubs[0].Name())
		})
	}
}

func TestStore_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Store(dir, BaseTarget, sampleSave()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"gamedata.dat", "clubdata.dat", "playdata.dat"}, names)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(dir, BaseTarget)
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, Store(dir, BaseTarget, sampleSave()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "playdata.dat"), []byte("short"), 0o644))
	_, err = Load(dir, BaseTarget)
	assert.ErrorIs(t, err, pm3.ErrSize)

	_, err = Load(dir, GameTarget(12))
	assert.ErrorIs(t, err, ErrInvalidGame)
}

func TestBackupRestore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Store(dir, BaseTarget, sampleSave()))

	now := time.Date(2025, 7, 1, 12, 30, 0, 0, time.UTC)
	rel, err := Backup(dir, BaseTarget, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(BackupDir, "20250701T123000.000-base"), rel)

	for _, name := range BaseTarget.Files().All() {
		_, err := os.Stat(filepath.Join(dir, rel, name+".zst"))
		assert.NoError(t, err, name)
	}

	changed := pm3.NewSave()
	changed.Clubs[0].SetName("Overwritten")
	require.NoError(t, Store(dir, BaseTarget, changed))

	require.NoError(t, Restore(dir, BaseTarget, rel))
	got, err := Load(dir, BaseTarget)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", got.Clubs[0].Name())

	backups, err := ListBackups(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{rel}, backups)
}

func TestBackup_MissingFilesSkipped(t *testing.T) {
	dir := t.TempDir()

	rel, err := Backup(dir, GameTarget(1), time.Now())
	require.NoError(t, err)

	err = Restore(dir, GameTarget(1), rel)
	assert.ErrorIs(t, err, ErrNoBackup)
}

func TestListBackups_None(t *testing.T) {
	backups, err := ListBackups(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, backups)
}
