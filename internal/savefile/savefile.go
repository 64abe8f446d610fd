// Package savefile loads and stores the three save structures of a PM3
// installation and keeps compressed backups of them.
//
// The default data set lives in the installation directory as gamedata.dat,
// clubdata.dat and playdata.dat. Saved games 1-8 live in SAVES/ as
// GAME<n>A.SAV (game data), GAME<n>B.SAV (clubs) and GAME<n>C.SAV (players).
package savefile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/JonMunkholm/pm3import/internal/pm3"
)

// Saved game slots.
const (
	MinGame = 1
	MaxGame = 8
)

var (
	// ErrInvalidGame is returned for a saved game number outside 1-8.
	ErrInvalidGame = errors.New("invalid game number: must be 1-8")

	// ErrTargetChoice is returned when both or neither of a saved game and
	// the base data are selected.
	ErrTargetChoice = errors.New("choose either a saved game or the base data")
)

// Target selects the default data set or one saved game.
type Target struct {
	Base bool `json:"base"`
	Game int  `json:"game,omitempty"`
}

// BaseTarget is the default data set.
var BaseTarget = Target{Base: true}

// GameTarget returns the target for saved game n.
func GameTarget(n int) Target {
	return Target{Game: n}
}

// ParseTarget builds a target from a game number and a base flag. Exactly
// one of them must be set.
func ParseTarget(game int, base bool) (Target, error) {
	switch {
	case base && game != 0:
		return Target{}, ErrTargetChoice
	case base:
		return BaseTarget, nil
	case game == 0:
		return Target{}, ErrTargetChoice
	}
	t := GameTarget(game)
	return t, t.Validate()
}

// Validate checks the game number of a saved game target.
func (t Target) Validate() error {
	if t.Base {
		return nil
	}
	if t.Game < MinGame || t.Game > MaxGame {
		return fmt.Errorf("%w (got %d)", ErrInvalidGame, t.Game)
	}
	return nil
}

func (t Target) String() string {
	if t.Base {
		return "base"
	}
	return fmt.Sprintf("game%d", t.Game)
}

// Files are the paths of one target's structures, relative to the
// installation directory.
type Files struct {
	Game    string
	Clubs   string
	Players string
}

// All returns the three paths in load order.
func (f Files) All() []string {
	return []string{f.Game, f.Clubs, f.Players}
}

// Files returns the relative paths for t.
func (t Target) Files() Files {
	if t.Base {
		return Files{Game: "gamedata.dat", Clubs: "clubdata.dat", Players: "playdata.dat"}
	}
	prefix := filepath.Join("SAVES", fmt.Sprintf("GAME%d", t.Game))
	return Files{Game: prefix + "A.SAV", Clubs: prefix + "B.SAV", Players: prefix + "C.SAV"}
}

// Load reads the three structures of t from dir.
func Load(dir string, t Target) (*pm3.Save, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	files := t.Files()
	s := pm3.NewSave()

	parts := []struct {
		path string
		dst  io.ReaderFrom
	}{
		{files.Game, s.Game},
		{files.Clubs, s.Clubs},
		{files.Players, s.Players},
	}
	for _, p := range parts {
		if err := readFile(filepath.Join(dir, p.path), p.dst); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// LoadClubs reads only the club structure of t.
func LoadClubs(dir string, t Target) (*pm3.ClubData, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	clubs := new(pm3.ClubData)
	if err := readFile(filepath.Join(dir, t.Files().Clubs), clubs); err != nil {
		return nil, err
	}
	return clubs, nil
}

// Store writes the three structures of s to t in dir. Each file is written
// to a temporary file and renamed into place.
func Store(dir string, t Target, s *pm3.Save) error {
	if err := t.Validate(); err != nil {
		return err
	}
	files := t.Files()

	parts := []struct {
		path string
		src  io.WriterTo
	}{
		{files.Game, s.Game},
		{files.Clubs, s.Clubs},
		{files.Players, s.Players},
	}
	for _, p := range parts {
		if err := writeFile(filepath.Join(dir, p.path), p.src); err != nil {
			return err
		}
	}
	return nil
}

func readFile(path string, dst io.ReaderFrom) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open save file: %w", err)
	}
	defer f.Close()

	if _, err := dst.ReadFrom(f); err != nil {
		return fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeFile(path string, src io.WriterTo) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create save directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".pm3-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = src.WriteTo(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
