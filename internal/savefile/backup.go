package savefile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
)

// BackupDir is the directory, relative to the installation, holding backups.
const BackupDir = "BACKUP"

const backupExt = ".zst"

// ErrNoBackup is returned when a backup directory holds none of the files
// of the requested target.
var ErrNoBackup = errors.New("backup not found")

// Backup copies the existing files of t into a new timestamped directory
// under BACKUP/, compressing each with zstd. Files that do not exist yet
// are skipped. It returns the backup directory relative to dir.
func Backup(dir string, t Target, now time.Time) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	rel := filepath.Join(BackupDir, now.UTC().Format("20060102T150405.000")+"-"+t.String())
	dest := filepath.Join(dir, rel)
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return "", fmt.Errorf("create zstd encoder: %w", err)
	}
	defer enc.Close()

	for _, name := range t.Files().All() {
		src := filepath.Join(dir, name)
		data, err := os.ReadFile(src)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("backup %s: %w", name, err)
		}
		out := filepath.Join(dest, filepath.Base(name)+backupExt)
		if err := os.WriteFile(out, enc.EncodeAll(data, nil), 0o644); err != nil {
			return "", fmt.Errorf("backup %s: %w", name, err)
		}
	}
	return rel, nil
}

// Restore decompresses the files of t from backupDir, relative to dir or
// absolute, back into place.
func Restore(dir string, t Target, backupDir string) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if !filepath.IsAbs(backupDir) {
		backupDir = filepath.Join(dir, backupDir)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return fmt.Errorf("create zstd decoder: %w", err)
	}
	defer dec.Close()

	restored := 0
	for _, name := range t.Files().All() {
		packed, err := os.ReadFile(filepath.Join(backupDir, filepath.Base(name)+backupExt))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("restore %s: %w", name, err)
		}
		data, err := dec.DecodeAll(packed, nil)
		if err != nil {
			return fmt.Errorf("restore %s: %w", name, err)
		}
		if err := writeFile(filepath.Join(dir, name), rawBytes(data)); err != nil {
			return err
		}
		restored++
	}
	if restored == 0 {
		return fmt.Errorf("%w in %s", ErrNoBackup, backupDir)
	}
	return nil
}

// ListBackups returns the backup directories under dir, oldest first.
func ListBackups(dir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(dir, BackupDir))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, filepath.Join(BackupDir, e.Name()))
		}
	}
	return out, nil
}

type rawBytes []byte

func (b rawBytes) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b)
	return int64(n), err
}
