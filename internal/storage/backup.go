package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	// BackupSuffix is the file extension for backup files
	BackupSuffix = ".bak"
	// MaxBackupCount is the maximum number of backup files kept per journal
	MaxBackupCount = 3
)

// ErrBackupNotFound is returned when restoring a backup that does not exist
var ErrBackupNotFound = errors.New("backup does not exist")

// GetBackupPath returns the path of backup n for the journal file at path.
// Backups are named journal.org.bak.N; lower numbers are more recent.
func GetBackupPath(path string, n int) string {
	return fmt.Sprintf("%s%s.%d", path, BackupSuffix, n)
}

// rotateBackups shifts .bak.1 -> .bak.2 -> .bak.3, dropping the oldest.
// Missing files are skipped.
func rotateBackups(path string) error {
	if err := os.Remove(GetBackupPath(path, MaxBackupCount)); err != nil && !os.IsNotExist(err) {
		return err
	}

	for i := MaxBackupCount - 1; i >= 1; i-- {
		if err := os.Rename(GetBackupPath(path, i), GetBackupPath(path, i+1)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// CreateBackup copies the journal file to .bak.1 after rotating older backups.
// If the journal doesn't exist no backup is made and no error is returned.
func CreateBackup(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := rotateBackups(path); err != nil {
		return err
	}
	return copyFile(path, GetBackupPath(path, 1))
}

// BackupInfo describes one backup file
type BackupInfo struct {
	Number int    // 1 is the most recent
	Path   string // full path to the backup file
}

// ListBackups returns the existing backups of the journal at path, newest first.
func ListBackups(path string) ([]BackupInfo, error) {
	var backups []BackupInfo
	for i := 1; i <= MaxBackupCount; i++ {
		backupPath := GetBackupPath(path, i)
		if _, err := os.Stat(backupPath); err == nil {
			backups = append(backups, BackupInfo{Number: i, Path: backupPath})
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}
	return backups, nil
}

// RestoreBackup replaces the journal at path with backup n.
// The current journal is backed up first, so a restore can itself be undone.
func RestoreBackup(path string, n int) error {
	if n < 1 || n > MaxBackupCount {
		return fmt.Errorf("invalid backup number %d, must be between 1 and %d", n, MaxBackupCount)
	}

	backupPath := GetBackupPath(path, n)
	if _, err := os.Stat(backupPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("backup %d: %w", n, ErrBackupNotFound)
		}
		return err
	}

	// read before rotating: rotation moves the file we are restoring from
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return err
	}
	if err := CreateBackup(path); err != nil {
		return err
	}
	return writeFileAtomic(path, string(data))
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
