package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ArchiveHistory moves the history database into an archive directory next
// to it, adding a timestamp to the name. A fresh, empty history is created
// on the next translation. It returns the archive path.
func ArchiveHistory(dbPath string) (string, error) {
	// Check if the database exists
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("history database does not exist: %s", dbPath)
	}

	archiveDir := filepath.Join(filepath.Dir(dbPath), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	ext := filepath.Ext(dbPath)
	base := strings.TrimSuffix(filepath.Base(dbPath), ext)

	now := time.Now()
	archivePath := filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", base, now.Format("20060102-150405"), ext))

	// Check if archive already exists (unlikely but possible)
	if _, err := os.Stat(archivePath); err == nil {
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", base, now.Format("20060102-150405.000000"), ext))
	}

	if err := os.Rename(dbPath, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive history database: %w", err)
	}

	// SQLite side files belong to the moved database
	for _, suffix := range []string{"-wal", "-shm", "-journal"} {
		if _, err := os.Stat(dbPath + suffix); err == nil {
			os.Rename(dbPath+suffix, archivePath+suffix)
		}
	}

	return archivePath, nil
}
