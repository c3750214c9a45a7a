// Package filebackup mirrors the last export payload to a local file. The
// file is overwritten every cycle; it exists so a dead collector does not
// mean a lost batch.
package filebackup

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Dyls123/RustStatsExporter/internal/app/ports"
)

type Writer struct {
	Path string
}

// Write replaces the backup atomically: a half-written file would be worse
// than a stale one.
func (w *Writer) Write(payload []byte) error {
	if w.Path == "" {
		return fmt.Errorf("backup path not configured")
	}
	dir := filepath.Dir(w.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(w.Path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create backup temp file: %w", err)
	}
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write backup: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close backup temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), w.Path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace backup: %w", err)
	}
	return nil
}

var _ ports.BackupWriter = (*Writer)(nil)
