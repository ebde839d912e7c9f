// Package backup keeps dated copies of the file cart snapshots.
package backup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

const stampLayout = "2006-01-02_15-04-05"

// Daily copies Src into a timestamped folder under Dest once a day at Hour:Minute
// and removes copies older than Retention.
type Daily struct {
	Src       string
	Dest      string
	Retention time.Duration
	Hour      int
	Minute    int
	Log       *zap.Logger

	now func() time.Time
}

func (d *Daily) clock() time.Time {
	if d.now != nil {
		return d.now()
	}
	return time.Now()
}

func (d *Daily) log() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}

// Next is the first scheduled run strictly after t.
func (d *Daily) Next(t time.Time) time.Time {
	next := time.Date(t.Year(), t.Month(), t.Day(), d.Hour, d.Minute, 0, 0, t.Location())
	if !next.After(t) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Run blocks until ctx is done, taking a backup at every scheduled time.
func (d *Daily) Run(ctx context.Context) {
	for {
		next := d.Next(d.clock())
		d.log().Info("next cart backup scheduled", zap.Time("at", next))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if dir, err := d.Snapshot(); err != nil {
			d.log().Error("cart backup failed", zap.Error(err))
		} else {
			d.log().Info("cart snapshots backed up", zap.String("dir", dir))
		}
		d.Cleanup()
	}
}

// Snapshot copies Src now and returns the folder it wrote.
func (d *Daily) Snapshot() (string, error) {
	dest := filepath.Join(d.Dest, d.clock().Format(stampLayout))
	if err := copyDir(d.Src, dest); err != nil {
		return "", fmt.Errorf("back up %s: %w", d.Src, err)
	}
	return dest, nil
}

// Cleanup removes backup folders older than Retention.
func (d *Daily) Cleanup() {
	entries, err := os.ReadDir(d.Dest)
	if err != nil {
		d.log().Error("read backup directory", zap.Error(err))
		return
	}

	cutoff := d.clock().Add(-d.Retention)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		taken, err := time.ParseInLocation(stampLayout, entry.Name(), d.clock().Location())
		if err != nil || !taken.Before(cutoff) {
			continue
		}
		folder := filepath.Join(d.Dest, entry.Name())
		if err := os.RemoveAll(folder); err != nil {
			d.log().Error("remove old backup", zap.String("dir", folder), zap.Error(err))
			continue
		}
		d.log().Info("removed old backup", zap.String("dir", folder))
	}
}

// copyDir mirrors the regular files under src into dest. Hidden entries are
// skipped: the file store stages each write in a ".cart-*" temp file that may
// be renamed away mid-walk, and a half-written one is not a snapshot.
func copyDir(src, dest string) error {
	return filepath.WalkDir(src, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel != "." && strings.HasPrefix(entry.Name(), ".") {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		target := filepath.Join(dest, rel)
		switch {
		case entry.IsDir():
			return os.MkdirAll(target, 0o755)
		case entry.Type().IsRegular():
			data, err := os.ReadFile(path)
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			if err != nil {
				return err
			}
			return os.WriteFile(target, data, 0o644)
		}
		return nil
	})
}
