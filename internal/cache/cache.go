// Package cache prunes stale files left behind by earlier runs.
package cache

import (
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/srtdeck/srtdeck/filesystem"
	"github.com/srtdeck/srtdeck/log"
	"github.com/srtdeck/srtdeck/where"
)

// TTL is the age after which a log file or an orphaned socket is removed.
const TTL = 7 * 24 * time.Hour

// CollectGarbage removes expired log files and orphaned player sockets.
func CollectGarbage() {
	now := time.Now()
	removed := prune(where.Logs(), now, func(name string) bool {
		return strings.HasSuffix(name, ".log")
	})
	removed += prune(where.Temp(), now, func(name string) bool {
		return strings.HasSuffix(name, ".sock")
	})

	if removed > 0 {
		log.Infof("cache: removed %d stale files", removed)
	}
}

// prune removes the files under dir accepted by match that are older than TTL.
func prune(dir string, now time.Time, match func(name string) bool) (removed int) {
	api := filesystem.API()
	_ = api.Walk(dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil || info.IsDir() || !match(filepath.Base(path)) {
			return nil
		}
		if now.Sub(info.ModTime()) <= TTL {
			return nil
		}

		if err := api.Remove(path); err != nil {
			log.Warnf("cache: remove %s: %v", path, err)
			return nil
		}
		removed++
		return nil
	})
	return removed
}
