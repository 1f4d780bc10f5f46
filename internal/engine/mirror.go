package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tartampluch/go-ppl/internal/config"
)

// mirrorSource refreshes the local cache file from its configured external
// source: an unconditional overwrite from a filesystem path, or an HTTP(S)
// download when the source is a URL. A positive reloadDeltaHours skips the
// mirror while the cache is fresh enough. A missing filesystem source is
// not an error; the stale cache still serves.
func (l *Loader) mirrorSource(ctx context.Context, entry config.VCardFile, localPath string) error {
	if entry.Source == "" {
		return nil
	}

	if entry.ReloadDeltaHours > 0 {
		if info, err := os.Stat(localPath); err == nil {
			age := l.Clock.Now().Sub(info.ModTime())
			if age < time.Duration(entry.ReloadDeltaHours)*time.Hour {
				slog.Debug(config.MsgMirrorSkipped,
					config.LogKeyComponent, config.CompEngine,
					config.LogKeyFile, localPath,
					config.LogKeySource, entry.Source,
				)
				return nil
			}
		}
	}

	if isHTTPSource(entry.Source) {
		return l.mirrorRemote(ctx, entry, localPath)
	}
	return mirrorFile(entry.Source, localPath)
}

// mirrorRemote downloads the source URL over the local cache, using a
// keyring-backed password when a username is configured.
func (l *Loader) mirrorRemote(ctx context.Context, entry config.VCardFile, localPath string) error {
	if l.Fetcher == nil {
		return fmt.Errorf("%s", config.ErrFetcherMissing)
	}

	pass := ""
	if entry.Username != "" && l.Secret != nil {
		p, err := l.Secret(entry.Username)
		if err != nil {
			slog.Debug(config.MsgKeyringMiss,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err,
			)
		} else {
			pass = p
		}
	}

	body, err := l.Fetcher.Fetch(ctx, entry.Source, entry.Username, pass)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrFileMirror, err)
	}
	defer func() { _ = body.Close() }()

	return writeAtomic(localPath, body)
}

// mirrorFile copies a filesystem source over the local cache. A source
// that does not exist leaves the cache untouched.
func mirrorFile(source, localPath string) error {
	src, err := os.Open(source)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn(config.MsgMirrorSkipped,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeySource, source,
			)
			return nil
		}
		return fmt.Errorf("%s: %w", config.ErrFileMirror, err)
	}
	defer func() { _ = src.Close() }()

	if err := writeAtomic(localPath, src); err != nil {
		return err
	}
	slog.Info(config.MsgFileMirrored,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeySource, source,
		config.LogKeyFile, localPath,
	)
	return nil
}

// writeAtomic streams r into a sibling temp file and renames it over path,
// so a crash mid-write never leaves a truncated cache.
func writeAtomic(path string, r io.Reader) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".mirror-*")
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrFileMirror, err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: %w", config.ErrFileMirror, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: %w", config.ErrFileMirror, err)
	}
	if err := os.Chmod(tmpName, config.FilePermUserRW); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: %w", config.ErrFileMirror, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: %w", config.ErrFileMirror, err)
	}
	return nil
}

func isHTTPSource(source string) bool {
	return strings.HasPrefix(source, config.SchemeHTTP+"://") ||
		strings.HasPrefix(source, config.SchemeHTTPS+"://")
}
