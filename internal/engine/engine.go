// Package engine assembles the contact store from configured vCard
// sources and executes resolved verbs through the action dispatcher.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/tartampluch/go-ppl/internal/config"
	"github.com/tartampluch/go-ppl/internal/contact"
	"github.com/tartampluch/go-ppl/internal/parser"
	"github.com/zalando/go-keyring"
)

// FileIssue records one per-file load failure. Load collects these instead
// of aborting; the engine serves whatever contacts did parse.
type FileIssue struct {
	File string
	Err  error
}

// Loader builds contact stores. Each Load produces a complete new Store;
// callers publish it by swapping the reference they hold, so readers never
// observe a partially rebuilt directory.
type Loader struct {
	Clock   Clock
	Fetcher SourceFetcher

	// Secret looks up the basic-auth password for a source username.
	Secret func(user string) (string, error)

	// BaseDir anchors relative cache filenames. Defaults to the app config
	// directory.
	BaseDir string
}

// NewLoader wires the production dependencies: real clock, HTTP fetcher
// and the system keyring.
func NewLoader() *Loader {
	return &Loader{
		Clock:   RealClock{},
		Fetcher: NewHTTPFetcher(),
		Secret: func(user string) (string, error) {
			return keyring.Get(config.KeyringService, user)
		},
	}
}

// Load runs the full mirror-parse-index sequence over every configured
// vCard file and returns the assembled store plus per-file issues. When no
// files are configured a bundled sample is installed and loaded so the
// engine always starts with something to suggest.
func (l *Loader) Load(ctx context.Context, s *config.Settings) (*contact.Store, []FileIssue) {
	start := l.now()
	log := slog.With(config.LogKeyComponent, config.CompEngine)
	log.InfoContext(ctx, config.MsgLoadStarted,
		config.LogKeyFiles, len(s.Files),
		config.LogKeyMode, s.ParserMode,
	)

	baseDir, err := l.baseDir()
	if err != nil {
		return contact.NewStore(nil), []FileIssue{{Err: err}}
	}

	entries := s.Files
	if len(entries) == 0 {
		samplePath, err := installSample(baseDir)
		if err != nil {
			return contact.NewStore(nil), []FileIssue{{File: samplePath, Err: err}}
		}
		entries = []config.VCardFile{{File: config.SampleVCFName}}
	}

	var contacts []contact.Contact
	var issues []FileIssue

	for _, entry := range entries {
		localPath := entry.File
		if !filepath.IsAbs(localPath) {
			localPath = filepath.Join(baseDir, localPath)
		}

		if err := l.mirrorSource(ctx, entry, localPath); err != nil {
			issues = append(issues, FileIssue{File: localPath, Err: err})
			// A failed mirror is not fatal; the previous cache may still parse.
		}

		parsed, err := l.loadFile(localPath, s.ParserMode)
		if err != nil {
			log.Warn(config.MsgFileSkipped,
				config.LogKeyFile, localPath,
				config.LogKeyError, err,
			)
			issues = append(issues, FileIssue{File: localPath, Err: err})
			continue
		}
		contacts = append(contacts, parsed...)
	}

	log.Info(config.MsgLoadFinished,
		config.LogKeyCount, len(contacts),
		config.LogKeyWarnings, len(issues),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return contact.NewStore(contacts), issues
}

// loadFile parses one local vCard file with the configured strategy.
func (l *Loader) loadFile(path, mode string) ([]contact.Contact, error) {
	slog.Info(config.MsgFileLoading,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyFile, path,
	)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrFileOpen, err)
	}
	defer func() { _ = f.Close() }()

	var contacts []contact.Contact
	switch mode {
	case config.ParserModeSimple:
		contacts, err = parser.ParseSimple(f)
	case config.ParserModeStructured, "":
		contacts, err = parser.Parse(f)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, mode)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	return contacts, nil
}

func (l *Loader) baseDir() (string, error) {
	if l.BaseDir != "" {
		return l.BaseDir, nil
	}
	return config.AppConfigDir()
}

func (l *Loader) now() time.Time {
	if l.Clock == nil {
		return time.Now()
	}
	return l.Clock.Now()
}

// installSample writes the bundled demo vCard file into dir unless one is
// already there, and returns its path.
func installSample(dir string) (string, error) {
	path := filepath.Join(dir, config.SampleVCFName)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	slog.Info(config.MsgSampleInstall,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyFile, path,
	)
	if err := os.WriteFile(path, sampleVCF, config.FilePermUserRW); err != nil {
		return path, fmt.Errorf("%s: %w", config.ErrSampleInstall, err)
	}
	return path, nil
}
