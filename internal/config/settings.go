package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Settings holds the user-editable configuration loaded from the TOML file.
// A zero Settings value is usable; every accessor falls back to a default.
type Settings struct {
	// CallProtocol is the URL template used to dial a number resolved by the
	// generic Call verb. It must contain a %s placeholder.
	CallProtocol string `toml:"call_protocol"`

	// CellProtocol, HomeProtocol override CallProtocol for the type-specific
	// dial verbs.
	CellProtocol string `toml:"cell_protocol"`
	HomeProtocol string `toml:"home_protocol"`

	// MailProtocol is the URL template for the Mail verb.
	MailProtocol string `toml:"mail_protocol"`

	// ParserMode selects the vCard decoding strategy: "structured" or "simple".
	ParserMode string `toml:"parser_mode"`

	// Language is the UI language (ISO 639-1).
	Language string `toml:"language"`

	// Files lists the vCard sources feeding the contact store.
	Files []VCardFile `toml:"vcard"`
}

// VCardFile describes one configured vCard source.
type VCardFile struct {
	// File is the local cache filename, relative to the app config dir
	// unless absolute.
	File string `toml:"file"`

	// Source is an optional external path or http(s) URL mirrored over File
	// before each load.
	Source string `toml:"source"`

	// ReloadDeltaHours is the advisory refresh cadence for Source. Zero means
	// mirror on every load.
	ReloadDeltaHours int `toml:"reload_delta_hours"`

	// Username selects the keyring credential for HTTP sources requiring
	// basic auth.
	Username string `toml:"username"`
}

// LoadSettings reads the settings file at path. A missing file is not an
// error; defaults apply. A file that exists but does not decode is.
func LoadSettings(path string) (*Settings, error) {
	s := &Settings{}

	if path == "" {
		dir, err := AppConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, SettingsFileName)
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		slog.Debug(MsgUsingDefaults,
			LogKeyComponent, CompConfig,
			LogKeyFile, path,
		)
		s.applyDefaults()
		return s, nil
	}

	if _, err := toml.DecodeFile(path, s); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSettingsDecode, err)
	}
	s.applyDefaults()

	if err := s.validate(); err != nil {
		return nil, err
	}

	slog.Info(MsgSettingsLoaded,
		LogKeyComponent, CompConfig,
		LogKeyFile, path,
		LogKeyFiles, len(s.Files),
	)
	return s, nil
}

// applyDefaults fills empty fields with the built-in defaults.
func (s *Settings) applyDefaults() {
	if s.CallProtocol == "" {
		s.CallProtocol = DefaultCallProtocol
	}
	if s.CellProtocol == "" {
		s.CellProtocol = s.CallProtocol
	}
	if s.HomeProtocol == "" {
		s.HomeProtocol = s.CallProtocol
	}
	if s.MailProtocol == "" {
		s.MailProtocol = DefaultMailProtocol
	}
	if s.ParserMode == "" {
		s.ParserMode = DefaultParserMode
	}
	if s.Language == "" {
		s.Language = DefaultLanguage
	}
}

// validate rejects settings the engine cannot act on.
func (s *Settings) validate() error {
	for _, p := range []string{s.CallProtocol, s.CellProtocol, s.HomeProtocol, s.MailProtocol} {
		if !strings.Contains(p, ProtocolPlaceholder) {
			return fmt.Errorf("%s: %q", ErrSettingsProtocol, p)
		}
	}
	if s.ParserMode != ParserModeStructured && s.ParserMode != ParserModeSimple {
		return fmt.Errorf("%s: %q", ErrModeUnsupport, s.ParserMode)
	}
	return nil
}

// ProtocolFor returns the URL template associated with a verb name.
// Unknown verbs dial with the generic call protocol.
func (s *Settings) ProtocolFor(verbName string) string {
	switch verbName {
	case VerbMail:
		return s.MailProtocol
	case VerbCell:
		return s.CellProtocol
	case VerbHome:
		return s.HomeProtocol
	default:
		return s.CallProtocol
	}
}

// AppConfigDir resolves (and creates) the per-user configuration directory.
func AppConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrConfigDir, err)
	}
	dir := filepath.Join(base, AppID)
	if err := os.MkdirAll(dir, DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", ErrCreateDir, err)
	}
	return dir, nil
}
