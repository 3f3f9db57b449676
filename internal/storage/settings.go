package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultPlayerName is used when no name has been set.
const DefaultPlayerName = "Anonymous"

// MaxPlayerNameLen bounds stored player names, in runes.
const MaxPlayerNameLen = 24

const settingPlayerName = "player_name"

// Setting returns the stored value for key, or fallback if unset.
func (s *Store) Setting(key, fallback string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return fallback, nil
	}
	if err != nil {
		return fallback, fmt.Errorf("storage: cannot read setting %s: %w", key, err)
	}
	return value, nil
}

// SetSetting stores value under key, replacing any previous value.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write setting %s: %w", key, err)
	}
	return nil
}

// PlayerName returns the saved player name, or DefaultPlayerName.
func (s *Store) PlayerName() (string, error) {
	return s.Setting(settingPlayerName, DefaultPlayerName)
}

// SetPlayerName saves the player name used for new scores.
// Blank names reset to DefaultPlayerName; long names are truncated.
func (s *Store) SetPlayerName(name string) error {
	return s.SetSetting(settingPlayerName, NormalizePlayerName(name))
}

// NormalizePlayerName trims whitespace, applies the default for blank names
// and truncates to MaxPlayerNameLen runes.
func NormalizePlayerName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultPlayerName
	}
	if utf8.RuneCountInString(name) > MaxPlayerNameLen {
		name = string([]rune(name)[:MaxPlayerNameLen])
	}
	return name
}
