// Package prefs is the app's preference store: the settings and reminder
// records kept in a storage.Provider, mirrored in memory so the session keeps
// working when the provider is missing, read-only or failing.
package prefs

import (
	"sync"

	"github.com/julianstephens/chime/internal/constants"
	"github.com/julianstephens/chime/internal/logger"
	"github.com/julianstephens/chime/internal/models"
	"github.com/julianstephens/chime/internal/storage"
)

// Store loads and saves preference records. Save never fails from the
// caller's point of view. It is safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	provider  storage.Provider
	available bool

	// in-process fallback, always holding the latest value seen or saved
	settings    models.Settings
	reminder    models.ReminderSettings
	hasReminder bool

	// keys whose last durable write failed; reads serve the fallback instead
	stale map[string]bool
}

// New creates a store over provider, which may be nil when storage could not
// be opened. Availability is probed once here and cached.
func New(provider storage.Provider) *Store {
	s := &Store{
		provider: provider,
		settings: models.DefaultSettings(),
		reminder: models.ReminderSettings{TimeRange: models.TimeRange{Interval: constants.DefaultInterval}},
		stale:    make(map[string]bool),
	}
	s.available = probe(provider)
	if !s.available {
		logger.Warn("Preferences storage unavailable, changes will last for this session only")
	}
	return s
}

// probe writes and removes a throwaway key.
func probe(provider storage.Provider) bool {
	if provider == nil {
		return false
	}
	if err := provider.Set(constants.KeyProbe, constants.KeyProbe); err != nil {
		logger.Debug("Storage probe write failed", "error", err)
		return false
	}
	if err := provider.Delete(constants.KeyProbe); err != nil {
		logger.Debug("Storage probe delete failed", "error", err)
		return false
	}
	return true
}

// Available reports the cached probe result.
func (s *Store) Available() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.available
}

// LoadSettings returns the persisted settings, or defaults when none exist or
// storage cannot be read. On first run the defaults are written.
func (s *Store) LoadSettings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadSettingsLocked()
}

func (s *Store) loadSettingsLocked() models.Settings {
	data, ok, err := s.readLocked(constants.KeyUserSettings)
	if !ok {
		// only a confirmed-missing record is a first run
		if err == nil && s.available && !s.stale[constants.KeyUserSettings] {
			if encoded, err := models.EncodeSettings(s.settings); err == nil {
				s.writeLocked(constants.KeyUserSettings, encoded)
			}
		}
		return s.settings
	}

	settings, fixed, err := models.DecodeSettings(data)
	if err != nil {
		logger.Warn("Stored settings are malformed, using defaults", "error", err)
	} else if len(fixed) > 0 {
		logger.Warn("Stored settings had invalid fields, using defaults for them", "fields", fixed)
	}
	s.settings = settings
	return settings
}

// SaveSettings records settings in memory and attempts a durable write.
func (s *Store) SaveSettings(settings models.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = settings
	encoded, err := models.EncodeSettings(settings)
	if err != nil {
		logger.Warn("Could not encode settings", "error", err)
		s.stale[constants.KeyUserSettings] = true
		return
	}
	s.writeLocked(constants.KeyUserSettings, encoded)
}

// LoadReminder returns the reminder record and whether one exists. A missing
// interval falls back to the user's default interval setting.
func (s *Store) LoadReminder() (models.ReminderSettings, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	defaultInterval := s.loadSettingsLocked().DefaultInterval

	data, ok, _ := s.readLocked(constants.KeyReminderSettings)
	if !ok {
		if !s.hasReminder {
			return models.ReminderSettings{TimeRange: models.TimeRange{Interval: defaultInterval}}, false
		}
		return s.reminder, true
	}

	rs, err := models.DecodeReminderSettings(data, defaultInterval)
	if err != nil {
		logger.Warn("Stored reminder is malformed, starting from an empty reminder", "error", err)
	}
	s.reminder = rs
	s.hasReminder = true
	return rs, true
}

// SaveReminder records the reminder in memory and attempts a durable write.
func (s *Store) SaveReminder(rs models.ReminderSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reminder = rs
	s.hasReminder = true
	encoded, err := models.EncodeReminderSettings(rs)
	if err != nil {
		logger.Warn("Could not encode reminder", "error", err)
		s.stale[constants.KeyReminderSettings] = true
		return
	}
	s.writeLocked(constants.KeyReminderSettings, encoded)
}

// readLocked returns the durable value for key. ok is false when storage is
// unavailable, the key is stale or missing, or the read fails; err is set
// only in the last case.
func (s *Store) readLocked(key string) (string, bool, error) {
	if !s.available || s.stale[key] {
		return "", false, nil
	}
	data, ok, err := s.provider.Get(key)
	if err != nil {
		logger.Warn("Could not read preferences, using in-memory copy", "key", key, "error", err)
		return "", false, err
	}
	return data, ok, nil
}

func (s *Store) writeLocked(key, value string) {
	if !s.available {
		return
	}
	if err := s.provider.Set(key, value); err != nil {
		logger.Warn("Could not persist preferences, keeping in-memory copy", "key", key, "error", err)
		s.stale[key] = true
		return
	}
	delete(s.stale, key)
}
