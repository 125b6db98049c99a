package store

import (
	"fmt"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"whitelister/models"
)

// Store owns every guild's configuration. All reads go through Get,
// which hands out copies, and all writes go through Mutate, which
// serializes same-guild mutations and snapshots the whole store to
// disk afterwards. Nothing else may hold a live GuildConfig.
type Store struct {
	path string

	mu     sync.RWMutex
	guilds map[string]*guildEntry

	// fileMu serializes snapshot writes so a slow write can't be
	// overtaken by a newer one.
	fileMu sync.Mutex
}

type guildEntry struct {
	mu     sync.Mutex
	config *models.GuildConfig
}

// New creates an empty store that snapshots to the given path.
func New(path string) *Store {
	return &Store{
		path:   path,
		guilds: make(map[string]*guildEntry),
	}
}

// Load reads the snapshot written by a previous run. A missing
// snapshot is not an error: the store starts empty and is populated
// as guilds are seen.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		log.Infof("No snapshot at %s, starting with an empty store", s.path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	snapshot := make(map[string]*models.GuildConfig)
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("failed to parse snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for guildID, config := range snapshot {
		if config == nil {
			config = models.NewGuildConfig()
		}
		if config.Wallets == nil {
			config.Wallets = make(map[string]string)
		}
		s.guilds[guildID] = &guildEntry{config: config}
	}
	log.Infof("Loaded %d guild(s) from %s", len(s.guilds), s.path)
	return nil
}

// entry returns the guild's entry, creating a default one on first
// access.
func (s *Store) entry(guildID string) *guildEntry {
	s.mu.RLock()
	e, ok := s.guilds[guildID]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.guilds[guildID]; ok {
		return e
	}
	e = &guildEntry{config: models.NewGuildConfig()}
	s.guilds[guildID] = e
	return e
}

// Get returns a copy of the guild's configuration, creating a default
// one on first access. Callers own the returned value; changes to it
// never reach the store.
func (s *Store) Get(guildID string) *models.GuildConfig {
	e := s.entry(guildID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config.Clone()
}

// Mutate applies fn to the guild's configuration as a single step and
// then writes the snapshot. At most one mutation is in flight per
// guild at a time; mutations for different guilds proceed
// concurrently. A snapshot write error is returned for logging, but
// the in-memory mutation stands.
func (s *Store) Mutate(guildID string, fn func(*models.GuildConfig)) error {
	e := s.entry(guildID)
	e.mu.Lock()
	fn(e.config)
	e.mu.Unlock()
	return s.Persist()
}

// Persist writes the whole store to the snapshot file, replacing the
// previous snapshot. The write goes to a temp file first and is
// renamed into place, so a crash mid-write never corrupts an existing
// snapshot.
func (s *Store) Persist() error {
	s.fileMu.Lock()
	defer s.fileMu.Unlock()

	data, err := yaml.Marshal(s.snapshot())
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// snapshot copies every guild's config under its own lock.
func (s *Store) snapshot() map[string]*models.GuildConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(map[string]*models.GuildConfig, len(s.guilds))
	for guildID, e := range s.guilds {
		e.mu.Lock()
		snapshot[guildID] = e.config.Clone()
		e.mu.Unlock()
	}
	return snapshot
}
