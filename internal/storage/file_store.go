package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"github.com/ouraiii/LearningJourney/internal/logger"
	"github.com/ouraiii/LearningJourney/internal/models"
)

const (
	goalKeyPrefix = "goal-"
	activeKey     = "active"
)

// FileStore keeps one JSON document per goal in a diskv directory, plus an
// "active" key naming the current goal. A storage path of "journey.json"
// uses the directory "journey".
type FileStore struct {
	path    string
	baseDir string
	d       *diskv.Diskv
	now     func() time.Time
}

// IsFileStorePath reports whether path selects the JSON file store.
func IsFileStorePath(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".json")
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:    path,
		baseDir: strings.TrimSuffix(path, ".json"),
		now:     time.Now,
	}
}

func (s *FileStore) open() {
	s.d = diskv.New(diskv.Options{
		BasePath:     s.baseDir,
		CacheSizeMax: 1024 * 1024,
		FilePerm:     0600,
		PathPerm:     0700,
	})
}

func (s *FileStore) Init() error {
	if err := os.MkdirAll(s.baseDir, 0700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	s.open()
	return nil
}

func (s *FileStore) Load() error {
	if s.d != nil {
		return nil
	}
	if info, err := os.Stat(s.baseDir); err != nil || !info.IsDir() {
		return ErrNotInitialized
	}
	s.open()
	return nil
}

func (s *FileStore) Close() error {
	s.d = nil
	return nil
}

func goalKey(id string) string {
	return goalKeyPrefix + id
}

func (s *FileStore) write(snap models.SessionSnapshot) error {
	if snap.Entries == nil {
		snap.Entries = []models.DayEntry{}
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return s.d.Write(goalKey(snap.ID), data)
}

func (s *FileStore) read(id string) (models.SessionSnapshot, error) {
	data, err := s.d.Read(goalKey(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.SessionSnapshot{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
		}
		return models.SessionSnapshot{}, err
	}
	var snap models.SessionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return models.SessionSnapshot{}, fmt.Errorf("goal %s: %w", id, err)
	}
	return snap, nil
}

func (s *FileStore) SaveSession(snap models.SessionSnapshot) error {
	if s.d == nil {
		return ErrNotInitialized
	}
	if err := s.write(snap); err != nil {
		return fmt.Errorf("failed to save goal: %w", err)
	}
	if snap.ArchivedAt == nil {
		return s.d.WriteString(activeKey, snap.ID)
	}
	return nil
}

func (s *FileStore) LoadActiveSession() (models.SessionSnapshot, error) {
	if s.d == nil {
		return models.SessionSnapshot{}, ErrNotInitialized
	}
	if !s.d.Has(activeKey) {
		return models.SessionSnapshot{}, ErrNoSession
	}
	id := strings.TrimSpace(s.d.ReadString(activeKey))
	snap, err := s.read(id)
	if errors.Is(err, ErrSessionNotFound) {
		logger.Warn("active goal pointer is dangling", "id", id)
		return models.SessionSnapshot{}, ErrNoSession
	}
	if err != nil {
		return models.SessionSnapshot{}, err
	}
	if snap.ArchivedAt != nil {
		return models.SessionSnapshot{}, ErrNoSession
	}
	return snap, nil
}

func (s *FileStore) GetSession(id string) (models.SessionSnapshot, error) {
	if s.d == nil {
		return models.SessionSnapshot{}, ErrNotInitialized
	}
	return s.read(id)
}

func (s *FileStore) ArchiveSession(id string) error {
	if s.d == nil {
		return ErrNotInitialized
	}
	snap, err := s.read(id)
	if err != nil {
		return err
	}
	if snap.ArchivedAt == nil {
		now := s.now().UTC()
		snap.ArchivedAt = &now
		if err := s.write(snap); err != nil {
			return fmt.Errorf("failed to archive goal: %w", err)
		}
	}
	if s.d.Has(activeKey) && strings.TrimSpace(s.d.ReadString(activeKey)) == id {
		return s.d.Erase(activeKey)
	}
	return nil
}

func (s *FileStore) ListSessions(includeArchived bool) ([]models.GoalRecord, error) {
	if s.d == nil {
		return nil, ErrNotInitialized
	}

	var records []models.GoalRecord
	for key := range s.d.KeysPrefix(goalKeyPrefix, nil) {
		snap, err := s.read(strings.TrimPrefix(key, goalKeyPrefix))
		if err != nil {
			logger.Warn("skipping unreadable goal", "key", key, "error", err)
			continue
		}
		if snap.ArchivedAt != nil && !includeArchived {
			continue
		}
		records = append(records, snap.Summarize())
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (s *FileStore) GetConfigPath() string {
	return s.path
}
