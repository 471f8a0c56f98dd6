package storage

import (
	"errors"

	"github.com/ouraiii/LearningJourney/internal/models"
)

var (
	// ErrNoSession is returned when there is no active goal to load
	ErrNoSession = errors.New("no active goal session")
	// ErrSessionNotFound is returned when a goal id is unknown
	ErrSessionNotFound = errors.New("goal session not found")
	// ErrNotInitialized is returned by Load before Init has run
	ErrNotInitialized = errors.New("storage not initialized, run 'journey init' first")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Goal sessions
	SaveSession(models.SessionSnapshot) error
	// LoadActiveSession returns the most recently updated goal that has not
	// been archived, or ErrNoSession.
	LoadActiveSession() (models.SessionSnapshot, error)
	GetSession(id string) (models.SessionSnapshot, error)
	// ArchiveSession moves a goal into history. Archiving twice is a no-op.
	ArchiveSession(id string) error
	ListSessions(includeArchived bool) ([]models.GoalRecord, error)

	// Utils
	GetConfigPath() string
}
