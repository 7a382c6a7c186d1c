// Package store is the data access layer: one contract over two
// interchangeable backends, a Postgres cloud store and a file-backed local
// demo store. Backend choice is re-evaluated on every call so flipping the
// useCloudBackend setting takes effect without a restart.
package store

import (
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"water-monitor-system/models"
	"water-monitor-system/notify"
)

// ErrNotAuthenticated is returned before attempting any cloud mutation
// without a resolved identity. Reads return empty results instead.
var ErrNotAuthenticated = errors.New("not authenticated")

// Storage keys of the local backend, one JSON collection each.
const (
	keyReadings    = "sensor-readings"
	keyPredictions = "predictions"
	keyReports     = "reports"
	keyProfiles    = "profiles"
	keyAttempts    = "quiz-attempts"
	keySettings    = "settings"
)

// BackendSettings is the persisted settings blob consulted per call.
type BackendSettings struct {
	UseCloudBackend bool `json:"useCloudBackend"`
}

// DataStore routes every domain operation to the cloud or the local backend.
// db may be nil (no cloud configured); local is always present. hub and rdb
// are optional.
type DataStore struct {
	db    *gorm.DB
	local *LocalStore
	rdb   *redis.Client
	hub   *notify.Hub

	now func() time.Time // injected for tests
}

func New(db *gorm.DB, local *LocalStore, rdb *redis.Client, hub *notify.Hub) *DataStore {
	return &DataStore{
		db:    db,
		local: local,
		rdb:   rdb,
		hub:   hub,
		now:   time.Now,
	}
}

// CloudConfigured reports whether a relational backend is wired at all.
func (s *DataStore) CloudConfigured() bool { return s.db != nil }

// useCloud decides the backend for one call. The settings blob is re-read
// every time, deliberately uncached: a settings change applies to the next
// operation. Absent settings default to cloud when cloud is configured.
func (s *DataStore) useCloud() bool {
	var settings BackendSettings
	ok, err := s.local.Get(keySettings, &settings)
	if err != nil || !ok {
		return s.db != nil
	}
	return settings.UseCloudBackend && s.db != nil
}

// SaveBackendSettings persists the settings blob the next useCloud call reads.
func (s *DataStore) SaveBackendSettings(settings BackendSettings) error {
	return s.local.Put(keySettings, settings)
}

// Seeded local collection accessors. Seeding is idempotent per key: the first
// read of an absent key generates and persists the sample dataset slice for
// that key, every later read returns the stored collection untouched.

func (s *DataStore) localReadings() ([]models.SensorReading, error) {
	var out []models.SensorReading
	ok, err := s.local.Get(keyReadings, &out)
	if err != nil {
		return nil, err
	}
	if ok {
		return out, nil
	}
	out = generateDemoDataset(s.now()).Readings
	if err := s.local.Put(keyReadings, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *DataStore) localPredictions() ([]models.Prediction, error) {
	var out []models.Prediction
	ok, err := s.local.Get(keyPredictions, &out)
	if err != nil {
		return nil, err
	}
	if ok {
		return out, nil
	}
	out = generateDemoDataset(s.now()).Predictions
	if err := s.local.Put(keyPredictions, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *DataStore) localReports() ([]models.Report, error) {
	var out []models.Report
	ok, err := s.local.Get(keyReports, &out)
	if err != nil {
		return nil, err
	}
	if ok {
		return out, nil
	}
	out = generateDemoDataset(s.now()).Reports
	if err := s.local.Put(keyReports, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *DataStore) localProfiles() ([]models.Profile, error) {
	var out []models.Profile
	ok, err := s.local.Get(keyProfiles, &out)
	if err != nil {
		return nil, err
	}
	if ok {
		return out, nil
	}
	out = generateDemoDataset(s.now()).Profiles
	if err := s.local.Put(keyProfiles, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *DataStore) localAttempts() ([]models.QuizAttempt, error) {
	var out []models.QuizAttempt
	ok, err := s.local.Get(keyAttempts, &out)
	if err != nil {
		return nil, err
	}
	if ok {
		return out, nil
	}
	out = generateDemoDataset(s.now()).Attempts
	if err := s.local.Put(keyAttempts, out); err != nil {
		return nil, err
	}
	return out, nil
}
