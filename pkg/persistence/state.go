package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// StateVersion is the current version of the state file format.
const StateVersion = 1

// ErrUnsupportedVersion is returned by Load for state files written by a
// newer format version.
var ErrUnsupportedVersion = errors.New("unsupported state file version")

// SensorState contains the runtime state of a humidity sensor.
type SensorState struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"saved_at"`

	// MeasuredValue is the last reading in 0.01 %RH. 0xFFFF means null.
	MeasuredValue uint16 `json:"measured_value"`

	MinMeasuredValue uint16 `json:"min_measured_value"`
	MaxMeasuredValue uint16 `json:"max_measured_value"`

	// IdentifyTime is the remaining identify time in seconds.
	IdentifyTime uint16 `json:"identify_time,omitempty"`
	IdentifyType uint8  `json:"identify_type,omitempty"`
}

// SensorStateStore manages persistence of sensor state to a JSON file.
type SensorStateStore struct {
	mu   sync.Mutex
	path string
}

// NewSensorStateStore creates a new sensor state store.
func NewSensorStateStore(path string) *SensorStateStore {
	return &SensorStateStore{path: path}
}

// Path returns the state file path.
func (s *SensorStateStore) Path() string {
	return s.path
}

// Save persists the sensor state to disk.
func (s *SensorStateStore) Save(state *SensorState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	state.Version = StateVersion
	if state.SavedAt.IsZero() {
		state.SavedAt = time.Now()
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	// Write then rename so a crash never leaves a truncated file behind.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Load reads the sensor state from disk.
// Returns nil, nil if the file doesn't exist (empty state).
func (s *SensorStateStore) Load() (*SensorState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	state := &SensorState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, err
	}
	if state.Version > StateVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, state.Version)
	}

	return state, nil
}

// Clear removes the state file.
func (s *SensorStateStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
