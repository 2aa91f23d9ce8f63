package state

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// FileSystem defines the minimum storage operations required by the manager.
// core.RealFS satisfies it.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
}

// Manager owns the persisted state for one run. Fingerprints are mutated in
// memory as units are applied and flushed to disk by a single Save at the
// end of a successful run; a failed run leaves the previous file untouched.
type Manager struct {
	FilePath string
	Current  *State
	FS       FileSystem
	mu       sync.RWMutex
}

// NewManager creates a state manager and loads the existing file.
func NewManager(path string, fs FileSystem) (*Manager, error) {
	mgr := &Manager{
		FilePath: path,
		Current:  NewState(),
		FS:       fs,
	}

	if err := mgr.Load(); err != nil {
		return nil, err
	}

	return mgr, nil
}

// Load reads the state file. A missing file or one that fails to parse
// yields an empty state rather than an error: a corrupt or foreign state
// file must never block re-establishing correct state. Only a real read
// failure propagates.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := m.FS.ReadFile(m.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			m.Current = NewState()
			return nil
		}
		return err
	}

	st := NewState()
	if err := yaml.Unmarshal(data, st); err != nil {
		m.Current = NewState()
		return nil
	}
	if st.Services == nil {
		st.Services = make(map[string]string)
	}
	if st.Version == "" {
		st.Version = "1.0"
	}
	m.Current = st
	return nil
}

// Save serializes the current state and fully overwrites the state file.
// Called at most once per run, after all applies succeed.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Current.LastRun = time.Now()

	data, err := yaml.Marshal(m.Current)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(m.FilePath); dir != "." {
		if err := m.FS.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return m.FS.WriteFile(m.FilePath, data, 0644)
}

// Fingerprint returns the hex SHA-256 digest of the exact content bytes.
// No whitespace or line-ending normalization: equality is byte equality.
func Fingerprint(content string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(content)))
}

// Matches reports whether live content agrees with the recorded fingerprint
// for a unit. A unit with no record always matches: drift is only detectable
// for units decree has applied before.
func (m *Manager) Matches(unit, content string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored, ok := m.Current.Services[unit]
	if !ok {
		return true
	}
	return stored == Fingerprint(content)
}

// Record sets the fingerprint for a just-applied unit. In memory only;
// nothing hits disk until Save.
func (m *Manager) Record(unit, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Current.Services[unit] = Fingerprint(content)
}

// FingerprintFor returns the stored fingerprint for a unit, if any.
func (m *Manager) FingerprintFor(unit string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	fp, ok := m.Current.Services[unit]
	return fp, ok
}

// Units returns the recorded unit names in sorted order.
func (m *Manager) Units() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	units := make([]string, 0, len(m.Current.Services))
	for unit := range m.Current.Services {
		units = append(units, unit)
	}
	sort.Strings(units)
	return units
}
