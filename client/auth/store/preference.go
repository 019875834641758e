package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/viant/afs"
)

// Preference persists the remember me flag across sessions
type Preference interface {
	// Load returns persisted value and whether it was found
	Load(ctx context.Context) (bool, bool, error)
	Save(ctx context.Context, rememberMe bool) error
}

type memoryPreference struct {
	mu    sync.RWMutex
	value *bool
}

func (m *memoryPreference) Load(_ context.Context) (bool, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.value == nil {
		return false, false, nil
	}
	return *m.value, true, nil
}

func (m *memoryPreference) Save(_ context.Context, rememberMe bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = &rememberMe
	return nil
}

// NewMemoryPreference creates a process scoped preference
func NewMemoryPreference() Preference {
	return &memoryPreference{}
}

type preferenceSnapshot struct {
	RememberMe bool `json:"rememberMe"`
}

// FilePreference persists the flag as a JSON document at any afs URL
type FilePreference struct {
	mu  sync.Mutex
	URL string
	fs  afs.Service
}

func (f *FilePreference) Load(ctx context.Context) (bool, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	exists, err := f.fs.Exists(ctx, f.URL)
	if err != nil {
		return false, false, fmt.Errorf("failed to check preference %v: %w", f.URL, err)
	}
	if !exists {
		return false, false, nil
	}
	data, err := f.fs.DownloadWithURL(ctx, f.URL)
	if err != nil {
		return false, false, fmt.Errorf("failed to load preference %v: %w", f.URL, err)
	}
	var snap preferenceSnapshot
	if err = json.Unmarshal(data, &snap); err != nil {
		return false, false, fmt.Errorf("invalid preference %v: %w", f.URL, err)
	}
	return snap.RememberMe, true, nil
}

func (f *FilePreference) Save(ctx context.Context, rememberMe bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := json.Marshal(preferenceSnapshot{RememberMe: rememberMe})
	if err != nil {
		return err
	}
	if err = f.fs.Upload(ctx, f.URL, 0o600, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save preference %v: %w", f.URL, err)
	}
	return nil
}

// NewFilePreference creates a preference stored at URL
func NewFilePreference(URL string) *FilePreference {
	return &FilePreference{URL: URL, fs: afs.New()}
}
