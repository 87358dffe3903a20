package client

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
)

// KeyValue is the storage backing an Overlay, keyed by user id. Swapping the
// implementation (memory, file, server-persisted flag) never touches overlay
// callers.
type KeyValue interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

// Overlay is the per-user soft-hide list: activity ids a student removed
// from their own view without deleting server state. Entries never leak
// across users sharing a device and are only consulted for the student role.
type Overlay struct {
	mu    sync.Mutex
	store KeyValue
}

// NewOverlay builds an overlay on top of the given store.
func NewOverlay(store KeyValue) *Overlay {
	return &Overlay{store: store}
}

func overlayKey(userID uint) string {
	return fmt.Sprintf("hidden_activities:%d", userID)
}

// Hide adds the activity to the user's hidden set. Hiding an already hidden
// activity leaves the set unchanged.
func (o *Overlay) Hide(userID, activityID uint) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	hidden, err := o.load(userID)
	if err != nil {
		return err
	}

	if _, ok := hidden[activityID]; ok {
		return nil
	}

	hidden[activityID] = struct{}{}

	return o.save(userID, hidden)
}

// IsHidden reports whether the user has hidden the activity.
func (o *Overlay) IsHidden(userID, activityID uint) (bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	hidden, err := o.load(userID)
	if err != nil {
		return false, err
	}

	_, ok := hidden[activityID]

	return ok, nil
}

// ListHidden returns the user's hidden activity ids in ascending order.
func (o *Overlay) ListHidden(userID uint) ([]uint, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	hidden, err := o.load(userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(hidden))
	for id := range hidden {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids, nil
}

func (o *Overlay) load(userID uint) (map[uint]struct{}, error) {
	raw, ok, err := o.store.Get(overlayKey(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to read overlay: %w", err)
	}

	hidden := make(map[uint]struct{})
	if !ok || len(raw) == 0 {
		return hidden, nil
	}

	var ids []uint
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("failed to decode overlay: %w", err)
	}

	for _, id := range ids {
		hidden[id] = struct{}{}
	}

	return hidden, nil
}

func (o *Overlay) save(userID uint, hidden map[uint]struct{}) error {
	ids := make([]uint, 0, len(hidden))
	for id := range hidden {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode overlay: %w", err)
	}

	if err := o.store.Set(overlayKey(userID), raw); err != nil {
		return fmt.Errorf("failed to write overlay: %w", err)
	}

	return nil
}

// MemoryStore is an in-process KeyValue, used in tests and short-lived
// sessions.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}

	out := make([]byte, len(value))
	copy(out, value)

	return out, true, nil
}

func (s *MemoryStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[key] = stored

	return nil
}

// FileStore persists the KeyValue map as a single JSON file so overlay
// entries survive restarts on the same device.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore builds a store backed by the JSON file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return nil, false, err
	}

	value, ok := data[key]
	if !ok {
		return nil, false, nil
	}

	return value, true, nil
}

func (s *FileStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return err
	}

	data[key] = value

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode store file: %w", err)
	}

	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}

	return nil
}

func (s *FileStore) read() (map[string]json.RawMessage, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]json.RawMessage), nil
		}

		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	data := make(map[string]json.RawMessage)
	if len(raw) == 0 {
		return data, nil
	}

	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode store file: %w", err)
	}

	return data, nil
}
