// Package settings provides the persisted key/value store the radar and the
// game read user preferences from.
package settings

import (
	"compress/flate"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	ErrNotFound  = errors.New("settings: key not found")
	ErrWrongType = errors.New("settings: wrong value type")
)

// File is a settings store backed by a flate-compressed msgpack file. A
// File with an empty path lives in memory only. It is safe for concurrent
// use.
type File struct {
	mu     sync.Mutex
	path   string
	values map[string]any
	dirty  bool
}

// NewMemory returns a store that is never written to disk.
func NewMemory() *File {
	return &File{values: make(map[string]any)}
}

// Load reads the store at path. A missing file is not an error; the store
// starts empty and is created on the first Save.
func Load(path string) (*File, error) {
	s := &File{path: path, values: make(map[string]any)}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	} else if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}
	defer f.Close()

	fr := flate.NewReader(f)
	defer fr.Close()

	var raw map[string]any
	if err := msgpack.NewDecoder(fr).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode settings %s: %w", path, err)
	}
	for k, v := range raw {
		if nv, ok := normalize(v); ok {
			s.values[k] = nv
		}
	}
	return s, nil
}

// Path returns the backing file, or "" for an in-memory store.
func (s *File) Path() string {
	return s.path
}

// Save writes the store if it changed since the last save.
func (s *File) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" || !s.dirty {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := s.write(tmp); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("save settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	s.dirty = false
	return nil
}

func (s *File) write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fw, err := flate.NewWriter(f, flate.BestSpeed)
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(fw).Encode(s.values); err != nil {
		return err
	}
	if err := fw.Close(); err != nil {
		return err
	}
	return f.Sync()
}

// Set stores v under key. Booleans and numbers are accepted; integers are
// stored as float64.
func (s *File) Set(key string, v any) error {
	nv, ok := normalize(v)
	if !ok {
		return fmt.Errorf("%w: %s is %T", ErrWrongType, key, v)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = nv
	s.dirty = true
	return nil
}

// Delete removes key. Missing keys are ignored.
func (s *File) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; ok {
		delete(s.values, key)
		s.dirty = true
	}
}

// Keys returns the stored keys in sorted order.
func (s *File) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (s *File) GetBool(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s is %T, want bool", ErrWrongType, key, v)
	}
	return b, nil
}

func (s *File) GetFloat(key string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: %s is %T, want number", ErrWrongType, key, v)
	}
	return f, nil
}

// Bool returns the boolean stored under key, or def when the key is
// missing or holds another type.
func (s *File) Bool(key string, def bool) bool {
	if b, err := s.GetBool(key); err == nil {
		return b
	}
	return def
}

// Float returns the number stored under key, or def when the key is
// missing or holds another type.
func (s *File) Float(key string, def float64) float64 {
	if f, err := s.GetFloat(key); err == nil {
		return f
	}
	return def
}

// Toggle flips the boolean under key, starting from def, and returns the
// new value.
func (s *File) Toggle(key string, def bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.values[key].(bool)
	if !ok {
		cur = def
	}
	s.values[key] = !cur
	s.dirty = true
	return !cur
}

// Step adds delta to the number under key, starting from def, clamps the
// result to [lo, hi] and returns it.
func (s *File) Step(key string, def, delta, lo, hi float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.values[key].(float64)
	if !ok {
		cur = def
	}
	cur = min(max(cur+delta, lo), hi)
	s.values[key] = cur
	s.dirty = true
	return cur
}

// normalize maps the value types msgpack may hand back onto bool and
// float64.
func normalize(v any) (any, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	return nil, false
}
