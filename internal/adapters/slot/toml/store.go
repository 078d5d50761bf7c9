// Package toml keeps every slot in a single versioned TOML document.
package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bnema/holameeto/internal/domain"
	"github.com/bnema/holameeto/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	slotsFileMode   = 0o600
	slotsDirMode    = 0o700
	tempFilePattern = ".slots-*.toml.tmp"
)

type Store struct {
	path  string
	clock ports.Clock
	mu    *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SlotStore = (*Store)(nil)

// NewStore returns a store backed by path. Stores opened on the same path
// share one lock.
func NewStore(path string, clock ports.Clock) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("slots path is empty")
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve slots path: %w", err)
	}
	absPath = filepath.Clean(absPath)

	return &Store{path: absPath, clock: clock, mu: lockForPath(absPath)}, nil
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.readSchema()
	if err != nil {
		return "", err
	}

	i := file.indexOf(key)
	if i < 0 {
		return "", fmt.Errorf("slot %q: %w", key, domain.ErrSlotNotFound)
	}

	return file.Slots[i].Value, nil
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("slot key is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.readSchema()
	if err != nil {
		return err
	}

	entry := slotSchema{
		Key:       key,
		Value:     value,
		UpdatedAt: s.clock.Now().UTC().Format(time.RFC3339),
	}
	if i := file.indexOf(key); i >= 0 {
		file.Slots[i] = entry
	} else {
		file.Slots = append(file.Slots, entry)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return s.writeSchema(file)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.readSchema()
	if err != nil {
		return err
	}

	i := file.indexOf(key)
	if i < 0 {
		return nil
	}
	file.Slots = append(file.Slots[:i], file.Slots[i+1:]...)

	return s.writeSchema(file)
}

func (s *Store) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read slots file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode slots file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (s *Store) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(s.path), slotsDirMode); err != nil {
		return fmt.Errorf("create slots directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode slots file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(s.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp slots file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp slots file: %w", err)
	}

	if err := tempFile.Chmod(slotsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp slots file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp slots file: %w", err)
	}

	if err := os.Rename(tempName, s.path); err != nil {
		return fmt.Errorf("replace slots file: %w", err)
	}

	cleanup = false
	return nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
