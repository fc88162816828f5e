package sandbox

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/raizdigital/especies/pkg/species"
)

// ErrNotFound is returned when no species has the requested id.
var ErrNotFound = errors.New("species not found")

// Store is a thread-safe in-memory species collection. Ids are assigned in
// increasing order and never reused.
type Store struct {
	mu     sync.RWMutex
	items  map[int64]species.Species
	nextID int64
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		items:  make(map[int64]species.Species),
		nextID: 1,
	}
}

// List returns all species sorted by id.
func (s *Store) List() []species.Species {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]species.Species, 0, len(s.items))
	for _, item := range s.items {
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Get retrieves a species by id.
func (s *Store) Get(id int64) (species.Species, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	return item, ok
}

// Create stores a new species and returns it with its assigned id.
func (s *Store) Create(p species.Payload) species.Species {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := species.Species{ID: s.nextID, Name: p.Name, Description: p.Description}
	s.items[item.ID] = item
	s.nextID++
	return item
}

// Replace overwrites the fields of an existing species.
func (s *Store) Replace(id int64, p species.Payload) (species.Species, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return species.Species{}, ErrNotFound
	}
	item := species.Species{ID: id, Name: p.Name, Description: p.Description}
	s.items[id] = item
	return item, nil
}

// Delete removes a species by id. Returns true if deleted, false if not found.
func (s *Store) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[id]; exists {
		delete(s.items, id)
		return true
	}
	return false
}

// Count returns the number of stored species.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// seedFile is the YAML layout of a seed file:
//
//	especies:
//	  - nome: Ipê
//	    descricao: Amarelo
type seedFile struct {
	Species []struct {
		Name        string `yaml:"nome"`
		Description string `yaml:"descricao"`
	} `yaml:"especies"`
}

// Seed creates one species per entry of the YAML document in data and
// returns how many were added.
func (s *Store) Seed(data []byte) (int, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return 0, fmt.Errorf("parse seed: %w", err)
	}
	for i, entry := range f.Species {
		if entry.Name == "" {
			return i, fmt.Errorf("seed entry %d: nome is required", i+1)
		}
		s.Create(species.Payload{Name: entry.Name, Description: entry.Description})
	}
	return len(f.Species), nil
}

// SeedFile reads a seed file from path and seeds the store with it.
func (s *Store) SeedFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}
	return s.Seed(data)
}
