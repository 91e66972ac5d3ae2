// Package resources manages the teacher's bookmark list of external learning
// resources.
package resources

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidResource = errors.New("invalid resource")
	ErrNothingToExport = errors.New("no resources to export")
)

// Resource is a titled link.
type Resource struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Store keeps resources in insertion order.
type Store interface {
	List(ctx context.Context) ([]Resource, error)
	// Add appends a resource, assigning a new ID.
	Add(ctx context.Context, r Resource) (Resource, error)
	Delete(ctx context.Context, id string) error
	// Replace swaps the whole list, keeping the given IDs and order.
	Replace(ctx context.Context, list []Resource) error
}

// newResource trims r and gives it a fresh ID. Title and URL are required.
func newResource(r Resource) (Resource, error) {
	r.Title = strings.TrimSpace(r.Title)
	r.URL = strings.TrimSpace(r.URL)
	if r.Title == "" || r.URL == "" {
		return Resource{}, fmt.Errorf("%w: title and url are required", ErrInvalidResource)
	}
	r.ID = uuid.NewString()
	return r, nil
}

func checkReplace(list []Resource) error {
	seen := make(map[string]bool, len(list))
	for i, r := range list {
		if r.ID == "" || r.Title == "" || r.URL == "" {
			return fmt.Errorf("%w: item %d needs id, title and url", ErrInvalidResource, i)
		}
		if seen[r.ID] {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidResource, r.ID)
		}
		seen[r.ID] = true
	}
	return nil
}

// MemoryStore is an in-memory Store.
type MemoryStore struct {
	mu   sync.RWMutex
	list []Resource
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) List(_ context.Context) ([]Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Resource(nil), s.list...), nil
}

func (s *MemoryStore) Add(_ context.Context, r Resource) (Resource, error) {
	r, err := newResource(r)
	if err != nil {
		return Resource{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = append(s.list, r)
	return r, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.list {
		if r.ID == id {
			s.list = append(s.list[:i], s.list[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (s *MemoryStore) Replace(_ context.Context, list []Resource) error {
	if err := checkReplace(list); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = append([]Resource(nil), list...)
	return nil
}
