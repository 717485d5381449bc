package item

import (
	"errors"
	"sync"

	"github.com/gjone124/restaurant-finder-backend/internal/ids"
)

var (
	ErrNotFound    = errors.New("item not found")
	ErrForbidden   = errors.New("item belongs to another user")
	ErrInvalidID   = errors.New("invalid item id")
	ErrInvalidData = errors.New("invalid item data")
)

type Repository interface {
	List() ([]Item, error)
	GetByID(id string) (Item, error)
	Create(item Item) (Item, error)
	Delete(id string) error
}

type InMemoryRepository struct {
	mu    sync.RWMutex
	items []Item
}

func NewInMemoryRepository(seed []Item) *InMemoryRepository {
	repo := &InMemoryRepository{items: make([]Item, 0, len(seed))}
	repo.items = append(repo.items, seed...)
	return repo
}

func (r *InMemoryRepository) List() ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]Item, len(r.items))
	copy(items, r.items)
	return items, nil
}

func (r *InMemoryRepository) GetByID(id string) (Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, it := range r.items {
		if it.ID == id {
			return it, nil
		}
	}

	return Item{}, ErrNotFound
}

func (r *InMemoryRepository) Create(item Item) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = ids.New()
	}

	r.items = append(r.items, item)
	return item, nil
}

func (r *InMemoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}

	return ErrNotFound
}
