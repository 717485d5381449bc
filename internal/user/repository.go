package user

import (
	"errors"
	"sync"

	"github.com/gjone124/restaurant-finder-backend/internal/ids"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already exists")
)

type Repository interface {
	GetByID(id string) (User, error)
	GetByEmail(email string) (User, error)
	Create(user User) (User, error)
	Update(id string, user User) (User, error)
}

type InMemoryRepository struct {
	mu    sync.RWMutex
	users []User
}

func NewInMemoryRepository(seed []User) *InMemoryRepository {
	repo := &InMemoryRepository{users: make([]User, 0, len(seed))}
	repo.users = append(repo.users, seed...)
	return repo
}

func (r *InMemoryRepository) GetByID(id string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}

	return User{}, ErrNotFound
}

func (r *InMemoryRepository) GetByEmail(email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}

	return User{}, ErrNotFound
}

func (r *InMemoryRepository) Create(user User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return User{}, ErrEmailExists
		}
	}

	if user.ID == "" {
		user.ID = ids.New()
	}

	r.users = append(r.users, user)
	return user, nil
}

func (r *InMemoryRepository) Update(id string, userUpdate User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID == id {
			u.Name = userUpdate.Name
			u.Avatar = userUpdate.Avatar
			if userUpdate.Email != "" {
				u.Email = userUpdate.Email
			}
			if userUpdate.Password != "" {
				u.Password = userUpdate.Password
			}
			r.users[i] = u
			return u, nil
		}
	}

	return User{}, ErrNotFound
}
