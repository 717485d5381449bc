package item

import "github.com/gjone124/restaurant-finder-backend/internal/validation"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]Item, error) {
	return s.repo.List()
}

func (s *Service) Create(item Item) (Item, error) {
	return s.repo.Create(item)
}

// Delete removes a listing after confirming it exists and belongs to the
// requesting user. The ID format check repeats here as a fallback for callers
// that bypass route validation.
func (s *Service) Delete(id, requesterID string) error {
	if !validation.IsValidID(id) {
		return ErrInvalidID
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing.Owner != requesterID {
		return ErrForbidden
	}

	return s.repo.Delete(id)
}
