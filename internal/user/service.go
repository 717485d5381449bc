package user

import "golang.org/x/crypto/bcrypt"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(id string) (User, error) {
	return s.repo.GetByID(id)
}

// Register hashes the password and stores the new account. A pre-existing
// email yields ErrEmailExists.
func (s *Service) Register(user User) (User, error) {
	if _, err := s.repo.GetByEmail(user.Email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user.Password = string(hashed)
	return s.repo.Create(user)
}

// Authenticate returns ErrInvalidCredentials for an unknown email and for a
// wrong password alike, so callers cannot probe which accounts exist.
func (s *Service) Authenticate(email, password string) (User, error) {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}

// UpdateProfile replaces the name and, when a new value is supplied, the
// avatar. The stored avatar is kept when avatar is nil.
func (s *Service) UpdateProfile(id string, name string, avatar *string) (User, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return User{}, err
	}

	existing.Name = name
	if avatar != nil {
		existing.Avatar = avatar
	}

	return s.repo.Update(id, existing)
}
