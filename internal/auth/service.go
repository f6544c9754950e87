package auth

import "golang.org/x/crypto/bcrypt"

// Service authenticates admins against their stored bcrypt hashes.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Authenticate(email, password string) (Admin, error) {
	admin, err := s.repo.GetByEmail(email)
	if err != nil {
		return Admin{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return Admin{}, ErrInvalidCredentials
	}
	return admin, nil
}

// Seed creates the bootstrap admin account when the table is empty. A blank
// email or password leaves the table untouched.
func (s *Service) Seed(email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	n, err := s.repo.Count()
	if err != nil || n > 0 {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.repo.Create(Admin{Email: email, Password: string(hashed)})
	return err
}
