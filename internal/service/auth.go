package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/librarium/library-admin/internal/errs"
	"github.com/librarium/library-admin/internal/model"
)

func (s *Service) Register(ctx context.Context, req model.UserCreateRequest) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	role := req.Role
	if role == "" {
		role = "librarian"
	}
	return s.repo.CreateUser(ctx, model.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         role,
	})
}

// Authorize resolves the librarian by email and checks the password.
// Both an unknown email and a wrong password come back as the same
// generic credentials error.
func (s *Service) Authorize(ctx context.Context, email, password string) (model.User, error) {
	user, err := s.repo.GetUser(ctx, email)
	if err != nil {
		if err == errs.ErrNotFound {
			return model.User{}, errs.ErrInvalidCredentials
		}
		return model.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.User{}, errs.ErrInvalidCredentials
	}
	return user, nil
}
