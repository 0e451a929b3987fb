package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/betterfund/betterfund-api/internal/domain"
	"github.com/betterfund/betterfund-api/internal/repository"
)

var (
	ErrUserEmailExists      = repository.ErrUserEmailExists
	ErrUserNationalIDExists = repository.ErrUserNationalIDExists
	ErrUserPhoneExists      = repository.ErrUserPhoneExists
	ErrRoleNotFound         = repository.ErrRoleNotFound
	ErrWrongPassword        = errors.New("wrong password")
	ErrAccessDenied         = errors.New("access denied: sender is not an admin")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByNationalID(ctx context.Context, nationalID string) (domain.User, error)
	FindByPhone(ctx context.Context, phone string) (domain.User, error)
	FindRoleByID(ctx context.Context, id uint) (domain.Role, error)
	FindRoleByName(ctx context.Context, name string) (domain.Role, error)
	UpdateRole(ctx context.Context, userID, roleID uint) error
}

type AuthService struct {
	repo AuthUserRepository
}

func NewAuthService(repo AuthUserRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

// Register creates a user with the default Donor role. Email, national
// id and phone must each be unused; the pre-checks here are advisory
// and the unique constraints in the store are the real safeguard.
func (s *AuthService) Register(ctx context.Context, user domain.User) (domain.User, error) {
	if err := s.checkFieldFree(ctx, s.repo.FindByEmail, user.Email, ErrUserEmailExists); err != nil {
		return domain.User{}, err
	}
	if err := s.checkFieldFree(ctx, s.repo.FindByNationalID, user.NationalID, ErrUserNationalIDExists); err != nil {
		return domain.User{}, err
	}
	if err := s.checkFieldFree(ctx, s.repo.FindByPhone, user.Phone, ErrUserPhoneExists); err != nil {
		return domain.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = string(hash)

	donorRole, err := s.repo.FindRoleByName(ctx, domain.RoleDonor)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindRoleByName -> %w", err)
	}
	user.Role = donorRole

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}

// ChangeRole overwrites the target user's role. The sender must hold
// the Admin role; the name comparison is case-insensitive.
func (s *AuthService) ChangeRole(ctx context.Context, sender domain.User, targetEmail string, newRoleID uint) error {
	if !strings.EqualFold(sender.Role.Name, domain.RoleAdmin) {
		return ErrAccessDenied
	}

	newRole, err := s.repo.FindRoleByID(ctx, newRoleID)
	if err != nil {
		if errors.Is(err, repository.ErrRoleNotFound) {
			return ErrRoleNotFound
		}

		return fmt.Errorf("s.repo.FindRoleByID -> %w", err)
	}

	target, err := s.repo.FindByEmail(ctx, targetEmail)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}

		return fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = s.repo.UpdateRole(ctx, target.ID, newRole.ID); err != nil {
		return fmt.Errorf("s.repo.UpdateRole -> %w", err)
	}

	return nil
}

func (s *AuthService) checkFieldFree(ctx context.Context, find func(context.Context, string) (domain.User, error), value string, exists error) error {
	_, err := find(ctx, value)
	if err == nil {
		return exists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}

	return nil
}
