package repository

import (
	"context"
	"fmt"

	"github.com/betterfund/betterfund-api/internal/domain"
	"github.com/betterfund/betterfund-api/internal/repository/dao"
)

var (
	ErrUserEmailExists      = dao.ErrUserEmailExists
	ErrUserNationalIDExists = dao.ErrUserNationalIDExists
	ErrUserPhoneExists      = dao.ErrUserPhoneExists
	ErrUserNotFound         = dao.ErrUserNotFound
	ErrRoleNotFound         = dao.ErrRoleNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	FindByNationalID(ctx context.Context, nationalID string) (dao.User, error)
	FindByPhone(ctx context.Context, phone string) (dao.User, error)
	FindRoleByID(ctx context.Context, id uint) (dao.Role, error)
	FindRoleByName(ctx context.Context, name string) (dao.Role, error)
	UpdateRole(ctx context.Context, userID, roleID uint) error
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		Username:   user.Username,
		Email:      user.Email,
		Password:   user.Password,
		NationalID: user.NationalID,
		Phone:      user.Phone,
		RoleID:     user.Role.ID,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByNationalID(ctx context.Context, nationalID string) (domain.User, error) {
	found, err := r.dao.FindByNationalID(ctx, nationalID)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByNationalID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (domain.User, error) {
	found, err := r.dao.FindByPhone(ctx, phone)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByPhone -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindRoleByID(ctx context.Context, id uint) (domain.Role, error) {
	found, err := r.dao.FindRoleByID(ctx, id)
	if err != nil {
		return domain.Role{}, fmt.Errorf("r.dao.FindRoleByID -> %w", err)
	}

	return domain.Role{ID: found.ID, Name: found.Name}, nil
}

func (r *UserRepository) FindRoleByName(ctx context.Context, name string) (domain.Role, error) {
	found, err := r.dao.FindRoleByName(ctx, name)
	if err != nil {
		return domain.Role{}, fmt.Errorf("r.dao.FindRoleByName -> %w", err)
	}

	return domain.Role{ID: found.ID, Name: found.Name}, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, userID, roleID uint) error {
	if err := r.dao.UpdateRole(ctx, userID, roleID); err != nil {
		return fmt.Errorf("r.dao.UpdateRole -> %w", err)
	}

	return nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Password:   u.Password,
		NationalID: u.NationalID,
		Phone:      u.Phone,
		Role: domain.Role{
			ID:   u.Role.ID,
			Name: u.Role.Name,
		},
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
