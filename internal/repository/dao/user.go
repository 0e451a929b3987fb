package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserEmailExists      = errors.New("user email already exists")
	ErrUserNationalIDExists = errors.New("user national id already exists")
	ErrUserPhoneExists      = errors.New("user phone already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrRoleNotFound         = errors.New("role not found")
)

type Role struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"unique;not null"`
}

type User struct {
	ID uint `gorm:"primaryKey"`

	Username string `gorm:"not null"`
	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	NationalID string `gorm:"unique;not null;size:12"`
	Phone      string `gorm:"unique;not null;size:10"`

	RoleID uint `gorm:"not null"`
	Role   Role `gorm:"foreignKey:RoleID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		if err := translateUniqueViolation(result.Error); err != nil {
			return User{}, err
		}

		return User{}, result.Error
	}

	return d.FindByID(ctx, user.ID)
}

// translateUniqueViolation maps a Postgres unique-constraint violation
// on one of the three identity columns to its sentinel error. The DB
// constraint is the real duplicate safeguard; the service-level checks
// are only advisory (check-then-act).
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		switch {
		case strings.Contains(pgErr.Message, "uni_users_email"):
			return ErrUserEmailExists
		case strings.Contains(pgErr.Message, "uni_users_national_id"):
			return ErrUserNationalIDExists
		case strings.Contains(pgErr.Message, "uni_users_phone"):
			return ErrUserPhoneExists
		}
	}

	return nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).Preload("Role").First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).Preload("Role").First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByNationalID(ctx context.Context, nationalID string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).Preload("Role").First(&user, "national_id = ?", nationalID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByPhone(ctx context.Context, phone string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).Preload("Role").First(&user, "phone = ?", phone)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindRoleByID(ctx context.Context, id uint) (Role, error) {
	var role Role

	result := d.db.WithContext(ctx).First(&role, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Role{}, ErrRoleNotFound
		}

		return Role{}, result.Error
	}

	return role, nil
}

func (d *UserDAO) FindRoleByName(ctx context.Context, name string) (Role, error) {
	var role Role

	result := d.db.WithContext(ctx).First(&role, "name = ?", name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Role{}, ErrRoleNotFound
		}

		return Role{}, result.Error
	}

	return role, nil
}

func (d *UserDAO) UpdateRole(ctx context.Context, userID, roleID uint) error {
	result := d.db.WithContext(ctx).Model(&User{}).Where("id = ?", userID).Update("role_id", roleID)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
