package dao_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/betterfund/betterfund-api/internal/repository/dao"
)

// newPostgresDB starts a throwaway Postgres container for the test.
// The unique-constraint translation only fires against a real
// Postgres, so these tests are skipped when Docker is unreachable.
func newPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("could not construct docker pool: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker is not available: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "15-alpine",
		Env: []string{
			"POSTGRES_USER=betterfund",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=betterfund_test",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("could not purge postgres container: %v", err)
		}
	})

	dsn := fmt.Sprintf(
		"host=localhost port=%v user=betterfund password=secret dbname=betterfund_test sslmode=disable",
		resource.GetPort("5432/tcp"),
	)

	var db *gorm.DB
	pool.MaxWait = 2 * time.Minute
	err = pool.Retry(func() error {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}

		return sqlDB.Ping()
	})
	require.NoError(t, err)

	require.NoError(t, dao.InitTables(db))
	require.NoError(t, dao.SeedReferenceData(db))

	return db
}

func TestInsertTranslatesUniqueViolations(t *testing.T) {
	db := newPostgresDB(t)
	userDAO := dao.NewUserDAO(db)
	ctx := context.Background()

	donorRole, err := userDAO.FindRoleByName(ctx, "Donor")
	require.NoError(t, err)

	base := dao.User{
		Username:   "alice",
		Email:      "alice@x.com",
		Password:   "hashed",
		NationalID: "111122223333",
		Phone:      "9998887777",
		RoleID:     donorRole.ID,
	}

	inserted, err := userDAO.Insert(ctx, base)
	require.NoError(t, err)
	assert.NotZero(t, inserted.ID)
	assert.Equal(t, "Donor", inserted.Role.Name)

	tests := []struct {
		name    string
		mutate  func(u *dao.User)
		wantErr error
	}{
		{
			name: "duplicate email",
			mutate: func(u *dao.User) {
				u.NationalID = "222233334444"
				u.Phone = "8887776666"
			},
			wantErr: dao.ErrUserEmailExists,
		},
		{
			name: "duplicate national id",
			mutate: func(u *dao.User) {
				u.Email = "bob@x.com"
				u.Phone = "8887776666"
			},
			wantErr: dao.ErrUserNationalIDExists,
		},
		{
			name: "duplicate phone",
			mutate: func(u *dao.User) {
				u.Email = "bob@x.com"
				u.NationalID = "222233334444"
			},
			wantErr: dao.ErrUserPhoneExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dup := base
			dup.Username = "bob"
			tt.mutate(&dup)

			_, err := userDAO.Insert(ctx, dup)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	var count int64
	require.NoError(t, db.Model(&dao.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpdateRolePostgres(t *testing.T) {
	db := newPostgresDB(t)
	userDAO := dao.NewUserDAO(db)
	ctx := context.Background()

	donorRole, err := userDAO.FindRoleByName(ctx, "Donor")
	require.NoError(t, err)
	creatorRole, err := userDAO.FindRoleByName(ctx, "Campaign Creator")
	require.NoError(t, err)

	user, err := userDAO.Insert(ctx, dao.User{
		Username:   "alice",
		Email:      "alice@x.com",
		Password:   "hashed",
		NationalID: "111122223333",
		Phone:      "9998887777",
		RoleID:     donorRole.ID,
	})
	require.NoError(t, err)

	require.NoError(t, userDAO.UpdateRole(ctx, user.ID, creatorRole.ID))

	updated, err := userDAO.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Campaign Creator", updated.Role.Name)

	assert.ErrorIs(t, userDAO.UpdateRole(ctx, 999, creatorRole.ID), dao.ErrUserNotFound)
}
