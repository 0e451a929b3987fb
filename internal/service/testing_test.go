package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/betterfund/betterfund-api/internal/domain"
	"github.com/betterfund/betterfund-api/internal/repository"
	"github.com/betterfund/betterfund-api/internal/repository/dao"
	"github.com/betterfund/betterfund-api/internal/service"
)

type testEnv struct {
	db       *gorm.DB
	userRepo *repository.UserRepository

	authSvc     *service.AuthService
	userSvc     *service.UserService
	campaignSvc *service.CampaignService
	donationSvc *service.DonationService
	storySvc    *service.StoryService
	commentSvc  *service.CommentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%v?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, dao.InitTables(db))
	require.NoError(t, dao.SeedReferenceData(db))

	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	campaignRepo := repository.NewCampaignRepository(dao.NewCampaignDAO(db))
	donationRepo := repository.NewDonationRepository(dao.NewDonationDAO(db))
	storyRepo := repository.NewStoryRepository(dao.NewStoryDAO(db))
	commentRepo := repository.NewCommentRepository(dao.NewCommentDAO(db))

	return &testEnv{
		db:          db,
		userRepo:    userRepo,
		authSvc:     service.NewAuthService(userRepo),
		userSvc:     service.NewUserService(userRepo),
		campaignSvc: service.NewCampaignService(campaignRepo, userRepo, nil),
		donationSvc: service.NewDonationService(donationRepo, campaignRepo, nil, nil),
		storySvc:    service.NewStoryService(storyRepo, donationRepo, campaignRepo),
		commentSvc:  service.NewCommentService(commentRepo, campaignRepo),
	}
}

func (e *testEnv) registerUser(t *testing.T, username, email, nationalID, phone string) domain.User {
	t.Helper()

	user, err := e.authSvc.Register(context.Background(), domain.User{
		Username:   username,
		Email:      email,
		Password:   "password1",
		NationalID: nationalID,
		Phone:      phone,
	})
	require.NoError(t, err)

	return user
}

func (e *testEnv) createCampaign(t *testing.T, userID uint, title string, target decimal.Decimal) domain.Campaign {
	t.Helper()

	campaign, err := e.campaignSvc.CreateCampaign(context.Background(), userID, domain.Campaign{
		Title:     title,
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		TargetAmt: target,
		Category:  domain.Category{ID: 1},
	}, domain.Document{
		Content:     []byte("proposal"),
		ContentType: "application/pdf",
		FileName:    "proposal.pdf",
	})
	require.NoError(t, err)

	return campaign
}

func (e *testEnv) createActiveCampaign(t *testing.T, userID uint, title string, target decimal.Decimal) domain.Campaign {
	t.Helper()

	campaign := e.createCampaign(t, userID, title, target)
	require.NoError(t, e.campaignSvc.ApproveCampaign(context.Background(), campaign.ID))

	return campaign
}
