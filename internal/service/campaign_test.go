package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betterfund/betterfund-api/internal/domain"
	"github.com/betterfund/betterfund-api/internal/service"
)

func TestCreateCampaign(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice", "alice@x.com", "111122223333", "9998887777")
	require.Equal(t, domain.RoleDonor, alice.Role.Name)

	campaign := env.createCampaign(t, alice.ID, "Clean Water", decimal.NewFromInt(500))

	assert.Equal(t, domain.CampaignStatusPending, campaign.Status)
	assert.Equal(t, "Clean Water", campaign.Title)
	assert.Equal(t, "Education", campaign.Category.Name)
	assert.True(t, campaign.Wallet.Amount.IsZero())
	assert.True(t, campaign.Wallet.CurBalance.IsZero())
	assert.NotZero(t, campaign.DocumentID)

	// Submitting a campaign promotes the creator.
	alice, err := env.userSvc.GetUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCampaignCreator, alice.Role.Name)

	// Pending campaigns are not publicly listed.
	active, err := env.campaignSvc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	pending, err := env.campaignSvc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, campaign.ID, pending[0].ID)
}

func TestCreateCampaignUnknownCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice", "alice@x.com", "111122223333", "9998887777")

	_, err := env.campaignSvc.CreateCampaign(ctx, alice.ID, domain.Campaign{
		Title:     "Clean Water",
		TargetAmt: decimal.NewFromInt(500),
		Category:  domain.Category{ID: 999},
	}, domain.Document{Content: []byte("doc")})
	assert.ErrorIs(t, err, service.ErrCategoryNotFound)

	_, err = env.campaignSvc.CreateCampaign(ctx, 999, domain.Campaign{
		Title:     "Clean Water",
		TargetAmt: decimal.NewFromInt(500),
		Category:  domain.Category{ID: 1},
	}, domain.Document{Content: []byte("doc")})
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestCreateCampaignRollsBackOnFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice", "alice@x.com", "111122223333", "9998887777")

	// A document with nil content violates its NOT NULL constraint,
	// which must roll back the role promotion as well.
	_, err := env.campaignSvc.CreateCampaign(ctx, alice.ID, domain.Campaign{
		Title:     "Clean Water",
		TargetAmt: decimal.NewFromInt(500),
		Category:  domain.Category{ID: 1},
	}, domain.Document{Content: nil})
	require.Error(t, err)

	alice, err = env.userSvc.GetUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleDonor, alice.Role.Name)

	var walletCount int64
	require.NoError(t, env.db.WithContext(ctx).Table("wallets").Count(&walletCount).Error)
	assert.Zero(t, walletCount)
}

func TestApproveAndRejectCampaign(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice", "alice@x.com", "111122223333", "9998887777")
	first := env.createCampaign(t, alice.ID, "Clean Water", decimal.NewFromInt(500))
	second := env.createCampaign(t, alice.ID, "School Books", decimal.NewFromInt(300))

	require.NoError(t, env.campaignSvc.ApproveCampaign(ctx, first.ID))
	require.NoError(t, env.campaignSvc.RejectCampaign(ctx, second.ID))

	active, err := env.campaignSvc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, first.ID, active[0].CampaignID)
	assert.Equal(t, "alice", active[0].User.Username)
	assert.Equal(t, domain.CampaignStatusActive, active[0].Status)

	pending, err := env.campaignSvc.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	// Review is a one-shot transition.
	assert.ErrorIs(t, env.campaignSvc.ApproveCampaign(ctx, first.ID), service.ErrCampaignNotPending)
	assert.ErrorIs(t, env.campaignSvc.RejectCampaign(ctx, second.ID), service.ErrCampaignNotPending)
	assert.ErrorIs(t, env.campaignSvc.ApproveCampaign(ctx, 999), service.ErrCampaignNotFound)
}

func TestGetCampaign(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice", "alice@x.com", "111122223333", "9998887777")
	campaign := env.createCampaign(t, alice.ID, "Clean Water", decimal.NewFromInt(500))

	summary, err := env.campaignSvc.GetCampaign(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, campaign.ID, summary.CampaignID)
	assert.Equal(t, "Clean Water", summary.Title)
	assert.Equal(t, "Education", summary.Category.Name)
	assert.True(t, summary.Wallet.Amount.IsZero())

	_, err = env.campaignSvc.GetCampaign(ctx, 999)
	assert.ErrorIs(t, err, service.ErrCampaignNotFound)
}

func TestGetDocument(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice", "alice@x.com", "111122223333", "9998887777")
	campaign := env.createCampaign(t, alice.ID, "Clean Water", decimal.NewFromInt(500))

	doc, err := env.campaignSvc.GetDocument(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("proposal"), doc.Content)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Equal(t, "proposal.pdf", doc.FileName)

	_, err = env.campaignSvc.GetDocument(ctx, 999)
	assert.ErrorIs(t, err, service.ErrCampaignNotFound)
}

func TestGetDashboardStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice", "alice@x.com", "111122223333", "9998887777")

	env.createCampaign(t, alice.ID, "Pending", decimal.NewFromInt(500))
	active := env.createCampaign(t, alice.ID, "Active", decimal.NewFromInt(500))
	require.NoError(t, env.campaignSvc.ApproveCampaign(ctx, active.ID))
	rejected := env.createCampaign(t, alice.ID, "Rejected", decimal.NewFromInt(500))
	require.NoError(t, env.campaignSvc.RejectCampaign(ctx, rejected.ID))

	_, err := env.donationSvc.Donate(ctx, active.ID, decimal.NewFromInt(200), "")
	require.NoError(t, err)

	stats, err := env.campaignSvc.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.PendingCampaigns)
	assert.Equal(t, int64(1), stats.ActiveCampaigns)
	assert.Equal(t, int64(1), stats.RejectedCampaigns)
	assert.Equal(t, int64(0), stats.CompletedCampaigns)
	assert.True(t, stats.TotalFundsRaised.Equal(decimal.NewFromInt(200)),
		"got %v", stats.TotalFundsRaised)
}
