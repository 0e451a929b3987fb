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

func TestDonate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice", "alice@x.com", "111122223333", "9998887777")
	campaign := env.createActiveCampaign(t, alice.ID, "Clean Water", decimal.NewFromInt(500))

	donation, err := env.donationSvc.Donate(ctx, campaign.ID, decimal.NewFromInt(200), "")
	require.NoError(t, err)
	assert.Equal(t, campaign.ID, donation.CampaignID)
	assert.True(t, donation.Amount.Equal(decimal.NewFromInt(200)))
	assert.False(t, donation.DonationTime.IsZero())

	summary, err := env.campaignSvc.GetCampaign(ctx, campaign.ID)
	require.NoError(t, err)
	assert.True(t, summary.Wallet.Amount.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, domain.CampaignStatusActive, summary.Status)
}

func TestDonateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice", "alice@x.com", "111122223333", "9998887777")
	campaign := env.createActiveCampaign(t, alice.ID, "Clean Water", decimal.NewFromInt(500))
	pending := env.createCampaign(t, alice.ID, "School Books", decimal.NewFromInt(300))

	_, err := env.donationSvc.Donate(ctx, campaign.ID, decimal.Zero, "")
	assert.ErrorIs(t, err, service.ErrInvalidDonationAmount)

	_, err = env.donationSvc.Donate(ctx, campaign.ID, decimal.NewFromInt(-5), "")
	assert.ErrorIs(t, err, service.ErrInvalidDonationAmount)

	_, err = env.donationSvc.Donate(ctx, campaign.ID, decimal.NewFromInt(501), "")
	assert.ErrorIs(t, err, service.ErrDonationExceedsTarget)

	_, err = env.donationSvc.Donate(ctx, pending.ID, decimal.NewFromInt(10), "")
	assert.ErrorIs(t, err, service.ErrCampaignNotActive)

	_, err = env.donationSvc.Donate(ctx, 999, decimal.NewFromInt(10), "")
	assert.ErrorIs(t, err, service.ErrCampaignNotFound)
}

func TestDonationCompletesCampaign(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice", "alice@x.com", "111122223333", "9998887777")
	campaign := env.createActiveCampaign(t, alice.ID, "Clean Water", decimal.NewFromInt(500))

	_, err := env.donationSvc.Donate(ctx, campaign.ID, decimal.NewFromInt(200), "")
	require.NoError(t, err)

	_, err = env.donationSvc.Donate(ctx, campaign.ID, decimal.NewFromInt(300), "")
	require.NoError(t, err)

	summary, err := env.campaignSvc.GetCampaign(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignStatusCompleted, summary.Status)
	assert.True(t, summary.Wallet.Amount.Equal(decimal.NewFromInt(500)))

	// A completed campaign accepts no further donations.
	_, err = env.donationSvc.Donate(ctx, campaign.ID, decimal.NewFromInt(1), "")
	assert.ErrorIs(t, err, service.ErrCampaignNotActive)

	active, err := env.campaignSvc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestListDonations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice", "alice@x.com", "111122223333", "9998887777")
	campaign := env.createActiveCampaign(t, alice.ID, "Clean Water", decimal.NewFromInt(500))

	for _, amount := range []int64{50, 75, 100} {
		_, err := env.donationSvc.Donate(ctx, campaign.ID, decimal.NewFromInt(amount), "")
		require.NoError(t, err)
	}

	donations, err := env.donationSvc.ListByCampaign(ctx, campaign.ID)
	require.NoError(t, err)
	require.Len(t, donations, 3)

	total := decimal.Zero
	for _, d := range donations {
		total = total.Add(d.Amount)
	}
	assert.True(t, total.Equal(decimal.NewFromInt(225)))

	_, err = env.donationSvc.ListByCampaign(ctx, 999)
	assert.ErrorIs(t, err, service.ErrCampaignNotFound)
}
