package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betterfund/betterfund-api/internal/domain"
	"github.com/betterfund/betterfund-api/internal/service"
)

func (e *testEnv) completeCampaign(t *testing.T, campaign domain.Campaign) {
	t.Helper()

	_, err := e.donationSvc.Donate(context.Background(), campaign.ID, campaign.TargetAmt, "")
	require.NoError(t, err)
}

func TestCreateStory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice", "alice@x.com", "111122223333", "9998887777")
	campaign := env.createActiveCampaign(t, alice.ID, "Clean Water", decimal.NewFromInt(500))

	// Stories can only be written for completed campaigns.
	_, err := env.storySvc.CreateStory(ctx, campaign.ID, "water is flowing", []byte("img"))
	assert.ErrorIs(t, err, service.ErrCampaignNotCompleted)

	env.completeCampaign(t, campaign)

	story, err := env.storySvc.CreateStory(ctx, campaign.ID, "water is flowing", []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, campaign.ID, story.CampaignID)
	assert.True(t, story.FundRaised.Equal(decimal.NewFromInt(500)),
		"raised total must come from recorded donations, got %v", story.FundRaised)

	// One story per campaign.
	_, err = env.storySvc.CreateStory(ctx, campaign.ID, "second story", []byte("img"))
	assert.ErrorIs(t, err, service.ErrStoryExists)

	_, err = env.storySvc.CreateStory(ctx, 999, "ghost", []byte("img"))
	assert.ErrorIs(t, err, service.ErrCampaignNotFound)
}

func TestListRecentStories(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice", "alice@x.com", "111122223333", "9998887777")

	var lastStoryID uint
	for i := 0; i < 12; i++ {
		campaign := env.createActiveCampaign(t, alice.ID, fmt.Sprintf("Campaign %d", i), decimal.NewFromInt(100))
		env.completeCampaign(t, campaign)

		story, err := env.storySvc.CreateStory(ctx, campaign.ID, fmt.Sprintf("story for campaign %d", i), []byte("img"))
		require.NoError(t, err)
		lastStoryID = story.ID
	}

	stories, err := env.storySvc.ListRecent(ctx)
	require.NoError(t, err)
	require.Len(t, stories, 10)

	// Newest first.
	assert.Equal(t, lastStoryID, stories[0].SuccessID)
	assert.Equal(t, "Campaign 11", stories[0].CampaignTitle)
	assert.Equal(t, "alice", stories[0].UserName)
	assert.Equal(t, fmt.Sprintf("/api/successstories/image/%d", lastStoryID), stories[0].ImageURL)
}

func TestStoryImageAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice", "alice@x.com", "111122223333", "9998887777")
	campaign := env.createActiveCampaign(t, alice.ID, "Clean Water", decimal.NewFromInt(500))
	env.completeCampaign(t, campaign)

	story, err := env.storySvc.CreateStory(ctx, campaign.ID, "water is flowing", []byte("png-bytes"))
	require.NoError(t, err)

	image, err := env.storySvc.GetImage(ctx, story.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), image)

	require.NoError(t, env.storySvc.DeleteStory(ctx, story.ID))

	_, err = env.storySvc.GetStory(ctx, story.ID)
	assert.ErrorIs(t, err, service.ErrStoryNotFound)
	assert.ErrorIs(t, env.storySvc.DeleteStory(ctx, story.ID), service.ErrStoryNotFound)
}

func TestListEligibleCampaigns(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice", "alice@x.com", "111122223333", "9998887777")
	first := env.createActiveCampaign(t, alice.ID, "Clean Water", decimal.NewFromInt(500))
	second := env.createActiveCampaign(t, alice.ID, "School Books", decimal.NewFromInt(300))
	env.completeCampaign(t, first)
	env.completeCampaign(t, second)

	eligible, err := env.storySvc.ListEligibleCampaigns(ctx)
	require.NoError(t, err)
	assert.Len(t, eligible, 2)

	_, err = env.storySvc.CreateStory(ctx, first.ID, "water is flowing", []byte("img"))
	require.NoError(t, err)

	eligible, err = env.storySvc.ListEligibleCampaigns(ctx)
	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, second.ID, eligible[0].ID)
}

func TestComments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice", "alice@x.com", "111122223333", "9998887777")
	campaign := env.createActiveCampaign(t, alice.ID, "Clean Water", decimal.NewFromInt(500))

	_, err := env.commentSvc.CreateComment(ctx, 999, "bob", "great cause")
	assert.ErrorIs(t, err, service.ErrCampaignNotFound)

	comment, err := env.commentSvc.CreateComment(ctx, campaign.ID, "bob", "great cause")
	require.NoError(t, err)
	assert.Equal(t, "bob", comment.Author)

	_, err = env.commentSvc.CreateComment(ctx, campaign.ID, "carol", "donated!")
	require.NoError(t, err)

	comments, err := env.commentSvc.ListByCampaign(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}
