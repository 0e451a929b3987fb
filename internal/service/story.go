package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/betterfund/betterfund-api/internal/domain"
	"github.com/betterfund/betterfund-api/internal/repository"
)

var (
	ErrStoryNotFound        = repository.ErrStoryNotFound
	ErrStoryExists          = repository.ErrStoryExists
	ErrCampaignNotCompleted = errors.New("campaign has not completed yet")
)

type StoryRepository interface {
	Create(ctx context.Context, story domain.SuccessStory) (domain.SuccessStory, error)
	FindRecent(ctx context.Context, limit int) ([]domain.StorySummary, error)
	FindByID(ctx context.Context, id uint) (domain.SuccessStory, error)
	Delete(ctx context.Context, id uint) error
	FindCompletedCampaignsWithoutStory(ctx context.Context) ([]domain.Campaign, error)
}

type StoryDonationRepository interface {
	SumByCampaignID(ctx context.Context, campaignID uint) (decimal.Decimal, error)
}

type StoryCampaignRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Campaign, error)
}

type StoryService struct {
	repo         StoryRepository
	donationRepo StoryDonationRepository
	campaignRepo StoryCampaignRepository
}

func NewStoryService(repo StoryRepository, donationRepo StoryDonationRepository, campaignRepo StoryCampaignRepository) *StoryService {
	return &StoryService{
		repo:         repo,
		donationRepo: donationRepo,
		campaignRepo: campaignRepo,
	}
}

// CreateStory publishes a success story for a completed campaign. The
// raised total is computed from the recorded donations rather than
// taken from the caller.
func (s *StoryService) CreateStory(ctx context.Context, campaignID uint, updates string, image []byte) (domain.SuccessStory, error) {
	campaign, err := s.campaignRepo.FindByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return domain.SuccessStory{}, ErrCampaignNotFound
		}

		return domain.SuccessStory{}, fmt.Errorf("s.campaignRepo.FindByID -> %w", err)
	}

	if campaign.Status != domain.CampaignStatusCompleted {
		return domain.SuccessStory{}, ErrCampaignNotCompleted
	}

	raised, err := s.donationRepo.SumByCampaignID(ctx, campaignID)
	if err != nil {
		return domain.SuccessStory{}, fmt.Errorf("s.donationRepo.SumByCampaignID -> %w", err)
	}

	created, err := s.repo.Create(ctx, domain.SuccessStory{
		CampaignID: campaignID,
		Updates:    updates,
		FundRaised: raised,
		Image:      image,
	})
	if err != nil {
		if errors.Is(err, repository.ErrStoryExists) {
			return domain.SuccessStory{}, ErrStoryExists
		}

		return domain.SuccessStory{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// ListRecent returns the ten newest stories.
func (s *StoryService) ListRecent(ctx context.Context) ([]domain.StorySummary, error) {
	summaries, err := s.repo.FindRecent(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindRecent -> %w", err)
	}

	return summaries, nil
}

func (s *StoryService) GetStory(ctx context.Context, id uint) (domain.SuccessStory, error) {
	story, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStoryNotFound) {
			return domain.SuccessStory{}, ErrStoryNotFound
		}

		return domain.SuccessStory{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return story, nil
}

func (s *StoryService) GetImage(ctx context.Context, id uint) ([]byte, error) {
	story, err := s.GetStory(ctx, id)
	if err != nil {
		return nil, err
	}

	return story.Image, nil
}

func (s *StoryService) DeleteStory(ctx context.Context, id uint) error {
	if _, err := s.GetStory(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// ListEligibleCampaigns lists completed campaigns that have no story
// yet, for the creator to pick from.
func (s *StoryService) ListEligibleCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	campaigns, err := s.repo.FindCompletedCampaignsWithoutStory(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindCompletedCampaignsWithoutStory -> %w", err)
	}

	return campaigns, nil
}

type CommentRepository interface {
	Create(ctx context.Context, comment domain.Comment) (domain.Comment, error)
	FindByCampaignID(ctx context.Context, campaignID uint) ([]domain.Comment, error)
}

type CommentService struct {
	repo         CommentRepository
	campaignRepo StoryCampaignRepository
}

func NewCommentService(repo CommentRepository, campaignRepo StoryCampaignRepository) *CommentService {
	return &CommentService{
		repo:         repo,
		campaignRepo: campaignRepo,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, campaignID uint, author, content string) (domain.Comment, error) {
	if _, err := s.campaignRepo.FindByID(ctx, campaignID); err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return domain.Comment{}, ErrCampaignNotFound
		}

		return domain.Comment{}, fmt.Errorf("s.campaignRepo.FindByID -> %w", err)
	}

	comment, err := s.repo.Create(ctx, domain.Comment{
		CampaignID: campaignID,
		Author:     author,
		Content:    content,
	})
	if err != nil {
		return domain.Comment{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return comment, nil
}

func (s *CommentService) ListByCampaign(ctx context.Context, campaignID uint) ([]domain.Comment, error) {
	comments, err := s.repo.FindByCampaignID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByCampaignID -> %w", err)
	}

	return comments, nil
}
