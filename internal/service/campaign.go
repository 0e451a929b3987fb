package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/betterfund/betterfund-api/internal/cache"
	"github.com/betterfund/betterfund-api/internal/domain"
	"github.com/betterfund/betterfund-api/internal/repository"
)

var (
	ErrCampaignNotFound   = repository.ErrCampaignNotFound
	ErrCampaignNotPending = repository.ErrCampaignNotPending
	ErrCategoryNotFound   = repository.ErrCategoryNotFound
	ErrDocumentNotFound   = repository.ErrDocumentNotFound
)

const activeCampaignsCacheKey = "campaigns:active"

type CampaignRepository interface {
	CreateGraph(ctx context.Context, userID, creatorRoleID uint, doc domain.Document, campaign domain.Campaign) (domain.Campaign, error)
	FindByID(ctx context.Context, id uint) (domain.Campaign, error)
	FindByStatus(ctx context.Context, status string) ([]domain.Campaign, error)
	UpdateStatus(ctx context.Context, id uint, from, to string) error
	CountByStatus(ctx context.Context, status string) (int64, error)
	SumRaisedFunds(ctx context.Context) (decimal.Decimal, error)
	FindCategoryByID(ctx context.Context, id uint) (domain.Category, error)
	FindDocumentByID(ctx context.Context, id uint) (domain.Document, error)
}

type CampaignUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindRoleByName(ctx context.Context, name string) (domain.Role, error)
}

type CampaignService struct {
	repo     CampaignRepository
	userRepo CampaignUserRepository
	cache    *cache.Cache
}

func NewCampaignService(repo CampaignRepository, userRepo CampaignUserRepository, c *cache.Cache) *CampaignService {
	return &CampaignService{
		repo:     repo,
		userRepo: userRepo,
		cache:    c,
	}
}

// CreateCampaign runs the whole campaign-creation write: it promotes
// the creating user to Campaign Creator, stores the document, opens a
// zero wallet and inserts the pending campaign, atomically.
func (s *CampaignService) CreateCampaign(ctx context.Context, userID uint, campaign domain.Campaign, doc domain.Document) (domain.Campaign, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.Campaign{}, ErrUserNotFound
		}

		return domain.Campaign{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	category, err := s.repo.FindCategoryByID(ctx, campaign.Category.ID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return domain.Campaign{}, ErrCategoryNotFound
		}

		return domain.Campaign{}, fmt.Errorf("s.repo.FindCategoryByID -> %w", err)
	}
	campaign.Category = category

	creatorRole, err := s.userRepo.FindRoleByName(ctx, domain.RoleCampaignCreator)
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("s.userRepo.FindRoleByName -> %w", err)
	}

	created, err := s.repo.CreateGraph(ctx, userID, creatorRole.ID, doc, campaign)
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("s.repo.CreateGraph -> %w", err)
	}

	return created, nil
}

func (s *CampaignService) ListActive(ctx context.Context) ([]domain.CampaignSummary, error) {
	var cached []domain.CampaignSummary
	hit, err := s.cache.Get(ctx, activeCampaignsCacheKey, &cached)
	if err != nil {
		zap.L().Warn("active campaigns cache read failed", zap.Error(err))
	}
	if hit {
		return cached, nil
	}

	campaigns, err := s.repo.FindByStatus(ctx, domain.CampaignStatusActive)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByStatus -> %w", err)
	}

	summaries := make([]domain.CampaignSummary, 0, len(campaigns))
	for _, c := range campaigns {
		summaries = append(summaries, c.Summary())
	}

	if err = s.cache.Set(ctx, activeCampaignsCacheKey, summaries); err != nil {
		zap.L().Warn("active campaigns cache write failed", zap.Error(err))
	}

	return summaries, nil
}

func (s *CampaignService) GetCampaign(ctx context.Context, id uint) (domain.CampaignSummary, error) {
	campaign, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return domain.CampaignSummary{}, ErrCampaignNotFound
		}

		return domain.CampaignSummary{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return campaign.Summary(), nil
}

// ListPending returns the full campaign records, not the public
// projection. The admin dashboard consumes every field.
func (s *CampaignService) ListPending(ctx context.Context) ([]domain.Campaign, error) {
	campaigns, err := s.repo.FindByStatus(ctx, domain.CampaignStatusPending)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByStatus -> %w", err)
	}

	return campaigns, nil
}

func (s *CampaignService) ApproveCampaign(ctx context.Context, id uint) error {
	if err := s.repo.UpdateStatus(ctx, id, domain.CampaignStatusPending, domain.CampaignStatusActive); err != nil {
		return s.translateStatusErr(err)
	}

	s.invalidateActiveCache(ctx)

	return nil
}

func (s *CampaignService) RejectCampaign(ctx context.Context, id uint) error {
	if err := s.repo.UpdateStatus(ctx, id, domain.CampaignStatusPending, domain.CampaignStatusRejected); err != nil {
		return s.translateStatusErr(err)
	}

	return nil
}

func (s *CampaignService) GetDashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	stats := domain.DashboardStats{}

	counts := []struct {
		status string
		dest   *int64
	}{
		{domain.CampaignStatusPending, &stats.PendingCampaigns},
		{domain.CampaignStatusActive, &stats.ActiveCampaigns},
		{domain.CampaignStatusCompleted, &stats.CompletedCampaigns},
		{domain.CampaignStatusRejected, &stats.RejectedCampaigns},
	}
	for _, c := range counts {
		count, err := s.repo.CountByStatus(ctx, c.status)
		if err != nil {
			return domain.DashboardStats{}, fmt.Errorf("s.repo.CountByStatus -> %w", err)
		}
		*c.dest = count
	}

	total, err := s.repo.SumRaisedFunds(ctx)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.repo.SumRaisedFunds -> %w", err)
	}
	stats.TotalFundsRaised = total

	return stats, nil
}

// GetDocument fetches the verification document attached to a campaign.
func (s *CampaignService) GetDocument(ctx context.Context, campaignID uint) (domain.Document, error) {
	campaign, err := s.repo.FindByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return domain.Document{}, ErrCampaignNotFound
		}

		return domain.Document{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	doc, err := s.repo.FindDocumentByID(ctx, campaign.DocumentID)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return domain.Document{}, ErrDocumentNotFound
		}

		return domain.Document{}, fmt.Errorf("s.repo.FindDocumentByID -> %w", err)
	}

	return doc, nil
}

func (s *CampaignService) translateStatusErr(err error) error {
	if errors.Is(err, repository.ErrCampaignNotFound) {
		return ErrCampaignNotFound
	}
	if errors.Is(err, repository.ErrCampaignNotPending) {
		return ErrCampaignNotPending
	}

	return err
}

func (s *CampaignService) invalidateActiveCache(ctx context.Context) {
	if err := s.cache.Delete(ctx, activeCampaignsCacheKey); err != nil {
		zap.L().Warn("active campaigns cache invalidation failed", zap.Error(err))
	}
}
