package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/betterfund/betterfund-api/internal/domain"
	"github.com/betterfund/betterfund-api/internal/repository/dao"
)

var (
	ErrCategoryNotFound   = dao.ErrCategoryNotFound
	ErrCampaignNotFound   = dao.ErrCampaignNotFound
	ErrCampaignNotPending = dao.ErrCampaignNotPending
	ErrDocumentNotFound   = dao.ErrDocumentNotFound
)

type CampaignDAO interface {
	InsertCampaignGraph(ctx context.Context, userID, creatorRoleID uint, doc dao.Document, campaign dao.Campaign) (dao.Campaign, error)
	FindByID(ctx context.Context, id uint) (dao.Campaign, error)
	FindByStatus(ctx context.Context, status string) ([]dao.Campaign, error)
	UpdateStatus(ctx context.Context, id uint, from, to string) error
	CountByStatus(ctx context.Context, status string) (int64, error)
	SumRaisedFunds(ctx context.Context) (decimal.Decimal, error)
	FindCategoryByID(ctx context.Context, id uint) (dao.Category, error)
	FindDocumentByID(ctx context.Context, id uint) (dao.Document, error)
}

type CampaignRepository struct {
	dao CampaignDAO
}

func NewCampaignRepository(dao CampaignDAO) *CampaignRepository {
	return &CampaignRepository{
		dao: dao,
	}
}

func (r *CampaignRepository) CreateGraph(ctx context.Context, userID, creatorRoleID uint, doc domain.Document, campaign domain.Campaign) (domain.Campaign, error) {
	daoDoc := dao.Document{
		Content:     doc.Content,
		ContentType: doc.ContentType,
		FileName:    doc.FileName,
	}

	daoCampaign := dao.Campaign{
		Title:       campaign.Title,
		Description: campaign.Description,
		StartDate:   campaign.StartDate,
		EndDate:     campaign.EndDate,
		TargetAmt:   campaign.TargetAmt,
		CategoryID:  campaign.Category.ID,
	}

	created, err := r.dao.InsertCampaignGraph(ctx, userID, creatorRoleID, daoDoc, daoCampaign)
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("r.dao.InsertCampaignGraph -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *CampaignRepository) FindByID(ctx context.Context, id uint) (domain.Campaign, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *CampaignRepository) FindByStatus(ctx context.Context, status string) ([]domain.Campaign, error) {
	found, err := r.dao.FindByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByStatus -> %w", err)
	}

	campaigns := make([]domain.Campaign, 0, len(found))
	for _, c := range found {
		campaigns = append(campaigns, r.daoToDomain(c))
	}

	return campaigns, nil
}

func (r *CampaignRepository) UpdateStatus(ctx context.Context, id uint, from, to string) error {
	if err := r.dao.UpdateStatus(ctx, id, from, to); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *CampaignRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	count, err := r.dao.CountByStatus(ctx, status)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByStatus -> %w", err)
	}

	return count, nil
}

func (r *CampaignRepository) SumRaisedFunds(ctx context.Context) (decimal.Decimal, error) {
	total, err := r.dao.SumRaisedFunds(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("r.dao.SumRaisedFunds -> %w", err)
	}

	return total, nil
}

func (r *CampaignRepository) FindCategoryByID(ctx context.Context, id uint) (domain.Category, error) {
	found, err := r.dao.FindCategoryByID(ctx, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("r.dao.FindCategoryByID -> %w", err)
	}

	return domain.Category{ID: found.ID, Name: found.Name}, nil
}

func (r *CampaignRepository) FindDocumentByID(ctx context.Context, id uint) (domain.Document, error) {
	found, err := r.dao.FindDocumentByID(ctx, id)
	if err != nil {
		return domain.Document{}, fmt.Errorf("r.dao.FindDocumentByID -> %w", err)
	}

	return domain.Document{
		ID:          found.ID,
		Content:     found.Content,
		ContentType: found.ContentType,
		FileName:    found.FileName,
	}, nil
}

func (r *CampaignRepository) daoToDomain(c dao.Campaign) domain.Campaign {
	return domain.Campaign{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		TargetAmt:   c.TargetAmt,
		Status:      c.Status,
		User: domain.User{
			ID:       c.User.ID,
			Username: c.User.Username,
			Email:    c.User.Email,
			Role: domain.Role{
				ID:   c.User.Role.ID,
				Name: c.User.Role.Name,
			},
		},
		Category: domain.Category{
			ID:   c.Category.ID,
			Name: c.Category.Name,
		},
		Wallet: domain.Wallet{
			ID:           c.Wallet.ID,
			UserID:       c.Wallet.UserID,
			Amount:       c.Wallet.Amount,
			CurBalance:   c.Wallet.CurBalance,
			CreationDate: c.Wallet.CreationDate,
		},
		DocumentID: c.DocumentID,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
