package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/betterfund/betterfund-api/internal/domain"
	"github.com/betterfund/betterfund-api/internal/repository/dao"
)

var (
	ErrWalletNotFound        = dao.ErrWalletNotFound
	ErrDonationExceedsTarget = dao.ErrDonationExceedsTarget
	ErrStoryNotFound         = dao.ErrStoryNotFound
	ErrStoryExists           = dao.ErrStoryExists
)

type DonationDAO interface {
	InsertDonation(ctx context.Context, donation dao.Donation, target decimal.Decimal) (dao.Donation, bool, error)
	FindByCampaignID(ctx context.Context, campaignID uint) ([]dao.Donation, error)
	SumByCampaignID(ctx context.Context, campaignID uint) (decimal.Decimal, error)
}

type DonationRepository struct {
	dao DonationDAO
}

func NewDonationRepository(dao DonationDAO) *DonationRepository {
	return &DonationRepository{
		dao: dao,
	}
}

// Create records the donation and reports whether it completed the
// campaign by reaching the target amount.
func (r *DonationRepository) Create(ctx context.Context, donation domain.Donation, target decimal.Decimal) (domain.Donation, bool, error) {
	created, completed, err := r.dao.InsertDonation(ctx, dao.Donation{
		CampaignID: donation.CampaignID,
		WalletID:   donation.WalletID,
		Amount:     donation.Amount,
	}, target)
	if err != nil {
		return domain.Donation{}, false, fmt.Errorf("r.dao.InsertDonation -> %w", err)
	}

	return r.daoToDomain(created), completed, nil
}

func (r *DonationRepository) FindByCampaignID(ctx context.Context, campaignID uint) ([]domain.Donation, error) {
	found, err := r.dao.FindByCampaignID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByCampaignID -> %w", err)
	}

	donations := make([]domain.Donation, 0, len(found))
	for _, d := range found {
		donations = append(donations, r.daoToDomain(d))
	}

	return donations, nil
}

func (r *DonationRepository) SumByCampaignID(ctx context.Context, campaignID uint) (decimal.Decimal, error) {
	total, err := r.dao.SumByCampaignID(ctx, campaignID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("r.dao.SumByCampaignID -> %w", err)
	}

	return total, nil
}

func (r *DonationRepository) daoToDomain(d dao.Donation) domain.Donation {
	return domain.Donation{
		ID:           d.ID,
		CampaignID:   d.CampaignID,
		WalletID:     d.WalletID,
		Amount:       d.Amount,
		DonationTime: d.DonationTime,
	}
}
