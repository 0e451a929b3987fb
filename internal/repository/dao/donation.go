package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrWalletNotFound        = errors.New("wallet not found")
	ErrDonationExceedsTarget = errors.New("donation exceeds target amount")
)

type Donation struct {
	ID           uint            `gorm:"primaryKey"`
	CampaignID   uint            `gorm:"not null;index"`
	WalletID     uint            `gorm:"not null"`
	Amount       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	DonationTime time.Time       `gorm:"not null"`
}

type DonationDAO struct {
	db *gorm.DB
}

func NewDonationDAO(db *gorm.DB) *DonationDAO {
	return &DonationDAO{
		db: db,
	}
}

// InsertDonation credits the campaign wallet and records the donation
// in one transaction. The credit is a single guarded UPDATE so that
// concurrent donations can neither lose an increment nor push the
// wallet past the target; the service-level cap check is advisory
// only. Reports whether the donation brought the wallet up to the
// target so the caller can complete the campaign.
func (d *DonationDAO) InsertDonation(ctx context.Context, donation Donation, target decimal.Decimal) (Donation, bool, error) {
	targetReached := false

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Wallet{}).
			Where("id = ? AND amount + CAST(? AS NUMERIC) <= CAST(? AS NUMERIC)",
				donation.WalletID, donation.Amount, target).
			Updates(map[string]interface{}{
				"amount":      gorm.Expr("amount + CAST(? AS NUMERIC)", donation.Amount),
				"cur_balance": gorm.Expr("cur_balance + CAST(? AS NUMERIC)", donation.Amount),
			})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&Wallet{}).Where("id = ?", donation.WalletID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrWalletNotFound
			}

			return ErrDonationExceedsTarget
		}

		donation.DonationTime = time.Now()
		if err := tx.Create(&donation).Error; err != nil {
			return err
		}

		var wallet Wallet
		if err := tx.First(&wallet, donation.WalletID).Error; err != nil {
			return err
		}

		if wallet.Amount.GreaterThanOrEqual(target) {
			targetReached = true
			result := tx.Model(&Campaign{}).
				Where("id = ? AND status = ?", donation.CampaignID, "active").
				Update("status", "completed")
			if result.Error != nil {
				return result.Error
			}
		}

		return nil
	})
	if err != nil {
		return Donation{}, false, err
	}

	return donation, targetReached, nil
}

func (d *DonationDAO) FindByCampaignID(ctx context.Context, campaignID uint) ([]Donation, error) {
	var donations []Donation

	result := d.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("donation_time DESC").
		Find(&donations)
	if result.Error != nil {
		return nil, result.Error
	}

	return donations, nil
}

func (d *DonationDAO) SumByCampaignID(ctx context.Context, campaignID uint) (decimal.Decimal, error) {
	var donations []Donation

	result := d.db.WithContext(ctx).Where("campaign_id = ?", campaignID).Find(&donations)
	if result.Error != nil {
		return decimal.Zero, result.Error
	}

	total := decimal.Zero
	for _, donation := range donations {
		total = total.Add(donation.Amount)
	}

	return total, nil
}
