package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	stripe "github.com/stripe/stripe-go/v72"
	stripeclient "github.com/stripe/stripe-go/v72/client"
	"go.uber.org/zap"

	"github.com/betterfund/betterfund-api/internal/cache"
	"github.com/betterfund/betterfund-api/internal/config"
	"github.com/betterfund/betterfund-api/internal/domain"
	"github.com/betterfund/betterfund-api/internal/repository"
)

var (
	ErrInvalidDonationAmount = errors.New("donation amount must be positive")
	ErrCampaignNotActive     = errors.New("campaign is not accepting donations")
	ErrDonationExceedsTarget = repository.ErrDonationExceedsTarget
	ErrPaymentFailed         = errors.New("payment failed")
)

type DonationRepository interface {
	Create(ctx context.Context, donation domain.Donation, target decimal.Decimal) (domain.Donation, bool, error)
	FindByCampaignID(ctx context.Context, campaignID uint) ([]domain.Donation, error)
}

type DonationCampaignRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Campaign, error)
}

type DonationService struct {
	repo         DonationRepository
	campaignRepo DonationCampaignRepository
	cache        *cache.Cache
	stripeConf   *config.StripeConfig
	stripeAPI    *stripeclient.API
}

func NewDonationService(repo DonationRepository, campaignRepo DonationCampaignRepository, c *cache.Cache, stripeConf *config.StripeConfig) *DonationService {
	s := &DonationService{
		repo:         repo,
		campaignRepo: campaignRepo,
		cache:        c,
		stripeConf:   stripeConf,
	}

	if stripeConf != nil && stripeConf.SecretKey != "" {
		api := &stripeclient.API{}
		api.Init(stripeConf.SecretKey, nil)
		s.stripeAPI = api
	}

	return s
}

// Donate credits a campaign wallet. The campaign must be active and
// the donation may not push the wallet past the target amount. The cap
// check here is advisory for a friendly early error; the guarded
// UPDATE inside the write transaction is what actually enforces it
// under concurrent donations.
func (s *DonationService) Donate(ctx context.Context, campaignID uint, amount decimal.Decimal, paymentMethodID string) (domain.Donation, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.Donation{}, ErrInvalidDonationAmount
	}

	campaign, err := s.campaignRepo.FindByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return domain.Donation{}, ErrCampaignNotFound
		}

		return domain.Donation{}, fmt.Errorf("s.campaignRepo.FindByID -> %w", err)
	}

	if campaign.Status != domain.CampaignStatusActive {
		return domain.Donation{}, ErrCampaignNotActive
	}

	if campaign.Wallet.Amount.Add(amount).GreaterThan(campaign.TargetAmt) {
		return domain.Donation{}, ErrDonationExceedsTarget
	}

	var intent *stripe.PaymentIntent
	if s.stripeAPI != nil && paymentMethodID != "" {
		if intent, err = s.chargeCard(amount, paymentMethodID); err != nil {
			return domain.Donation{}, err
		}
	}

	donation := domain.Donation{
		CampaignID: campaign.ID,
		WalletID:   campaign.Wallet.ID,
		Amount:     amount,
	}

	created, completed, err := s.repo.Create(ctx, donation, campaign.TargetAmt)
	if err != nil {
		if intent != nil {
			s.refundCharge(intent)
		}

		if errors.Is(err, repository.ErrDonationExceedsTarget) {
			return domain.Donation{}, ErrDonationExceedsTarget
		}

		return domain.Donation{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if completed {
		zap.L().Info("campaign completed by donation",
			zap.Uint("campaign_id", campaign.ID),
			zap.String("amount", amount.String()))
	}

	if err = s.cache.Delete(ctx, activeCampaignsCacheKey); err != nil {
		zap.L().Warn("active campaigns cache invalidation failed", zap.Error(err))
	}

	return created, nil
}

func (s *DonationService) ListByCampaign(ctx context.Context, campaignID uint) ([]domain.Donation, error) {
	if _, err := s.campaignRepo.FindByID(ctx, campaignID); err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return nil, ErrCampaignNotFound
		}

		return nil, fmt.Errorf("s.campaignRepo.FindByID -> %w", err)
	}

	donations, err := s.repo.FindByCampaignID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByCampaignID -> %w", err)
	}

	return donations, nil
}

func (s *DonationService) chargeCard(amount decimal.Decimal, paymentMethodID string) (*stripe.PaymentIntent, error) {
	currency := s.stripeConf.Currency
	if currency == "" {
		currency = "inr"
	}

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(amount.Mul(decimal.NewFromInt(100)).IntPart()),
		Currency:      stripe.String(currency),
		PaymentMethod: stripe.String(paymentMethodID),
		Confirm:       stripe.Bool(true),
	}

	intent, err := s.stripeAPI.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, fmt.Errorf("%w: payment intent status %v", ErrPaymentFailed, intent.Status)
	}

	return intent, nil
}

// refundCharge reverses a captured payment when the donation could not
// be recorded. A failed refund is logged with the intent ID so it can
// be settled manually.
func (s *DonationService) refundCharge(intent *stripe.PaymentIntent) {
	_, err := s.stripeAPI.Refunds.New(&stripe.RefundParams{
		PaymentIntent: stripe.String(intent.ID),
	})
	if err != nil {
		zap.L().Error("refund of unrecorded donation failed",
			zap.String("payment_intent_id", intent.ID),
			zap.Error(err))
		return
	}

	zap.L().Warn("donation not recorded, payment refunded",
		zap.String("payment_intent_id", intent.ID))
}
