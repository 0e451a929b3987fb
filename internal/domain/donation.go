package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Donation struct {
	ID           uint            `json:"id"`
	CampaignID   uint            `json:"campaign_id"`
	WalletID     uint            `json:"wallet_id"`
	Amount       decimal.Decimal `json:"amount"`
	DonationTime time.Time       `json:"donation_time"`
}

type SuccessStory struct {
	ID         uint            `json:"success_id"`
	CampaignID uint            `json:"campaign_id"`
	Updates    string          `json:"updates"`
	FundRaised decimal.Decimal `json:"fund_raised"`
	Image      []byte          `json:"-"`
	CreatedAt  time.Time       `json:"created_at"`
}

// StorySummary carries the campaign and creator context the listing
// endpoint attaches to each story.
type StorySummary struct {
	SuccessID         uint            `json:"successId"`
	CampaignID        uint            `json:"campaignId"`
	CampaignTitle     string          `json:"campaignTitle"`
	CampaignStartDate time.Time       `json:"campaignStartDate"`
	CampaignEndDate   time.Time       `json:"campaignEndDate"`
	UserName          string          `json:"userName"`
	Updates           string          `json:"updates"`
	FundRaised        decimal.Decimal `json:"fundRaised"`
	ImageURL          string          `json:"imageURL"`
}

type Comment struct {
	ID         uint      `json:"id"`
	CampaignID uint      `json:"campaign_id"`
	Author     string    `json:"author"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}
