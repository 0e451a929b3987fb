package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Campaign lifecycle. New campaigns start pending and only an admin
// moves them to active or rejected; reaching the target completes them.
const (
	CampaignStatusPending   = "pending"
	CampaignStatusActive    = "active"
	CampaignStatusRejected  = "rejected"
	CampaignStatusCompleted = "completed"
)

type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Wallet struct {
	ID           uint            `json:"id"`
	UserID       uint            `json:"user_id"`
	Amount       decimal.Decimal `json:"amount"`
	CurBalance   decimal.Decimal `json:"cur_balance"`
	CreationDate time.Time       `json:"creation_date"`
}

type Document struct {
	ID          uint   `json:"id"`
	Content     []byte `json:"-"`
	ContentType string `json:"content_type"`
	FileName    string `json:"file_name"`
}

type Campaign struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	TargetAmt   decimal.Decimal `json:"target_amt"`
	Status      string          `json:"status"`
	User        User            `json:"user"`
	Category    Category        `json:"category"`
	Wallet      Wallet          `json:"wallet"`
	DocumentID  uint            `json:"document_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CampaignSummary is the reduced public projection used by the listing
// and detail endpoints.
type CampaignSummary struct {
	CampaignID uint            `json:"campaignId"`
	Title      string          `json:"title"`
	StartDate  time.Time       `json:"startDate"`
	EndDate    time.Time       `json:"endDate"`
	TargetAmt  decimal.Decimal `json:"targetAmt"`
	Status     string          `json:"status"`
	User       struct {
		Username string `json:"username"`
	} `json:"user"`
	Category struct {
		CategoryID uint   `json:"categoryId"`
		Name       string `json:"cname"`
	} `json:"category"`
	Wallet struct {
		Amount decimal.Decimal `json:"amount"`
	} `json:"wallet"`
}

func (c Campaign) Summary() CampaignSummary {
	s := CampaignSummary{
		CampaignID: c.ID,
		Title:      c.Title,
		StartDate:  c.StartDate,
		EndDate:    c.EndDate,
		TargetAmt:  c.TargetAmt,
		Status:     c.Status,
	}
	s.User.Username = c.User.Username
	s.Category.CategoryID = c.Category.ID
	s.Category.Name = c.Category.Name
	s.Wallet.Amount = c.Wallet.Amount

	return s
}

// DashboardStats is the admin overview of campaign counts and funds.
type DashboardStats struct {
	PendingCampaigns   int64           `json:"pending_campaigns"`
	ActiveCampaigns    int64           `json:"active_campaigns"`
	CompletedCampaigns int64           `json:"completed_campaigns"`
	RejectedCampaigns  int64           `json:"rejected_campaigns"`
	TotalFundsRaised   decimal.Decimal `json:"total_funds_raised"`
}
