package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

const dateLayout = "2006-01-02"

// CreateCampaignRequest carries the multipart form fields of a campaign
// submission. The proposal document arrives as a separate file part.
type CreateCampaignRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	CategoryID  uint   `form:"categoryId"`
	StartDate   string `form:"startDate"`
	EndDate     string `form:"endDate"`
	TargetAmt   string `form:"targetAmt"`
}

func (req *CreateCampaignRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 5000)),
		validation.Field(&req.CategoryID, validation.Required),
		validation.Field(&req.StartDate, validation.Required, validation.Date(dateLayout)),
		validation.Field(&req.EndDate, validation.Required, validation.Date(dateLayout)),
		validation.Field(&req.TargetAmt, validation.Required),
	)
}

type DonateRequest struct {
	Amount          string `json:"amount"`
	PaymentMethodID string `json:"paymentMethodId"`
}

func (req *DonateRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Amount, validation.Required),
	)
}

// CreateStoryRequest carries the multipart form fields of a success
// story. The cover image arrives as a separate file part.
type CreateStoryRequest struct {
	CampaignID uint   `form:"campaignId"`
	Updates    string `form:"updates"`
}

func (req *CreateStoryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CampaignID, validation.Required),
		validation.Field(&req.Updates, validation.Required, validation.Length(10, 5000)),
	)
}

type CreateCommentRequest struct {
	CampaignID uint   `json:"campaignId"`
	Author     string `json:"author"`
	Content    string `json:"content"`
}

func (req *CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CampaignID, validation.Required),
		validation.Field(&req.Author, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.Content, validation.Required, validation.Length(1, 1000)),
	)
}
