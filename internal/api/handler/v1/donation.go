package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/betterfund/betterfund-api/internal/api/handler/v1/request"
	"github.com/betterfund/betterfund-api/internal/api/handler/v1/response"
	"github.com/betterfund/betterfund-api/internal/domain"
	"github.com/betterfund/betterfund-api/internal/service"
)

type DonationService interface {
	Donate(ctx context.Context, campaignID uint, amount decimal.Decimal, paymentMethodID string) (domain.Donation, error)
	ListByCampaign(ctx context.Context, campaignID uint) ([]domain.Donation, error)
}

type DonationHandler struct {
	svc  DonationService
	uSvc UserService
}

func NewDonationHandler(svc DonationService, uSvc UserService) *DonationHandler {
	return &DonationHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleDonate godoc
// @Summary      Donate to a campaign
// @Description  Credits the campaign wallet. The campaign must be active and the donation may not exceed the remaining target.
// @Tags         donations
// @Accept       json
// @Produce      json
// @Param        campaignID  path  int  true  "Campaign ID"
// @Param        request     body  request.DonateRequest  true  "donation details"
// @Success      201  {object}  response.Envelope
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /campaigns/{campaignID}/donate [post]
// @Security     BearerAuth
func (h *DonationHandler) HandleDonate(ctx *gin.Context) {
	if _, respErr := getUserFromContext(ctx, h.uSvc); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	campaignID, err := parseCampaignID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.DonateRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("amount must be a number")))
		return
	}

	donation, err := h.svc.Donate(ctx.Request.Context(), campaignID, amount, req.PaymentMethodID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCampaignNotFound):
			response.RenderErr(ctx, response.ErrNotFound("campaign", "ID", campaignID))
		case errors.Is(err, service.ErrCampaignNotActive),
			errors.Is(err, service.ErrInvalidDonationAmount),
			errors.Is(err, service.ErrDonationExceedsTarget),
			errors.Is(err, service.ErrPaymentFailed):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleDonate -> h.svc.Donate -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	response.OK(ctx, http.StatusCreated, "donation recorded", donation)
}

// HandleListDonations godoc
// @Summary      List donations for a campaign
// @Tags         donations
// @Produce      json
// @Param        campaignID  path  int  true  "Campaign ID"
// @Success      200  {array}   domain.Donation
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /campaigns/{campaignID}/donations [get]
func (h *DonationHandler) HandleListDonations(ctx *gin.Context) {
	campaignID, err := parseCampaignID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	donations, err := h.svc.ListByCampaign(ctx.Request.Context(), campaignID)
	if err != nil {
		if errors.Is(err, service.ErrCampaignNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("campaign", "ID", campaignID))
			return
		}

		err = fmt.Errorf("v1.HandleListDonations -> h.svc.ListByCampaign -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, donations)
}
