package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/betterfund/betterfund-api/internal/api/handler/v1/request"
	"github.com/betterfund/betterfund-api/internal/api/handler/v1/response"
	"github.com/betterfund/betterfund-api/internal/domain"
	"github.com/betterfund/betterfund-api/internal/service"
)

const maxDocumentSize = 10 << 20 // 10 MiB

type CampaignService interface {
	CreateCampaign(ctx context.Context, userID uint, campaign domain.Campaign, doc domain.Document) (domain.Campaign, error)
	ListActive(ctx context.Context) ([]domain.CampaignSummary, error)
	GetCampaign(ctx context.Context, id uint) (domain.CampaignSummary, error)
	ListPending(ctx context.Context) ([]domain.Campaign, error)
	ApproveCampaign(ctx context.Context, id uint) error
	RejectCampaign(ctx context.Context, id uint) error
	GetDashboardStats(ctx context.Context) (domain.DashboardStats, error)
	GetDocument(ctx context.Context, campaignID uint) (domain.Document, error)
}

type CampaignHandler struct {
	svc  CampaignService
	uSvc UserService
}

func NewCampaignHandler(svc CampaignService, uSvc UserService) *CampaignHandler {
	return &CampaignHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateCampaign godoc
// @Summary      Submit a new campaign
// @Description  Creates a pending campaign with its proposal document and a zero-balance wallet. The submitter is promoted to Campaign Creator.
// @Tags         campaigns
// @Accept       multipart/form-data
// @Produce      json
// @Param        title         formData  string  true   "campaign title"
// @Param        description   formData  string  false  "campaign description"
// @Param        categoryId    formData  int     true   "category ID"
// @Param        startDate     formData  string  true   "start date (YYYY-MM-DD)"
// @Param        endDate       formData  string  true   "end date (YYYY-MM-DD)"
// @Param        targetAmt     formData  string  true   "target amount"
// @Param        documentFile  formData  file    true   "proposal document"
// @Success      201  {object}  response.Envelope
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /campaigns/create [post]
// @Security     BearerAuth
func (h *CampaignHandler) HandleCreateCampaign(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateCampaignRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid start date: %v", err)))
		return
	}

	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid end date: %v", err)))
		return
	}

	if endDate.Before(startDate) {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("end date must not be before start date")))
		return
	}

	targetAmt, err := decimal.NewFromString(req.TargetAmt)
	if err != nil || targetAmt.LessThanOrEqual(decimal.Zero) {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("target amount must be a positive number")))
		return
	}

	doc, err := readDocumentFile(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	campaign := domain.Campaign{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		TargetAmt:   targetAmt,
		Category:    domain.Category{ID: req.CategoryID},
	}

	created, err := h.svc.CreateCampaign(ctx.Request.Context(), user.ID, campaign, doc)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			response.RenderErr(ctx, response.ErrNotFound("category", "ID", req.CategoryID))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", user.ID))
		default:
			err = fmt.Errorf("v1.HandleCreateCampaign -> h.svc.CreateCampaign -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	response.OK(ctx, http.StatusCreated, "campaign submitted for review", created.Summary())
}

// HandleListActive godoc
// @Summary      List active campaigns
// @Tags         campaigns
// @Produce      json
// @Success      200  {array}   domain.CampaignSummary
// @Failure      500  {object}  response.Err
// @Router       /campaigns/active [get]
func (h *CampaignHandler) HandleListActive(ctx *gin.Context) {
	campaigns, err := h.svc.ListActive(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListActive -> h.svc.ListActive -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, campaigns)
}

// HandleGetCampaign godoc
// @Summary      Get a campaign by ID
// @Tags         campaigns
// @Produce      json
// @Param        campaignID  path      int  true  "Campaign ID"
// @Success      200  {object}  domain.CampaignSummary
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /campaigns/{campaignID} [get]
func (h *CampaignHandler) HandleGetCampaign(ctx *gin.Context) {
	campaignID, err := parseCampaignID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	campaign, err := h.svc.GetCampaign(ctx.Request.Context(), campaignID)
	if err != nil {
		if errors.Is(err, service.ErrCampaignNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("campaign", "ID", campaignID))
			return
		}

		err = fmt.Errorf("v1.HandleGetCampaign -> h.svc.GetCampaign -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, campaign)
}

// HandleGetDocument godoc
// @Summary      Download a campaign's proposal document
// @Tags         campaigns
// @Produce      octet-stream
// @Param        campaignID  path  int  true  "Campaign ID"
// @Success      200
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /campaigns/{campaignID}/document [get]
func (h *CampaignHandler) HandleGetDocument(ctx *gin.Context) {
	campaignID, err := parseCampaignID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	doc, err := h.svc.GetDocument(ctx.Request.Context(), campaignID)
	if err != nil {
		if errors.Is(err, service.ErrCampaignNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("campaign", "ID", campaignID))
			return
		}

		err = fmt.Errorf("v1.HandleGetDocument -> h.svc.GetDocument -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	contentType := doc.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", doc.FileName))
	ctx.Data(http.StatusOK, contentType, doc.Content)
}

// HandleListPending godoc
// @Summary      List campaigns awaiting review
// @Description  Returns full campaign records for the admin review queue.
// @Tags         campaigns,admin
// @Produce      json
// @Success      200  {array}   domain.Campaign
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /campaigns/admin/pending-campaigns [get]
// @Security     BearerAuth
func (h *CampaignHandler) HandleListPending(ctx *gin.Context) {
	if respErr := h.requireAdmin(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	campaigns, err := h.svc.ListPending(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListPending -> h.svc.ListPending -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, campaigns)
}

// HandleApprove godoc
// @Summary      Approve a pending campaign
// @Tags         campaigns,admin
// @Produce      json
// @Param        campaignID  path  int  true  "Campaign ID"
// @Success      200  {object}  response.Envelope
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /campaigns/admin/{campaignID}/approve [post]
// @Security     BearerAuth
func (h *CampaignHandler) HandleApprove(ctx *gin.Context) {
	h.review(ctx, h.svc.ApproveCampaign, "campaign approved")
}

// HandleReject godoc
// @Summary      Reject a pending campaign
// @Tags         campaigns,admin
// @Produce      json
// @Param        campaignID  path  int  true  "Campaign ID"
// @Success      200  {object}  response.Envelope
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /campaigns/admin/{campaignID}/reject [post]
// @Security     BearerAuth
func (h *CampaignHandler) HandleReject(ctx *gin.Context) {
	h.review(ctx, h.svc.RejectCampaign, "campaign rejected")
}

// HandleDashboardStats godoc
// @Summary      Admin dashboard statistics
// @Tags         campaigns,admin
// @Produce      json
// @Success      200  {object}  domain.DashboardStats
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /campaigns/admin/dashboard-stats [get]
// @Security     BearerAuth
func (h *CampaignHandler) HandleDashboardStats(ctx *gin.Context) {
	if respErr := h.requireAdmin(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	stats, err := h.svc.GetDashboardStats(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleDashboardStats -> h.svc.GetDashboardStats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

func (h *CampaignHandler) review(ctx *gin.Context, action func(context.Context, uint) error, successMsg string) {
	if respErr := h.requireAdmin(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	campaignID, err := parseCampaignID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = action(ctx.Request.Context(), campaignID); err != nil {
		switch {
		case errors.Is(err, service.ErrCampaignNotFound):
			response.RenderErr(ctx, response.ErrNotFound("campaign", "ID", campaignID))
		case errors.Is(err, service.ErrCampaignNotPending):
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("campaign is not awaiting review")))
		default:
			err = fmt.Errorf("v1.review -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	response.OK(ctx, http.StatusOK, successMsg, nil)
}

func (h *CampaignHandler) requireAdmin(ctx *gin.Context) *response.Err {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		return respErr
	}

	if !user.IsAdmin() {
		return response.ErrPermissionDenied(fmt.Errorf("user %v is not an admin", user.ID))
	}

	return nil
}

func parseCampaignID(ctx *gin.Context) (uint, error) {
	campaignID, err := strconv.ParseUint(ctx.Param("campaignID"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid campaign ID: %w", err)
	}

	return uint(campaignID), nil
}

func readDocumentFile(ctx *gin.Context) (domain.Document, error) {
	fileHeader, err := ctx.FormFile("documentFile")
	if err != nil {
		return domain.Document{}, fmt.Errorf("proposal document is required: %w", err)
	}

	if fileHeader.Size > maxDocumentSize {
		return domain.Document{}, errors.New("proposal document exceeds the 10 MiB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return domain.Document{}, fmt.Errorf("failed to open uploaded document: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return domain.Document{}, fmt.Errorf("failed to read uploaded document: %w", err)
	}

	return domain.Document{
		Content:     content,
		ContentType: fileHeader.Header.Get("Content-Type"),
		FileName:    fileHeader.Filename,
	}, nil
}
