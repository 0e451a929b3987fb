package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/betterfund/betterfund-api/internal/api/handler/v1/request"
	"github.com/betterfund/betterfund-api/internal/api/handler/v1/response"
	"github.com/betterfund/betterfund-api/internal/domain"
	"github.com/betterfund/betterfund-api/internal/service"
)

type CommentService interface {
	CreateComment(ctx context.Context, campaignID uint, author, content string) (domain.Comment, error)
	ListByCampaign(ctx context.Context, campaignID uint) ([]domain.Comment, error)
}

type CommentHandler struct {
	svc CommentService
}

func NewCommentHandler(svc CommentService) *CommentHandler {
	return &CommentHandler{
		svc: svc,
	}
}

// HandleListComments godoc
// @Summary      List comments for a campaign
// @Tags         comments
// @Produce      json
// @Param        campaignId  query  int  true  "Campaign ID"
// @Success      200  {array}   domain.Comment
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /comments [get]
func (h *CommentHandler) HandleListComments(ctx *gin.Context) {
	campaignID, err := strconv.ParseUint(ctx.Query("campaignId"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid campaign ID: %w", err)))
		return
	}

	comments, err := h.svc.ListByCampaign(ctx.Request.Context(), uint(campaignID))
	if err != nil {
		err = fmt.Errorf("v1.HandleListComments -> h.svc.ListByCampaign -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, comments)
}

// HandleCreateComment godoc
// @Summary      Post a comment on a campaign
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        request  body  request.CreateCommentRequest  true  "comment details"
// @Success      201  {object}  response.Envelope
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /comments [post]
func (h *CommentHandler) HandleCreateComment(ctx *gin.Context) {
	var req request.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	comment, err := h.svc.CreateComment(ctx.Request.Context(), req.CampaignID, req.Author, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrCampaignNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("campaign", "ID", req.CampaignID))
			return
		}

		err = fmt.Errorf("v1.HandleCreateComment -> h.svc.CreateComment -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.OK(ctx, http.StatusCreated, "comment posted", comment)
}
