package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/betterfund/betterfund-api/internal/api/handler/v1/request"
	"github.com/betterfund/betterfund-api/internal/api/handler/v1/response"
	"github.com/betterfund/betterfund-api/internal/domain"
	"github.com/betterfund/betterfund-api/internal/service"
)

const maxStoryImageSize = 5 << 20 // 5 MiB

type StoryService interface {
	CreateStory(ctx context.Context, campaignID uint, updates string, image []byte) (domain.SuccessStory, error)
	ListRecent(ctx context.Context) ([]domain.StorySummary, error)
	GetStory(ctx context.Context, id uint) (domain.SuccessStory, error)
	GetImage(ctx context.Context, id uint) ([]byte, error)
	DeleteStory(ctx context.Context, id uint) error
	ListEligibleCampaigns(ctx context.Context) ([]domain.Campaign, error)
}

type StoryHandler struct {
	svc  StoryService
	uSvc UserService
}

func NewStoryHandler(svc StoryService, uSvc UserService) *StoryHandler {
	return &StoryHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListStories godoc
// @Summary      List recent success stories
// @Description  Returns the ten most recently published stories, newest first.
// @Tags         stories
// @Produce      json
// @Success      200  {array}   domain.StorySummary
// @Failure      500  {object}  response.Err
// @Router       /successstories [get]
func (h *StoryHandler) HandleListStories(ctx *gin.Context) {
	stories, err := h.svc.ListRecent(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListStories -> h.svc.ListRecent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, stories)
}

// HandleGetStory godoc
// @Summary      Get a success story by ID
// @Tags         stories
// @Produce      json
// @Param        storyID  path  int  true  "Story ID"
// @Success      200  {object}  domain.SuccessStory
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /successstories/{storyID} [get]
func (h *StoryHandler) HandleGetStory(ctx *gin.Context) {
	storyID, err := parseStoryID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	story, err := h.svc.GetStory(ctx.Request.Context(), storyID)
	if err != nil {
		if errors.Is(err, service.ErrStoryNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("story", "ID", storyID))
			return
		}

		err = fmt.Errorf("v1.HandleGetStory -> h.svc.GetStory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, story)
}

// HandleGetStoryImage godoc
// @Summary      Get a success story's cover image
// @Tags         stories
// @Produce      octet-stream
// @Param        storyID  path  int  true  "Story ID"
// @Success      200
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /successstories/image/{storyID} [get]
func (h *StoryHandler) HandleGetStoryImage(ctx *gin.Context) {
	storyID, err := parseStoryID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	image, err := h.svc.GetImage(ctx.Request.Context(), storyID)
	if err != nil {
		if errors.Is(err, service.ErrStoryNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("story", "ID", storyID))
			return
		}

		err = fmt.Errorf("v1.HandleGetStoryImage -> h.svc.GetImage -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Data(http.StatusOK, http.DetectContentType(image), image)
}

// HandleCreateStory godoc
// @Summary      Publish a success story
// @Description  Publishes a story for a completed campaign. The raised total is computed from recorded donations. Admin only.
// @Tags         stories,admin
// @Accept       multipart/form-data
// @Produce      json
// @Param        campaignId  formData  int     true  "Campaign ID"
// @Param        updates     formData  string  true  "story text"
// @Param        image       formData  file    true  "cover image"
// @Success      201  {object}  response.Envelope
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /successstories [post]
// @Security     BearerAuth
func (h *StoryHandler) HandleCreateStory(ctx *gin.Context) {
	if respErr := h.requireAdmin(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateStoryRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	image, err := readStoryImage(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	story, err := h.svc.CreateStory(ctx.Request.Context(), req.CampaignID, req.Updates, image)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCampaignNotFound):
			response.RenderErr(ctx, response.ErrNotFound("campaign", "ID", req.CampaignID))
		case errors.Is(err, service.ErrCampaignNotCompleted), errors.Is(err, service.ErrStoryExists):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleCreateStory -> h.svc.CreateStory -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	response.OK(ctx, http.StatusCreated, "success story published", story)
}

// HandleDeleteStory godoc
// @Summary      Delete a success story
// @Tags         stories,admin
// @Produce      json
// @Param        storyID  path  int  true  "Story ID"
// @Success      200  {object}  response.Envelope
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /successstories/{storyID} [delete]
// @Security     BearerAuth
func (h *StoryHandler) HandleDeleteStory(ctx *gin.Context) {
	if respErr := h.requireAdmin(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	storyID, err := parseStoryID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.svc.DeleteStory(ctx.Request.Context(), storyID); err != nil {
		if errors.Is(err, service.ErrStoryNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("story", "ID", storyID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteStory -> h.svc.DeleteStory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.OK(ctx, http.StatusOK, "success story deleted", nil)
}

// HandleListEligibleCampaigns godoc
// @Summary      List completed campaigns without a story
// @Tags         stories,admin
// @Produce      json
// @Success      200  {array}   domain.Campaign
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /successstories/completed [get]
// @Security     BearerAuth
func (h *StoryHandler) HandleListEligibleCampaigns(ctx *gin.Context) {
	if respErr := h.requireAdmin(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	campaigns, err := h.svc.ListEligibleCampaigns(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListEligibleCampaigns -> h.svc.ListEligibleCampaigns -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, campaigns)
}

func (h *StoryHandler) requireAdmin(ctx *gin.Context) *response.Err {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		return respErr
	}

	if !user.IsAdmin() {
		return response.ErrPermissionDenied(fmt.Errorf("user %v is not an admin", user.ID))
	}

	return nil
}

func parseStoryID(ctx *gin.Context) (uint, error) {
	storyID, err := strconv.ParseUint(ctx.Param("storyID"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid story ID: %w", err)
	}

	return uint(storyID), nil
}

func readStoryImage(ctx *gin.Context) ([]byte, error) {
	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		return nil, fmt.Errorf("cover image is required: %w", err)
	}

	if fileHeader.Size > maxStoryImageSize {
		return nil, errors.New("cover image exceeds the 5 MiB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded image: %w", err)
	}
	defer file.Close()

	return io.ReadAll(file)
}
