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
	"github.com/betterfund/betterfund-api/internal/config"
	"github.com/betterfund/betterfund-api/internal/domain"
	"github.com/betterfund/betterfund-api/internal/pkg/jwthelper"
	"github.com/betterfund/betterfund-api/internal/service"
)

type AuthService interface {
	Register(ctx context.Context, user domain.User) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, error)
	ChangeRole(ctx context.Context, sender domain.User, targetEmail string, newRoleID uint) error
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
	uSvc UserService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService, uSvc UserService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleRegister godoc
// @Summary      Register a new user
// @Description  Creates an account with the default Donor role
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.RegisterRequest true "request body"
// @Success      201      {object}   response.RegisterResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/register [post]
func (h *AuthHandler) HandleRegister(ctx *gin.Context) {
	var req request.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.Register(ctx.Request.Context(), domain.User{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		NationalID: req.NationalID,
		Phone:      req.Phone,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserEmailExists) ||
			errors.Is(err, service.ErrUserNationalIDExists) ||
			errors.Is(err, service.ErrUserPhoneExists) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleRegister -> h.svc.Register -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.RegisterResponse{
		Success: true,
		Message: "registration successful",
		User:    response.NewUserSummary(user),
	})
}

// HandleLogin godoc
// @Summary      Login a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.svc.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(errors.New("invalid email or password")))

			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), user.ID, ctx.Request.UserAgent())
	if err != nil {
		err = fmt.Errorf("v1.HandleLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Success: true,
		Message: "login successful",
		Token:   token,
		User:    response.NewUserSummary(user),
	})
}

// HandleChangeRole godoc
// @Summary      Change a user's role
// @Description  Overwrites the target user's role. Admin only.
// @Tags         auth
// @Produce      json
// @Param        targetEmail  query  string  true  "email of the user to update"
// @Param        newRoleId    query  int     true  "ID of the role to assign"
// @Success      200  {object}  response.Envelope
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /auth/admin/changerole [post]
// @Security     BearerAuth
func (h *AuthHandler) HandleChangeRole(ctx *gin.Context) {
	sender, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	targetEmail := ctx.Query("targetEmail")
	if targetEmail == "" {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("targetEmail is required")))
		return
	}

	newRoleID, err := strconv.ParseUint(ctx.Query("newRoleId"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid newRoleId: %w", err)))
		return
	}

	err = h.svc.ChangeRole(ctx.Request.Context(), sender, targetEmail, uint(newRoleID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccessDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrRoleNotFound):
			response.RenderErr(ctx, response.ErrNotFound("role", "ID", newRoleID))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "email", targetEmail))
		default:
			err = fmt.Errorf("v1.HandleChangeRole -> h.svc.ChangeRole -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	response.OK(ctx, http.StatusOK, "role updated successfully", nil)
}
