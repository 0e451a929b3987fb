package v1

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/betterfund/betterfund-api/internal/api/handler/v1/response"
	"github.com/betterfund/betterfund-api/internal/api/middleware"
	"github.com/betterfund/betterfund-api/internal/domain"
	"github.com/betterfund/betterfund-api/internal/service"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

// getUserFromContext resolves the authenticated user set by the JWT
// middleware. The role is always read fresh from the store so a role
// change takes effect without re-issuing the token.
func getUserFromContext(ctx *gin.Context, uSvc UserService) (domain.User, *response.Err) {
	raw, ok := ctx.Get(middleware.ContextKeyUserID)
	if !ok {
		return domain.User{}, response.ErrUnauthorized(errors.New("user not authenticated"))
	}

	userID, ok := raw.(uint)
	if !ok {
		return domain.User{}, response.ErrUnauthorized(errors.New("user not authenticated"))
	}

	user, err := uSvc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.User{}, response.ErrUnauthorized(errors.New("user not found"))
		}

		return domain.User{}, response.ErrInternalServerError(fmt.Errorf("getUserFromContext -> uSvc.GetUser -> %w", err))
	}

	return user, nil
}
