package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/teetime/campusride/internal/auth"
	"github.com/teetime/campusride/internal/config"
	"github.com/teetime/campusride/internal/domain/user"
	"github.com/teetime/campusride/internal/service"
)

type Registerer interface {
	Register(ctx context.Context, name, email, password, role string) (user.User, error)
	Login(ctx context.Context, email, password string) (user.User, error)
}

type AuthHandler struct {
	svc Registerer
	jwt *auth.Manager
}

func NewAuthHandler(svc Registerer, jwtManager *auth.Manager) *AuthHandler {
	return &AuthHandler{
		svc: svc,
		jwt: jwtManager,
	}
}

type SignUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=PASSENGER DRIVER BOTH"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) SignUp(ctx *gin.Context) {
	var req SignUpRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	u, err := h.svc.Register(cctx, req.Name, req.Email, req.Password, req.Role)

	if err != nil {
		var validationErr *service.ValidationError

		switch {
		case errors.Is(err, user.ErrEmailTaken):
			RespondConflict(ctx, "email_taken", "Email is already in use.")
		case errors.As(err, &validationErr):
			RespondBadRequest(ctx, validationErr.Message, gin.H{"field": validationErr.Field})
		default:
			RespondInternal(ctx, "Could not create user")
		}
		return
	}

	accessToken, err := h.jwt.GenerateAccessToken(u.ID, u.Email, u.Role)

	if err != nil {
		RespondInternal(ctx, "Could not generate access token")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"accessToken": accessToken,
		"user":        u,
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}
	// short timeout for the store lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.svc.Login(cctx, req.Email, req.Password)

	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			RespondUnAuthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
			return
		}

		RespondInternal(ctx, "Could not log in")
		return
	}

	accessToken, err := h.jwt.GenerateAccessToken(foundUser.ID, foundUser.Email, foundUser.Role)

	if err != nil {
		RespondInternal(ctx, "Could not generate access token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"accessToken": accessToken,
		"user":        foundUser,
	})
}
