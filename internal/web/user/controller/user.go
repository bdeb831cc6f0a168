// Package controller exposes the user registry over HTTP.
package controller

import (
	"net/http"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v7"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/Laisky/laisky-files-manager/internal/web/auth"
	"github.com/Laisky/laisky-files-manager/internal/web/user/model"
	"github.com/Laisky/laisky-files-manager/internal/web/user/service"
)

// Users controller type
type Users struct {
	logger logSDK.Logger
	svc    *service.Registry
}

// New create new controller
func New(logger logSDK.Logger, svc *service.Registry) *Users {
	return &Users{
		logger: logger,
		svc:    svc,
	}
}

type newUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PostNew registers a new user.
//
// POST /users
func (c *Users) PostNew(ctx *gin.Context) {
	req := new(newUserRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing email"})
		return
	}

	user, err := c.svc.Register(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingEmail):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing email"})
		case errors.Is(err, service.ErrMissingPassword):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing password"})
		case errors.Is(err, service.ErrAlreadyExists):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Already exist"})
		default:
			gmw.GetLogger(ctx).Error("register user", zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		}
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"id":    user.GetID(),
		"email": user.Email,
	})
}

// GetMe returns the authenticated user's identity.
//
// GET /users/me
func (c *Users) GetMe(ctx *gin.Context) {
	uid := auth.CurrentUser(ctx)

	user, err := c.svc.WhoAmI(ctx.Request.Context(), uid)
	if err != nil {
		// a token pointing at a vanished user is just an invalid token
		if errors.Is(err, model.ErrUserNotFound) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		gmw.GetLogger(ctx).Error("load current user", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"id":    user.GetID(),
		"email": user.Email,
	})
}
