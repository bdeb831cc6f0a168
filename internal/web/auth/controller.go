package auth

import (
	"context"
	"net/http"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v7"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	usermodel "github.com/Laisky/laisky-files-manager/internal/web/user/model"
)

// CredentialValidator checks a login attempt against the credential store.
// Implemented by the user registry service.
type CredentialValidator interface {
	ValidateLogin(ctx context.Context, email, password string) (*usermodel.User, error)
}

// Controller exposes login and logout over HTTP.
type Controller struct {
	logger   logSDK.Logger
	sessions *Manager
	users    CredentialValidator
}

// NewController creates the auth controller.
func NewController(logger logSDK.Logger, sessions *Manager, users CredentialValidator) *Controller {
	return &Controller{
		logger:   logger,
		sessions: sessions,
		users:    users,
	}
}

// Connect exchanges Basic credentials for a fresh session token.
//
// GET /connect
func (c *Controller) Connect(ctx *gin.Context) {
	email, password, ok := ctx.Request.BasicAuth()
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := c.users.ValidateLogin(ctx.Request.Context(), email, password)
	if err != nil {
		if errors.Is(err, usermodel.ErrInvalidCredentials) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		gmw.GetLogger(ctx).Error("validate login", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	token, err := c.sessions.Issue(ctx.Request.Context(), user.GetID())
	if err != nil {
		gmw.GetLogger(ctx).Error("issue session", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.logger.Info("user connected", zap.String("user", user.GetID()))
	ctx.JSON(http.StatusOK, gin.H{"token": token})
}

// Disconnect revokes the token carried in X-Token.
//
// GET /disconnect
func (c *Controller) Disconnect(ctx *gin.Context) {
	token := ctx.GetHeader(TokenHeader)

	if err := c.sessions.Revoke(ctx.Request.Context(), token); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		gmw.GetLogger(ctx).Error("revoke session", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
