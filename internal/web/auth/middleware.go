package auth

import (
	"net/http"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v7"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TokenHeader carries the session token on every protected request.
const TokenHeader = "X-Token"

const ctxKeyUserID = "auth_user_id"

// Middleware resolves the X-Token header into the acting user id and aborts
// with 401 on any token failure. Store failures abort with 500 instead, so a
// Redis outage does not masquerade as a bad token.
func Middleware(sessions *Manager) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := ctx.GetHeader(TokenHeader)

		userID, err := sessions.Resolve(ctx.Request.Context(), token)
		if err != nil {
			if errors.Is(err, ErrUnauthorized) {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}

			gmw.GetLogger(ctx).Error("resolve session", zap.Error(err))
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}

		uid, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		ctx.Set(ctxKeyUserID, uid)
		ctx.Next()
	}
}

// CurrentUser returns the user id the middleware resolved for this request.
func CurrentUser(ctx *gin.Context) primitive.ObjectID {
	uid, _ := ctx.Get(ctxKeyUserID)
	oid, _ := uid.(primitive.ObjectID)
	return oid
}
