// Package web gin server
package web

import (
	"net/http"
	"net/url"
	"strings"

	gmw "github.com/Laisky/gin-middlewares/v7"
	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/Laisky/laisky-files-manager/internal/web/auth"
	filesCtl "github.com/Laisky/laisky-files-manager/internal/web/files/controller"
	"github.com/Laisky/laisky-files-manager/internal/web/status"
	userCtl "github.com/Laisky/laisky-files-manager/internal/web/user/controller"
	"github.com/Laisky/laisky-files-manager/library/log"
)

// Controllers bundles the HTTP controllers mounted on the server.
type Controllers struct {
	Auth   *auth.Controller
	Users  *userCtl.Users
	Files  *filesCtl.Files
	Status *status.Controller
}

// NewServer builds the gin engine with all routes mounted. The token
// middleware guards every route except register, login, status and stats.
func NewServer(sessions *auth.Manager, ctls Controllers) *gin.Engine {
	if !gconfig.Shared.GetBool("debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	server := gin.New()
	server.Use(
		gin.Recovery(),
		gmw.NewLoggerMiddleware(
			gmw.WithLoggerMwColored(),
			gmw.WithLevel(log.Logger.Level().String()),
			gmw.WithLogger(log.Logger.Named("gin")),
		),
		allowCORS,
	)

	server.GET("/status", ctls.Status.GetStatus)
	server.GET("/stats", ctls.Status.GetStats)
	server.POST("/users", ctls.Users.PostNew)
	server.GET("/connect", ctls.Auth.Connect)

	authed := server.Group("/", auth.Middleware(sessions))
	authed.GET("/users/me", ctls.Users.GetMe)
	authed.GET("/disconnect", ctls.Auth.Disconnect)
	authed.POST("/files", ctls.Files.PostUpload)
	authed.GET("/files", ctls.Files.GetIndex)
	authed.GET("/files/:id", ctls.Files.GetShow)
	authed.PUT("/files/:id/publish", ctls.Files.PutPublish)
	authed.PUT("/files/:id/unpublish", ctls.Files.PutUnpublish)

	return server
}

// RunServer mounts the metrics endpoint and serves until the listener dies.
func RunServer(addr string, server *gin.Engine) {
	if err := gmw.EnableMetric(server); err != nil {
		log.Logger.Panic("enable metric server", zap.Error(err))
	}

	log.Logger.Info("listening on http", zap.String("addr", addr))
	log.Logger.Panic("httpServer exit", zap.Error(server.Run(addr)))
}

func allowCORS(ctx *gin.Context) {
	origin := ctx.Request.Header.Get("Origin")
	allowedOrigin := ""

	if origin != "" {
		parsedOriginURL, err := url.Parse(origin)
		if err == nil {
			host := strings.ToLower(parsedOriginURL.Hostname())
			for _, domain := range gconfig.Shared.GetStringSlice("settings.server.cors_domains") {
				if host == domain || strings.HasSuffix(host, "."+domain) {
					allowedOrigin = origin
					break
				}
			}
		}
	}

	if allowedOrigin != "" {
		ctx.Header("Access-Control-Allow-Origin", allowedOrigin)
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS, HEAD")
		ctx.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept, Origin, X-Token, X-Requested-With")
		ctx.Header("Access-Control-Max-Age", "86400")
		ctx.Header("Vary", "Origin")

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}
	} else if origin != "" && ctx.Request.Method == http.MethodOptions {
		// deny preflight from disallowed origins
		ctx.AbortWithStatus(http.StatusForbidden)
		return
	}

	ctx.Next()
}
