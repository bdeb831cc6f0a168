// Package status exposes liveness and counters for the backing stores.
package status

import (
	"context"
	"net/http"

	gmw "github.com/Laisky/gin-middlewares/v7"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// Pinger answers a liveness probe.
type Pinger interface {
	IsAlive(ctx context.Context) bool
}

// Counter counts the records of one collection.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// Controller controller type
type Controller struct {
	logger logSDK.Logger
	db     Pinger
	cache  Pinger
	users  Counter
	files  Counter
}

// New create new controller
func New(logger logSDK.Logger, db, cache Pinger, users, files Counter) *Controller {
	return &Controller{
		logger: logger,
		db:     db,
		cache:  cache,
		users:  users,
		files:  files,
	}
}

// GetStatus reports whether both stores answer.
//
// GET /status
func (c *Controller) GetStatus(ctx *gin.Context) {
	rctx := ctx.Request.Context()
	ctx.JSON(http.StatusOK, gin.H{
		"redis": c.cache.IsAlive(rctx),
		"db":    c.db.IsAlive(rctx),
	})
}

// GetStats reports user and file counts, fetched concurrently.
//
// GET /stats
func (c *Controller) GetStats(ctx *gin.Context) {
	var users, files int64

	pool, rctx := errgroup.WithContext(ctx.Request.Context())
	pool.Go(func() (err error) {
		users, err = c.users.Count(rctx)
		return err
	})
	pool.Go(func() (err error) {
		files, err = c.files.Count(rctx)
		return err
	})

	if err := pool.Wait(); err != nil {
		gmw.GetLogger(ctx).Error("load stats", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"users": users,
		"files": files,
	})
}
