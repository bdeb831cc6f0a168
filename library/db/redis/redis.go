// Package redis is a wrapper for go-redis.
package redis

import (
	"context"
	"time"

	gredis "github.com/Laisky/go-redis/v2"
	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// DB is a wrapper for go-redis
type DB struct {
	cli *redis.Client
	db  *gredis.Utils
}

// NewDB creates a new DB instance
func NewDB(opt *redis.Options) *DB {
	rdb := redis.NewClient(opt)
	rutils := gredis.NewRedisUtils(rdb)

	return &DB{
		cli: rdb,
		db:  rutils,
	}
}

// Utils returns the underlying go-redis utils.
func (d *DB) Utils() *gredis.Utils {
	return d.db
}

// IsAlive reports whether the server currently answers a bounded ping.
func (d *DB) IsAlive(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	return d.cli.Ping(ctx).Err() == nil
}
