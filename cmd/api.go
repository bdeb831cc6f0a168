package cmd

import (
	"context"

	gconfig "github.com/Laisky/go-config/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	"github.com/Laisky/zap"
	redisLib "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/Laisky/laisky-files-manager/internal/web"
	"github.com/Laisky/laisky-files-manager/internal/web/auth"
	filesCtl "github.com/Laisky/laisky-files-manager/internal/web/files/controller"
	filesDao "github.com/Laisky/laisky-files-manager/internal/web/files/dao"
	filesSvc "github.com/Laisky/laisky-files-manager/internal/web/files/service"
	"github.com/Laisky/laisky-files-manager/internal/web/status"
	userCtl "github.com/Laisky/laisky-files-manager/internal/web/user/controller"
	userDao "github.com/Laisky/laisky-files-manager/internal/web/user/dao"
	userSvc "github.com/Laisky/laisky-files-manager/internal/web/user/service"
	mongoSDK "github.com/Laisky/laisky-files-manager/library/db/mongo"
	redisSDK "github.com/Laisky/laisky-files-manager/library/db/redis"
	"github.com/Laisky/laisky-files-manager/library/log"
	"github.com/Laisky/laisky-files-manager/library/storage"
)

var apiCMD = &cobra.Command{
	Use:   "api",
	Short: "api",
	Long:  `HTTP API of the files manager`,
	Args:  gcmd.NoExtraArgs,
	PreRun: func(cmd *cobra.Command, args []string) {
		if err := initialize(context.Background(), cmd); err != nil {
			log.Logger.Panic("init", zap.Error(err))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		runAPI(context.Background())
	},
}

func init() {
	rootCMD.AddCommand(apiCMD)
}

func runAPI(ctx context.Context) {
	db, err := mongoSDK.NewDB(ctx, mongoSDK.DialInfo{
		Addr:   gconfig.Shared.GetString("settings.db.files.addr"),
		DBName: gconfig.Shared.GetString("settings.db.files.db"),
		User:   gconfig.Shared.GetString("settings.db.files.user"),
		Pwd:    gconfig.Shared.GetString("settings.db.files.pwd"),
	})
	if err != nil {
		log.Logger.Panic("connect to files db", zap.Error(err))
	}

	cache := redisSDK.NewDB(&redisLib.Options{
		Addr:     gconfig.Shared.GetString("settings.session.redis.addr"),
		DB:       gconfig.Shared.GetInt("settings.session.redis.db"),
		Password: gconfig.Shared.GetString("settings.session.redis.password"),
	})

	blob := newBlobStore(ctx)

	udao := userDao.New(log.Logger.Named("user_dao"), db)
	fdao := filesDao.New(log.Logger.Named("files_dao"), db)

	registry := userSvc.New(log.Logger.Named("user"), udao)
	hierarchy := filesSvc.New(log.Logger.Named("files"), fdao, blob)

	sessions := auth.NewManager(auth.NewRedisSessionStore(cache.Utils()))

	server := web.NewServer(sessions, web.Controllers{
		Auth:   auth.NewController(log.Logger.Named("auth"), sessions, registry),
		Users:  userCtl.New(log.Logger.Named("user_ctl"), registry),
		Files:  filesCtl.New(log.Logger.Named("files_ctl"), hierarchy),
		Status: status.New(log.Logger.Named("status"), db, cache, registry, hierarchy),
	})

	web.RunServer(gconfig.Shared.GetString("listen"), server)
}

func newBlobStore(ctx context.Context) storage.Blob {
	switch backend := gconfig.Shared.GetString("settings.storage.backend"); backend {
	case "minio":
		blob, err := storage.NewMinio(ctx, storage.MinioOptions{
			Endpoint:  gconfig.Shared.GetString("settings.storage.endpoint"),
			AccessKey: gconfig.Shared.GetString("settings.storage.access_key"),
			SecretKey: gconfig.Shared.GetString("settings.storage.secret_key"),
			Bucket:    gconfig.Shared.GetString("settings.storage.bucket"),
			UseSSL:    gconfig.Shared.GetBool("settings.storage.use_ssl"),
		})
		if err != nil {
			log.Logger.Panic("connect to minio", zap.Error(err))
		}

		return blob
	case "", "local":
		dir := gconfig.Shared.GetString("settings.storage.dir")
		if dir == "" {
			dir = "/tmp/files_manager"
		}

		blob, err := storage.NewLocal(dir)
		if err != nil {
			log.Logger.Panic("prepare local storage", zap.Error(err))
		}

		return blob
	default:
		log.Logger.Panic("unknown storage backend", zap.String("backend", backend))
		return nil
	}
}
