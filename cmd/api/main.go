package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"HobbyHop/internal/config"
	"HobbyHop/internal/handler"
	"HobbyHop/internal/httpserver"
	"HobbyHop/internal/pkg"
	"HobbyHop/internal/repository/minio"
	"HobbyHop/internal/repository/mysql"
	"HobbyHop/internal/repository/redis"
	"HobbyHop/internal/router"
	"HobbyHop/internal/service"

	"go.uber.org/zap"
)

var defaultCategories = []string{"运动", "音乐", "读书", "户外", "游戏", "美食", "摄影", "其他"}

func main() {
	envFile := flag.String("env", ".env", "path to env file")
	flag.Parse()

	conf, err := config.New(*envFile)
	if err != nil {
		panic(err)
	}

	log, err := pkg.NewLogger(conf.Log.Mode)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, conf, log)
	stop()
	if err != nil {
		log.Error("server exited", zap.Error(err))
	}
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, conf *config.Config, log *zap.Logger) error {
	db, err := mysql.InitDB(conf.MySQL.DSN)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	// 自动建表（开发阶段 OK）
	if err = mysql.AutoMigrate(db); err != nil {
		return err
	}
	store := mysql.NewStore(db)
	if err = store.Categories.Seed(ctx, defaultCategories...); err != nil {
		return err
	}

	// 连接redis
	rdb, err := redis.Init(conf.Redis.Addr, conf.Redis.Password, conf.Redis.DB)
	if err != nil {
		return err
	}
	defer rdb.Close()

	images, err := minio.New(conf.MinIO)
	if err != nil {
		return err
	}

	producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{Brokers: conf.Kafka.Brokers, Topic: conf.Kafka.Topic})
	if err != nil {
		return err
	}
	defer producer.Close()

	tokens := pkg.NewTokenManager(conf.JWT.AccessSecret, conf.JWT.RefreshSecret, conf.JWT.AccessTTL, conf.JWT.RefreshTTL)
	sessions := redis.NewSessionRepository(rdb, tokens.AccessTTL())

	users := service.NewUserService(store, sessions, tokens)
	clubs := service.NewClubService(store)
	members := service.NewMemberService(store)
	posts := service.NewPostService(store, images)
	comments := service.NewCommentService(store)
	likes := service.NewPostLikeService(store, redis.NewLikeCacheRepository(rdb), &redis.DistLock{RDB: rdb}, log)

	relayer := service.NewOutboxRelayer(store, service.KafkaSender(producer), log.Named("outbox"))
	go relayer.Run(ctx)

	r := router.InitRouter(router.Handlers{
		User:     handler.NewUserHandler(users),
		Club:     handler.NewClubHandler(clubs, members),
		Post:     handler.NewPostHandler(posts, comments),
		PostLike: handler.NewPostLikeHandler(likes),
	}, users, log)

	return httpserver.New(conf.HTTPServer, r, log).Run(ctx)
}
