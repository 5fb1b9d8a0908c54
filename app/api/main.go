package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/base/database/mongoclient"
	"github.com/tonart/goindexer/base/database/redisclient"
	"github.com/tonart/goindexer/base/log"
	"github.com/tonart/goindexer/base/metrics"
	bValidator "github.com/tonart/goindexer/base/validator"
	mmiddleware "github.com/tonart/goindexer/middleware"
	"github.com/tonart/goindexer/service/query"
	"github.com/tonart/goindexer/service/redis"
	action_delivery "github.com/tonart/goindexer/stores/action/delivery/http"
	action_repository "github.com/tonart/goindexer/stores/action/repository"
	action_usecase "github.com/tonart/goindexer/stores/action/usecase"
	auction_delivery "github.com/tonart/goindexer/stores/auction/delivery/http"
	auction_repository "github.com/tonart/goindexer/stores/auction/repository"
	auction_usecase "github.com/tonart/goindexer/stores/auction/usecase"
	collection_delivery "github.com/tonart/goindexer/stores/collection/delivery/http"
	collection_repository "github.com/tonart/goindexer/stores/collection/repository"
	collection_usecase "github.com/tonart/goindexer/stores/collection/usecase"
	hc_delivery "github.com/tonart/goindexer/stores/healthcheck/delivery/http"
	hc_repo "github.com/tonart/goindexer/stores/healthcheck/repository"
	hc_usecase "github.com/tonart/goindexer/stores/healthcheck/usecase"
	offer_delivery "github.com/tonart/goindexer/stores/offer/delivery/http"
	offer_repository "github.com/tonart/goindexer/stores/offer/repository"
	offer_usecase "github.com/tonart/goindexer/stores/offer/usecase"
	token_delivery "github.com/tonart/goindexer/stores/token/delivery/http"
	token_repository "github.com/tonart/goindexer/stores/token/repository"
	token_usecase "github.com/tonart/goindexer/stores/token/usecase"
)

func init() {
	config := pflag.String("config", "infra/configs/api/config.yaml", "config file path")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*config)
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	// init Redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), &redis.Pools{
		Src: redisCachePool,
	})

	mmiddleware.SetupCache(redisCache)

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	actionRepo := action_repository.NewActionRepo(q)
	tokenRepo := token_repository.NewTokenRepo(q)
	auctionRepo := auction_repository.NewAuctionRepo(q)
	bidRepo := auction_repository.NewBidRepo(q)
	offerRepo := offer_repository.NewOfferRepo(q)
	collectionRepo := collection_repository.NewCollectionRepo(q)

	hc := hc_usecase.New(hcRepo)
	action := action_usecase.NewActionUsecase(actionRepo)
	auction := auction_usecase.NewAuctionUsecase(auctionRepo, bidRepo)
	offer := offer_usecase.NewOfferUsecase(offerRepo)
	collection := collection_usecase.NewCollectionUsecase(collectionRepo)
	token := token_usecase.NewTokenUsecase(tokenRepo, auction, offer)

	hc_delivery.New(e, hc)
	action_delivery.New(e, action)
	token_delivery.New(e, token)
	auction_delivery.New(e, auction)
	offer_delivery.New(e, offer)
	collection_delivery.New(e, collection)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	shutdownCtx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
