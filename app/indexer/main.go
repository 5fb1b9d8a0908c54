package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	bCtx "github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/base/database/mongoclient"
	"github.com/tonart/goindexer/base/indexer"
	"github.com/tonart/goindexer/base/log"
	"github.com/tonart/goindexer/domain"
	"github.com/tonart/goindexer/domain/ledger"
	mmiddleware "github.com/tonart/goindexer/middleware"
	"github.com/tonart/goindexer/service/query"
	"github.com/tonart/goindexer/service/ton"
	action_repository "github.com/tonart/goindexer/stores/action/repository"
	action_usecase "github.com/tonart/goindexer/stores/action/usecase"
	auction_repository "github.com/tonart/goindexer/stores/auction/repository"
	auction_usecase "github.com/tonart/goindexer/stores/auction/usecase"
	collection_repository "github.com/tonart/goindexer/stores/collection/repository"
	collection_usecase "github.com/tonart/goindexer/stores/collection/usecase"
	cursor_repository "github.com/tonart/goindexer/stores/cursor/repository"
	offer_repository "github.com/tonart/goindexer/stores/offer/repository"
	offer_usecase "github.com/tonart/goindexer/stores/offer/usecase"
	token_repository "github.com/tonart/goindexer/stores/token/repository"
	token_usecase "github.com/tonart/goindexer/stores/token/usecase"
	watermark_repository "github.com/tonart/goindexer/stores/watermark/repository"
)

func init() {
	config := pflag.String("config", "infra/configs/indexer/config.yaml", "config file path")
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
	// start server to pass cloud run health check
	startEchoServer()

	ctx, cancel := bCtx.WithCancel(bCtx.Background())

	graphqlUrl := viper.GetString("ton.graphqlUrl")
	sdkUrl := viper.GetString("ton.sdkUrl")
	abiDir := viper.GetString("ton.abiDir")
	httpTimeout := viper.GetDuration("http.timeout")
	artRoot := domain.Address(viper.GetString("roots.art")).ToLower()
	art2Root := domain.Address(viper.GetString("roots.art2")).ToLower()
	offerRoot := domain.Address(viper.GetString("roots.offer")).ToLower()
	watcherInterval := viper.GetDuration("watcher.interval")
	watcherErrorDelay := viper.GetDuration("watcher.errorDelay")
	reconcilerInterval := viper.GetDuration("reconciler.interval")
	reconcilerChunkDelay := viper.GetDuration("reconciler.chunkDelay")
	reconcilerErrorDelay := viper.GetDuration("reconciler.errorDelay")

	ctx.WithFields(log.Fields{
		"ton.graphqlUrl":      graphqlUrl,
		"ton.sdkUrl":          sdkUrl,
		"ton.abiDir":          abiDir,
		"http.timeout":        httpTimeout,
		"roots.art":           artRoot,
		"roots.art2":          art2Root,
		"roots.offer":         offerRoot,
		"watcher.interval":    watcherInterval,
		"reconciler.interval": reconcilerInterval,
	}).Info("config")

	ctx.Info("init mongo")
	q := initMongo()

	gateway := ton.New(&ton.ClientCfg{
		HttpClient: http.Client{},
		GraphqlUrl: graphqlUrl,
		SdkUrl:     sdkUrl,
		AbiDir:     abiDir,
		Timeout:    httpTimeout,
	})

	// repos
	actionRepo := action_repository.NewActionRepo(q)
	tokenRepo := token_repository.NewTokenRepo(q)
	auctionRepo := auction_repository.NewAuctionRepo(q)
	bidRepo := auction_repository.NewBidRepo(q)
	offerRepo := offer_repository.NewOfferRepo(q)
	collectionRepo := collection_repository.NewCollectionRepo(q)
	watermarkRepo := watermark_repository.NewWatermarkRepo(q)
	cursorRepo := cursor_repository.NewCursorRepo(q)

	// usecases
	actionUC := action_usecase.NewActionUsecase(actionRepo)
	auctionUC := auction_usecase.NewAuctionUsecase(auctionRepo, bidRepo)
	offerUC := offer_usecase.NewOfferUsecase(offerRepo)
	collectionUC := collection_usecase.NewCollectionUsecase(collectionRepo)
	tokenUC := token_usecase.NewTokenUsecase(tokenRepo, auctionUC, offerUC)

	clock := indexer.NewClock()

	registrar := indexer.NewRegistrar(&indexer.RegistrarCfg{
		Gateway:      gateway,
		TokenRepo:    tokenRepo,
		TokenUC:      tokenUC,
		ActionUC:     actionUC,
		OfferUC:      offerUC,
		CollectionUC: collectionUC,
		Clock:        clock,
	})

	checker := indexer.NewMessageChecker(gateway, watermarkRepo)
	checker.Register(art2Root, ledger.ContractArt2Root, indexer.SeriesRootEventHandler(checker, registrar))

	tokenWatcher := indexer.NewTokenWatcher(&indexer.TokenWatcherCfg{
		Gateway:    gateway,
		Registrar:  registrar,
		Cursors:    cursorRepo,
		Root:       artRoot,
		Interval:   watcherInterval,
		ErrorDelay: watcherErrorDelay,
		Clock:      clock,
	})
	offerWatcher := indexer.NewOfferWatcher(&indexer.OfferWatcherCfg{
		Gateway:    gateway,
		Registrar:  registrar,
		Cursors:    cursorRepo,
		Root:       offerRoot,
		Interval:   watcherInterval,
		ErrorDelay: watcherErrorDelay,
		Clock:      clock,
	})
	reconciler := indexer.NewReconciler(&indexer.ReconcilerCfg{
		Gateway:    gateway,
		Checker:    checker,
		TokenRepo:  tokenRepo,
		TokenUC:    tokenUC,
		ActionUC:   actionUC,
		AuctionUC:  auctionUC,
		OfferUC:    offerUC,
		Interval:   reconcilerInterval,
		ChunkDelay: reconcilerChunkDelay,
		ErrorDelay: reconcilerErrorDelay,
		Clock:      clock,
	})

	tokenWatcher.Start(ctx)
	offerWatcher.Start(ctx)
	reconciler.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	ctx.WithField("signal", sig).Info("received signal")

	cancel()
	tokenWatcher.Wait()
	offerWatcher.Wait()
	reconciler.Wait()
}

func startEchoServer() {
	context := bCtx.Background()

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"healthy": "ok"})
	})

	address := viper.GetString("server.address")
	context.WithField("address", address).Info("starting server")
	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			context.Error("shutting down the server")
		}
	}()
}

func initMongo() query.Mongo {
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	return query.New(mongoClient, checkIndex)
}
