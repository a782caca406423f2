package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/InvArch/invarch-bridge-service/appstate"
	"github.com/InvArch/invarch-bridge-service/bridgectrl"
	"github.com/InvArch/invarch-bridge-service/chainman"
	"github.com/InvArch/invarch-bridge-service/coinmiddleware"
	"github.com/InvArch/invarch-bridge-service/config"
	"github.com/InvArch/invarch-bridge-service/db"
	"github.com/InvArch/invarch-bridge-service/localcache"
	"github.com/InvArch/invarch-bridge-service/log"
	"github.com/InvArch/invarch-bridge-service/messagepush"
	"github.com/InvArch/invarch-bridge-service/metrics"
	"github.com/InvArch/invarch-bridge-service/models"
	"github.com/InvArch/invarch-bridge-service/server"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func start(cliCtx *cli.Context) error {
	c, err := initCommon(cliCtx)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cliCtx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = db.RunMigrations(c.StateDB)
	if err != nil {
		log.Error(err)
		return err
	}
	storage, err := db.NewStorage(c.StateDB)
	if err != nil {
		log.Error(err)
		return err
	}
	defer func() {
		if err := storage.Close(); err != nil {
			log.Errorf("close storage error: %v", err)
		}
	}()

	state := appstate.New(storage)
	err = state.Hydrate(ctx)
	if err != nil {
		log.Error(err)
		return err
	}

	home, err := chainman.NewClient("home", c.Chain.HomeURL, c.Chain)
	if err != nil {
		log.Error(err)
		return err
	}
	defer home.Close()
	assetHub, err := chainman.NewClient("assethub", c.Chain.AssetHubURL, c.Chain)
	if err != nil {
		log.Error(err)
		return err
	}
	defer assetHub.Close()

	native, err := c.NativeAsset()
	if err != nil {
		log.Error(err)
		return err
	}
	registry := localcache.AssetSourceFunc(func(ctx context.Context) ([]*models.AssetDescriptor, error) {
		return chainman.ReadAssetRegistry(ctx, home)
	})
	assets, err := localcache.NewAssetCache(ctx, c.AssetCache, registry, native)
	if err != nil {
		log.Error(err)
		return err
	}

	bridgeController, err := bridgectrl.NewBridgeController(c.BridgeController, c.Chains(), assets, home, assetHub)
	if err != nil {
		log.Error(err)
		return err
	}

	var messagePushProducer messagepush.KafkaProducer
	if c.MessagePushProducer.Enabled {
		log.Infof("message push producer's switch is open, so init producer!")
		messagePushProducer, err = messagepush.NewKafkaProducer(c.MessagePushProducer)
		if err != nil {
			log.Error(err)
			return err
		}
		defer func() {
			err := messagePushProducer.Close()
			if err != nil {
				log.Errorf("close kafka producer error: %v", err)
			}
		}()
	}
	notifier := messagepush.NewNotifier(messagePushProducer, c.MessagePushProducer.DedupWindow.Duration)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		assets.Refresh(ctx)
		return nil
	})

	if len(c.CoinKafkaConsumer.Brokers) > 0 {
		// Start the coin middleware kafka consumer
		log.Debugf("start initializing kafka consumer...")
		coinKafkaConsumer, err := coinmiddleware.NewKafkaConsumer(c.CoinKafkaConsumer, state)
		if err != nil {
			log.Error(err)
			return err
		}
		log.Debugf("finish initializing kafka consumer")
		g.Go(func() error {
			coinKafkaConsumer.Start(ctx)
			return nil
		})
		defer func() {
			err := coinKafkaConsumer.Close()
			if err != nil {
				log.Errorf("close kafka consumer error: %v", err)
			}
		}()
	}

	// Start metrics
	g.Go(func() error {
		return metrics.StartMetricsHttpServer(ctx, c.Metrics)
	})

	operations := server.NewOperationRegistry(c.BridgeServer.OperationTTL.Duration, nil)
	bridgeService := server.NewBridgeService(ctx, server.Dependencies{
		Controller: bridgeController,
		Assets:     assets,
		State:      state,
		Home:       home,
		AssetHub:   assetHub,
		Notifier:   notifier,
		Producer:   messagePushProducer,
		Registry:   operations,
	})
	g.Go(func() error {
		return server.RunServer(ctx, c.BridgeServer, bridgeService)
	})

	err = g.Wait()
	// operations observe ctx, they return once it is done
	operations.Wait()
	if err != nil {
		log.Error(err)
	}
	return err
}

func initCommon(ctx *cli.Context) (*config.Config, error) {
	configFilePath := ctx.String(flagCfg)
	network := ctx.String(flagNetwork)

	c, err := config.Load(configFilePath, network)
	if err != nil {
		return nil, err
	}
	setupLog(c.Log)
	return c, nil
}

func setupLog(c log.Config) {
	log.Init(c)
}
