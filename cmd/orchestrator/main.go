package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/omni/bridge-orchestrator/bridge"
	"github.com/omni/bridge-orchestrator/config"
	"github.com/omni/bridge-orchestrator/db"
	"github.com/omni/bridge-orchestrator/ethclient"
	"github.com/omni/bridge-orchestrator/lifi"
	"github.com/omni/bridge-orchestrator/logging"
	"github.com/omni/bridge-orchestrator/presenter"
	"github.com/omni/bridge-orchestrator/repository"
	"github.com/omni/bridge-orchestrator/signer"
)

func main() {
	logger := logging.New()
	_ = godotenv.Load()

	cfg, err := config.ReadConfigFromFile("config.yml")
	if err != nil {
		logger.WithError(err).Fatal("can't read config")
	}
	logger.SetLevel(logrus.Level(cfg.LogLevel))

	if cfg.Signer == nil || cfg.Signer.PrivateKey == "" {
		logger.Fatal("signer private key is not set")
	}

	dbConn, err := db.ConnectToDBAndMigrate(cfg.DBConfig)
	if err != nil {
		logger.WithError(err).Fatal("can't connect to database and apply migrations")
	}
	defer dbConn.Close()

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		err := http.ListenAndServe(":2112", nil)
		if err != nil {
			logger.WithError(err).Fatal("can't start listener for prometheus metrics")
		}
	}()

	clients := make(map[uint64]ethclient.Client, len(cfg.Chains))
	for name, chainCfg := range cfg.Chains {
		client, err2 := ethclient.NewClient(chainCfg.RPC.Host, chainCfg.RPC.Timeout, chainCfg.ChainID)
		if err2 != nil {
			logger.WithError(err2).WithField("chain", name).Fatal("can't dial rpc client")
		}
		clients[chainCfg.ChainID] = client
	}

	account, err := signer.NewAccount(cfg.Signer.PrivateKey, clients, logger.WithField("service", "signer"))
	if err != nil {
		logger.WithError(err).Fatal("can't initialize signing account")
	}

	repo := repository.NewRepo(dbConn)
	provider := lifi.NewClient(cfg.Provider, account, cfg.Policy.StatusPollInterval, logger.WithField("service", "lifi"))

	ctx, cancel := context.WithCancel(context.Background())
	recorder := bridge.NewRecorder(repo.BridgeRecords, logger.WithField("service", "recorder"))
	monitor := bridge.NewExecutionMonitor(ctx, provider, recorder, cfg.Policy, logger.WithField("service", "monitor"))
	service := bridge.NewService(
		bridge.NewValidator(cfg),
		bridge.NewRouteResolver(cfg, provider, account, logger.WithField("service", "resolver")),
		recorder,
		monitor,
		logger.WithField("service", "orchestrator"),
	)

	pr := presenter.NewPresenter(logger.WithField("service", "presenter"), service)
	go func() {
		err := pr.Serve(cfg.Presenter.Host)
		if err != nil {
			logger.WithError(err).Fatal("can't serve presenter")
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c
	logger.Warn("caught CTRL-C, gracefully terminating")
	cancel()
	monitor.Wait()
}
