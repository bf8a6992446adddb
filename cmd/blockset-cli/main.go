package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/walletsync/blockset-go/blockset"
	"github.com/walletsync/blockset-go/internal/clock"
	"github.com/walletsync/blockset-go/internal/metrics"
)

var config struct {
	BaseURL      string        `long:"base-url" env:"BLOCKSET_BASE_URL" description:"data service base url" default:"https://api.blockset.com"`
	Token        string        `long:"token" env:"BLOCKSET_TOKEN" description:"bearer token"`
	Blockchain   string        `long:"blockchain" env:"BLOCKSET_BLOCKCHAIN" description:"blockchain id" default:"bitcoin-mainnet"`
	Addresses    string        `long:"addresses" env:"BLOCKSET_ADDRESSES" description:"comma separated addresses to query transactions for"`
	StartHeight  uint64        `long:"start-height" env:"BLOCKSET_START_HEIGHT" description:"first block height"`
	EndHeight    uint64        `long:"end-height" env:"BLOCKSET_END_HEIGHT" description:"last block height"`
	RPS          int           `long:"rps" env:"BLOCKSET_RPS" description:"request pacing, requests per second"`
	Watch        bool          `long:"watch" env:"BLOCKSET_WATCH" description:"poll the verified block height until interrupted"`
	PollInterval time.Duration `long:"poll-interval" env:"BLOCKSET_POLL_INTERVAL" description:"watch poll interval" default:"30s"`
	MetricsAddr  string        `long:"metrics-addr" env:"BLOCKSET_METRICS_ADDR" description:"serve prometheus metrics on this addr when set"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		logger.Fatal("Failed to parse arguments", zap.Error(err))
	}

	if config.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(config.MetricsAddr, mux); err != nil {
				logger.Error("Failed to serve metrics", zap.Error(err))
			}
		}()
	}

	client, err := blockset.NewClient(blockset.Config{
		BaseURL:           config.BaseURL,
		Token:             config.Token,
		RequestsPerSecond: config.RPS,
		Metrics:           metrics.NewSystemClient(config.Blockchain),
		Logger:            logger,
	})
	if err != nil {
		logger.Fatal("Failed to build client", zap.Error(err))
	}

	if config.Watch {
		watchBlockHeight(ctx, logger, client)
		return
	}

	var wg sync.WaitGroup
	var failed atomic.Bool

	wg.Add(1)
	client.GetBlockchain(config.Blockchain, func(chain blockset.Blockchain, err error) {
		defer wg.Done()
		if err != nil {
			failed.Store(true)
			logger.Error("Failed to fetch blockchain", zap.Error(err))
			return
		}
		printJSON(logger, chain)
	})

	if config.Addresses != "" {
		wg.Add(1)
		query := blockset.TransactionsQuery{
			BlockchainID:     config.Blockchain,
			Addresses:        strings.Split(config.Addresses, ","),
			BeginBlockNumber: &config.StartHeight,
			EndBlockNumber:   &config.EndHeight,
			IncludeRaw:       true,
			IncludeTransfers: true,
		}
		client.GetTransactions(query, func(transactions []blockset.Transaction, err error) {
			defer wg.Done()
			if err != nil {
				failed.Store(true)
				logger.Error("Failed to fetch transactions", zap.Error(err))
				return
			}
			logger.Info("Fetched transactions", zap.Int("count", len(transactions)))
			printJSON(logger, transactions)
		})
	}

	wg.Wait()
	if failed.Load() {
		_ = logger.Sync()
		os.Exit(1)
	}
}

func watchBlockHeight(ctx context.Context, logger *zap.Logger, client *blockset.Client) {
	for {
		done := make(chan struct{})
		client.GetBlockchain(config.Blockchain, func(chain blockset.Blockchain, err error) {
			defer close(done)
			if err != nil {
				logger.Error("Failed to fetch blockchain", zap.Error(err))
				return
			}
			height := uint64(0)
			if chain.VerifiedHeight != nil {
				height = *chain.VerifiedHeight
			}
			logger.Info("Verified block height",
				zap.String("blockchain", config.Blockchain),
				zap.Uint64("height", height))
		})
		<-done

		if err := clock.SleepWithContext(ctx, config.PollInterval); err != nil {
			logger.Info("Stopping watch", zap.Error(err))
			return
		}
	}
}

func printJSON(logger *zap.Logger, value any) {
	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		logger.Error("Failed to encode output", zap.Error(err))
		return
	}
	os.Stdout.Write(append(encoded, '\n'))
}
