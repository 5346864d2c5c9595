// Package main runs the wordgrid server. It wires together configuration,
// the dictionary, the Telnet acceptor and the JSON API.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cory-johannsen/wordgrid/internal/config"
	"github.com/cory-johannsen/wordgrid/internal/frontend/handlers"
	"github.com/cory-johannsen/wordgrid/internal/frontend/httpapi"
	"github.com/cory-johannsen/wordgrid/internal/frontend/telnet"
	"github.com/cory-johannsen/wordgrid/internal/game/dictionary"
	"github.com/cory-johannsen/wordgrid/internal/game/grid"
	"github.com/cory-johannsen/wordgrid/internal/game/session"
	"github.com/cory-johannsen/wordgrid/internal/game/word"
	"github.com/cory-johannsen/wordgrid/internal/observability"
	"github.com/cory-johannsen/wordgrid/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file (empty uses defaults)")
	flag.Parse()

	// A missing .env is fine
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting wordgrid server",
		zap.Int("side", cfg.Game.Side),
		zap.Int("vowels", cfg.Game.VowelCount()),
		zap.Int("max_duplicates", cfg.Game.MaxDuplicates),
	)

	params := grid.Params{
		Side:          cfg.Game.Side,
		Vowels:        cfg.Game.VowelCount(),
		MaxDuplicates: cfg.Game.MaxDuplicates,
	}
	if err := params.Validate(); err != nil {
		logger.Fatal("invalid game parameters", zap.Error(err))
	}

	store := dictionary.NewStore(logger)
	validator := word.NewValidator(store,
		word.WithMinLength(cfg.Game.MinWordLength),
		word.WithAllowRudeWords(cfg.Game.AllowRudeWords),
	)
	sessions := session.NewManager(params, validator)

	lifecycle := server.NewLifecycle(logger)

	loadCtx, cancelLoad := context.WithCancel(context.Background())
	lifecycle.Add("dictionary", &server.FuncService{
		StartFn: func() error {
			loadStart := time.Now()
			store.LoadConfig(loadCtx, cfg.Dictionary)
			logger.Info("dictionary loaded", zap.Duration("elapsed", time.Since(loadStart)))
			<-loadCtx.Done()
			return nil
		},
		StopFn: cancelLoad,
	})

	if cfg.Telnet.Enabled {
		gameHandler := handlers.NewGameHandler(sessions, cfg.Game.DefaultSeed, logger)
		telnetAcceptor := telnet.NewAcceptor(cfg.Telnet, gameHandler, logger)
		lifecycle.Add("telnet", telnetAcceptor)
	}

	if cfg.HTTP.Enabled {
		api := httpapi.New(cfg.HTTP, sessions, store, logger)
		lifecycle.Add("http", api)
	}

	logger.Info("server initialized",
		zap.Duration("startup", time.Since(start)),
		zap.Bool("telnet", cfg.Telnet.Enabled),
		zap.String("telnet_addr", cfg.Telnet.Addr()),
		zap.Bool("http", cfg.HTTP.Enabled),
		zap.String("http_addr", cfg.HTTP.Addr()),
	)

	if err := lifecycle.Run(context.Background()); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
