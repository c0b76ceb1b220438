package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	phuslog "github.com/phuslu/log"
	"zombiezen.com/go/sqlite/sqlitex"

	cacheRistretto "github.com/nidohq/nido/cache/ristretto"
	"github.com/nidohq/nido/config"
	"github.com/nidohq/nido/core"
	"github.com/nidohq/nido/db/zombiezen"
	"github.com/nidohq/nido/mail"
	"github.com/nidohq/nido/migrations"
	routerHttprouter "github.com/nidohq/nido/router/httprouter"
	"github.com/nidohq/nido/server"
	"github.com/nidohq/nido/session"
	"github.com/nidohq/nido/topk"
	"github.com/nidohq/nido/verification"
)

func newLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	logger := slog.New(phuslog.SlogNewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
	return logger
}

func loadConfig(path string, logger *slog.Logger) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	logger.Info("no config file given, using defaults with generated secrets")
	cfg := config.NewDefaultConfig()
	cfg.FillEnvVars()
	return cfg, config.Validate(cfg)
}

func migrate(pool *sqlitex.Pool) error {
	conn, err := pool.Take(context.Background())
	if err != nil {
		return err
	}
	defer pool.Put(conn)
	return zombiezen.ApplyMigrations(conn, migrations.Schema())
}

func run(configPath, dbFile string, logger *slog.Logger) error {
	cfg, err := loadConfig(configPath, logger)
	if err != nil {
		return err
	}
	if dbFile != "" {
		cfg.DBFile = dbFile
	}

	pool, err := zombiezen.NewPool(cfg.DBFile)
	if err != nil {
		return err
	}
	if err := migrate(pool); err != nil {
		return err
	}

	dbApp, err := zombiezen.New(pool)
	if err != nil {
		return err
	}

	appCache, err := cacheRistretto.New[any]()
	if err != nil {
		return err
	}

	issuer, err := session.NewIssuer(
		[]byte(cfg.Jwt.AccessSecret),
		[]byte(cfg.Jwt.RefreshSecret),
		cfg.Jwt.AccessTokenDuration.Duration,
		cfg.Jwt.RefreshTokenDuration.Duration,
	)
	if err != nil {
		return err
	}

	verifier := verification.New(appCache,
		verification.WithTTL(cfg.Verification.CodeDuration.Duration, cfg.Verification.MarkDuration.Duration))

	mailer := mail.New(cfg.Smtp.Host, cfg.Smtp.Port, cfg.Smtp.Username,
		cfg.Smtp.Password, cfg.Smtp.FromName, cfg.Smtp.FromAddress)

	opts := []core.Option{
		core.WithDbApp(dbApp),
		core.WithRouter(routerHttprouter.New(), routerHttprouter.NewParamGetter()),
		core.WithCache(appCache),
		core.WithConfigProvider(config.NewProvider(cfg)),
		core.WithLogger(logger),
		core.WithVerificationStore(verifier),
		core.WithSessionIssuer(issuer),
		core.WithMailer(mailer),
	}

	if cfg.BlockIp.Enabled {
		opts = append(opts, core.WithBlockSketch(topk.New(topk.SketchParams{
			K:               cfg.BlockIp.K,
			WindowSize:      cfg.BlockIp.WindowSize,
			Width:           cfg.BlockIp.Width,
			Depth:           cfg.BlockIp.Depth,
			TickSize:        cfg.BlockIp.TickSize,
			MaxSharePercent: cfg.BlockIp.MaxSharePercent,
			ActivationRPS:   cfg.BlockIp.ActivationRPS,
		})))
	}

	app, err := core.NewApp(opts...)
	if err != nil {
		return err
	}

	route(cfg, app)

	srv := server.NewServer(cfg.Server, app.Router(), logger)
	srv.OnShutdown(func(ctx context.Context) error {
		logger.Info("closing database pool")
		return pool.Close()
	})

	return srv.Run()
}

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	dbFile := flag.String("db", "", "path to sqlite database file, overrides config")
	flag.Parse()

	logger := newLogger()

	if err := run(*configPath, *dbFile, logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}
