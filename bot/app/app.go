package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	botpkg "github.com/TheBunnyMan123/bunny-bot/bot"
	"github.com/TheBunnyMan123/bunny-bot/bot/config"
	logpkg "github.com/TheBunnyMan123/bunny-bot/bot/logger"
	"github.com/TheBunnyMan123/bunny-bot/bot/preview"
	"github.com/TheBunnyMan123/bunny-bot/bot/preview/plugins"
	"github.com/TheBunnyMan123/bunny-bot/bot/telegram"
	"github.com/TheBunnyMan123/bunny-bot/bot/worker"
	"golang.org/x/sync/errgroup"
)

// App wires all application dependencies.
type App struct {
	Config    *config.Config
	Logger    *logpkg.Logger
	Pool      *worker.Pool
	Resolver  *preview.Resolver
	Providers []string
	Telegram  *telegram.Bot
	Build     BuildInfo

	mu    sync.Mutex
	group *errgroup.Group
}

// BuildInfo provides build-time metadata.
type BuildInfo struct {
	RuntimeVer string
	BinVersion string
	CommitSHA  string
	BuildTime  string
	BuildArch  string
}

// New builds the application container.
func New(ctx context.Context, configPath string, build BuildInfo) (*App, error) {
	conf, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logpkg.New(logpkg.Options{
		Level:     conf.GetString("LogLevel"),
		Format:    conf.GetString("LogFormat"),
		AddSource: conf.GetBool("LogSource"),
		Dir:       conf.GetString("LogDir"),
	})
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(conf.GetString("BOT_TOKEN")) == "" {
		_ = log.Close()
		return nil, errors.New("BOT_TOKEN is required")
	}

	resolver, providers := NewResolver(conf, log)

	pool := worker.New(conf.GetInt("WorkerPoolSize"), logpkg.ForComponent(log, "worker"))

	tele, err := telegram.New(conf, log)
	if err != nil {
		pool.StopNow()
		_ = log.Close()
		return nil, fmt.Errorf("init telegram: %w", err)
	}

	return &App{
		Config:    conf,
		Logger:    log,
		Pool:      pool,
		Resolver:  resolver,
		Providers: providers,
		Telegram:  tele,
		Build:     build,
	}, nil
}

// NewResolver builds a resolver holding every provider plugin that conf
// leaves enabled. It does not need Telegram credentials.
func NewResolver(conf *config.Config, log botpkg.Logger) (*preview.Resolver, []string) {
	resolver := preview.NewResolver(log)
	providers := plugins.Load(conf, log, resolver)
	if len(providers) == 0 {
		log.Warn("no preview providers loaded; every link will be reported as unsupported")
	}
	return resolver, providers
}

// Start publishes commands and begins long polling in the background.
func (a *App) Start(ctx context.Context) error {
	a.Logger.Info("starting bunny-bot",
		"version", a.Build.BinVersion,
		"commit", a.Build.CommitSHA,
		"runtime", a.Build.RuntimeVer,
		"arch", a.Build.BuildArch,
		"providers", a.Providers,
	)

	meCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	me, err := a.Telegram.GetMe(meCtx)
	if err != nil {
		a.Logger.Error("getMe failed", "error", err)
	}
	botName := ""
	if me != nil {
		botName = me.Username
	}

	if err := a.Telegram.SetCommands(meCtx, telegram.Commands); err != nil {
		a.Logger.Warn("setMyCommands failed", "error", err)
	}

	updates, err := a.Telegram.Updates(ctx)
	if err != nil {
		return fmt.Errorf("start long polling: %w", err)
	}

	rateLimiter := telegram.NewRateLimiter(a.Config.GetFloat64("RateLimitPerSecond"), a.Config.GetInt("RateLimitBurst"))
	rateLimiter.SetLogger(a.Logger)

	handler := &telegram.Handler{
		Resolver:    a.Resolver,
		Pool:        a.Pool,
		Sender:      a.Telegram.Client(),
		RateLimiter: rateLimiter,
		Logger:      logpkg.ForComponent(a.Logger, "telegram"),
		Kinds:       a.Resolver.Kinds(),
		BotName:     botName,
		Prefix:      a.Config.GetString("BotPrefix"),
	}

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return handler.Run(gctx, updates)
	})

	a.mu.Lock()
	a.group = group
	a.mu.Unlock()

	a.Logger.Info("bot started", "username", botName)
	return nil
}

// Shutdown releases resources. The context passed to Start must already be
// cancelled so polling can stop.
func (a *App) Shutdown(ctx context.Context) error {
	var firstErr error

	a.mu.Lock()
	group := a.group
	a.mu.Unlock()
	if group != nil {
		if err := group.Wait(); err != nil {
			firstErr = fmt.Errorf("stop polling: %w", err)
		}
	}

	if a.Pool != nil {
		if err := a.Pool.Shutdown(ctx); err != nil {
			a.Pool.StopNow()
			if firstErr == nil {
				firstErr = fmt.Errorf("shutdown worker pool: %w", err)
			}
		}
	}

	if a.Logger != nil {
		if err := a.Logger.Close(); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("close logger: %w", err)
			}
		}
	}

	return firstErr
}
