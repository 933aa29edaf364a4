package telegram

import (
	"context"
	"fmt"
	"net/http"
	"time"

	botpkg "github.com/TheBunnyMan123/bunny-bot/bot"
	"github.com/TheBunnyMan123/bunny-bot/bot/config"
	"github.com/mymmrac/telego"
)

// pollTimeoutSec is the long-poll window passed to getUpdates.
const pollTimeoutSec = 30

// Bot wraps telego with application configuration.
type Bot struct {
	client *telego.Bot
	config *config.Config
	logger botpkg.Logger
}

// New creates a new Telegram bot client.
func New(cfg *config.Config, logger botpkg.Logger) (*Bot, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger required")
	}

	pollTransport := &http.Transport{
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		MaxConnsPerHost:       50,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	pollClient := &http.Client{
		// Must outlive the long-poll window.
		Timeout:   2 * time.Minute,
		Transport: pollTransport,
	}

	options := []telego.BotOption{
		telego.WithHTTPClient(pollClient),
		telego.WithLogger(telegoLogger{logger: logger}),
	}
	if cfg.GetString("BotAPI") != "" {
		options = append(options, telego.WithAPIServer(cfg.GetString("BotAPI")))
	}
	if cfg.GetBool("BotDebug") {
		options = append(options, telego.WithDebugMode())
	}

	client, err := telego.NewBot(cfg.GetString("BOT_TOKEN"), options...)
	if err != nil {
		return nil, err
	}

	return &Bot{client: client, config: cfg, logger: logger}, nil
}

// Client exposes the underlying bot client.
func (b *Bot) Client() *telego.Bot {
	return b.client
}

// GetMe retrieves bot info.
func (b *Bot) GetMe(ctx context.Context) (*telego.User, error) {
	return b.client.GetMe(ctx)
}

// SetCommands publishes the command menu.
func (b *Bot) SetCommands(ctx context.Context, commands []Command) error {
	botCommands := make([]telego.BotCommand, 0, len(commands))
	for _, cmd := range commands {
		botCommands = append(botCommands, telego.BotCommand{Command: cmd.Name, Description: cmd.Description})
	}
	return b.client.SetMyCommands(ctx, &telego.SetMyCommandsParams{Commands: botCommands})
}

// Updates starts long polling. The channel is closed once ctx is done.
func (b *Bot) Updates(ctx context.Context) (<-chan telego.Update, error) {
	return b.client.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		Timeout:        pollTimeoutSec,
		AllowedUpdates: []string{"message"},
	})
}

type telegoLogger struct {
	logger botpkg.Logger
}

func (l telegoLogger) Debugf(format string, args ...any) {
	if l.logger == nil {
		return
	}
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l telegoLogger) Errorf(format string, args ...any) {
	if l.logger == nil {
		return
	}
	l.logger.Error(fmt.Sprintf(format, args...))
}
