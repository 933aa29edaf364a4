package telegram

import (
	"context"
	"errors"
	"fmt"

	botpkg "github.com/TheBunnyMan123/bunny-bot/bot"
	logpkg "github.com/TheBunnyMan123/bunny-bot/bot/logger"
	"github.com/TheBunnyMan123/bunny-bot/bot/preview"
	"github.com/TheBunnyMan123/bunny-bot/bot/worker"
	"github.com/mymmrac/telego"
)

// Resolver turns a link into a preview document.
type Resolver interface {
	Resolve(ctx context.Context, raw string) (*preview.Document, error)
}

// Handler answers chat commands. Each update runs on the worker pool.
type Handler struct {
	Resolver    Resolver
	Pool        botpkg.WorkerPool
	Sender      Sender
	RateLimiter *RateLimiter
	Logger      botpkg.Logger
	Kinds       []preview.Kind // served by Resolver, listed by /start
	BotName     string
	Prefix      string
}

// Run dispatches updates until the channel closes or ctx is done.
func (h *Handler) Run(ctx context.Context, updates <-chan telego.Update) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if err := h.dispatch(ctx, update); err != nil {
				if errors.Is(err, worker.ErrPoolClosed) {
					return nil
				}
				h.logger().Error("dispatch update failed", "update_id", update.UpdateID, "error", err)
			}
		}
	}
}

func (h *Handler) dispatch(ctx context.Context, update telego.Update) error {
	if h.Pool == nil {
		h.Handle(ctx, update)
		return nil
	}
	return h.Pool.Submit(func() { h.Handle(ctx, update) })
}

// Handle processes one update.
func (h *Handler) Handle(ctx context.Context, update telego.Update) {
	msg := update.Message
	if msg == nil || msg.Text == "" {
		return
	}

	name, args, ok := parseCommand(msg.Text, h.BotName, h.Prefix)
	if !ok {
		return
	}

	switch name {
	case "embed":
		h.embed(ctx, msg, args)
	case "help":
		h.reply(ctx, msg, renderHelp(Commands, h.Prefix), &telego.LinkPreviewOptions{IsDisabled: true})
	case "start":
		h.reply(ctx, msg, renderStart(h.Kinds), &telego.LinkPreviewOptions{IsDisabled: true})
	}
}

func (h *Handler) embed(ctx context.Context, msg *telego.Message, args string) {
	link := firstArg(args)
	if link == "" {
		h.reply(ctx, msg, renderError(invalidInputTitle, fmt.Sprintf(missingArgText, "link")), nil)
		return
	}

	if h.Sender != nil {
		_ = h.Sender.SendChatAction(ctx, &telego.SendChatActionParams{
			ChatID: telego.ChatID{ID: msg.Chat.ID},
			Action: telego.ChatActionTyping,
		})
	}

	doc, err := h.Resolver.Resolve(ctx, link)
	if err != nil {
		h.reply(ctx, msg, renderError(errorTitle, errorText(link, err)), &telego.LinkPreviewOptions{IsDisabled: true})
		return
	}

	text, linkPreview := renderDocument(doc)
	h.reply(ctx, msg, text, linkPreview)
}

// errorText maps a resolution failure to the user-facing message.
func errorText(link string, err error) string {
	var unsupported *preview.UnsupportedProviderError
	switch {
	case errors.Is(err, preview.ErrInvalidURL):
		return invalidURLText
	case errors.As(err, &unsupported):
		return fmt.Sprintf(unsupportedText, link)
	default:
		return err.Error()
	}
}

func (h *Handler) reply(ctx context.Context, msg *telego.Message, text string, linkPreview *telego.LinkPreviewOptions) {
	if h.Sender == nil {
		return
	}
	params := &telego.SendMessageParams{
		ChatID:             telego.ChatID{ID: msg.Chat.ID},
		MessageThreadID:    msg.MessageThreadID,
		Text:               text,
		ParseMode:          telego.ModeHTML,
		LinkPreviewOptions: linkPreview,
		ReplyParameters:    &telego.ReplyParameters{MessageID: msg.MessageID, AllowSendingWithoutReply: true},
	}
	if _, err := SendMessageWithRetry(ctx, h.RateLimiter, h.Sender, params); err != nil && h.RateLimiter == nil {
		h.logger().Error("send reply failed", logpkg.KeyChatID, msg.Chat.ID, "error", err)
	}
}

func (h *Handler) logger() botpkg.Logger {
	if h.Logger == nil {
		return botpkg.NopLogger{}
	}
	return h.Logger
}
