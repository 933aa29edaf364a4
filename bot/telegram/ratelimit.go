package telegram

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"sync"
	"time"

	botpkg "github.com/TheBunnyMan123/bunny-bot/bot"
	logpkg "github.com/TheBunnyMan123/bunny-bot/bot/logger"
	"github.com/mymmrac/telego"
	"golang.org/x/time/rate"
)

// maxSendAttempts bounds how often a reply is retried after a flood-wait.
const maxSendAttempts = 3

// Sender is the subset of *telego.Bot used to reply.
type Sender interface {
	SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error)
	SendChatAction(ctx context.Context, params *telego.SendChatActionParams) error
}

// RateLimiter throttles outgoing messages per chat.
type RateLimiter struct {
	limiters map[int64]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
	logger   botpkg.Logger
}

// NewRateLimiter allows msgPerSec sustained sends per chat with the given burst.
func NewRateLimiter(msgPerSec float64, burst int) *RateLimiter {
	if msgPerSec <= 0 {
		msgPerSec = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limiters: make(map[int64]*rate.Limiter),
		rate:     rate.Limit(msgPerSec),
		burst:    burst,
		logger:   botpkg.NopLogger{},
	}
}

func (rl *RateLimiter) SetLogger(logger botpkg.Logger) {
	if logger != nil {
		rl.logger = logger
	}
}

func (rl *RateLimiter) getLimiter(chatID int64) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.limiters[chatID]
	rl.mu.RUnlock()

	if exists {
		return limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, exists := rl.limiters[chatID]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rl.rate, rl.burst)
	rl.limiters[chatID] = limiter
	return limiter
}

// Wait blocks until chatID may send again or ctx is done.
func (rl *RateLimiter) Wait(ctx context.Context, chatID int64) error {
	return rl.getLimiter(chatID).Wait(ctx)
}

// APIError carries a flood-wait hint from Telegram.
type APIError struct {
	Code       int
	Message    string
	RetryAfter int
}

func (e *APIError) Error() string {
	return e.Message
}

var retryAfterPattern = regexp.MustCompile(`(?i)retry\s+after[:\s]+(\d+)`)

func parseRetryAfter(err error) (int, bool) {
	if err == nil {
		return 0, false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.RetryAfter > 0 {
		return apiErr.RetryAfter, true
	}

	errMsg := err.Error()
	if matches := retryAfterPattern.FindStringSubmatch(errMsg); len(matches) == 2 {
		if parsed, parseErr := strconv.Atoi(matches[1]); parseErr == nil {
			return parsed, parsed > 0
		}
	}
	if parsed, parseErr := strconv.Atoi(errMsg); parseErr == nil {
		return parsed, parsed > 0
	}
	return 0, false
}

// WithRetry runs fn under the chat's limiter and retries it when Telegram
// answers with a flood-wait. Other errors are returned as-is.
func WithRetry(ctx context.Context, rl *RateLimiter, chatID int64, fn func() error) error {
	if fn == nil {
		return nil
	}
	if rl == nil {
		return fn()
	}
	for attempt := 0; attempt < maxSendAttempts; attempt++ {
		if err := rl.Wait(ctx, chatID); err != nil {
			return err
		}

		err := fn()
		if err == nil {
			return nil
		}

		retryAfter, shouldRetry := parseRetryAfter(err)
		if !shouldRetry {
			return err
		}

		if attempt < maxSendAttempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(retryAfter) * time.Second):
			}
		}
	}

	return &APIError{Code: 429, Message: "max retries exceeded"}
}

// SendMessageWithRetry sends params through rl.
func SendMessageWithRetry(ctx context.Context, rl *RateLimiter, s Sender, params *telego.SendMessageParams) (*telego.Message, error) {
	var result *telego.Message
	var lastErr error

	chatID := params.ChatID.ID
	err := WithRetry(ctx, rl, chatID, func() error {
		msg, err := s.SendMessage(ctx, params)
		if err != nil {
			lastErr = err
			return err
		}
		result = msg
		return nil
	})

	if err != nil {
		if lastErr == nil {
			lastErr = err
		}
		if rl != nil {
			rl.logger.Error("SendMessage failed", logpkg.KeyChatID, chatID, "error", lastErr)
		}
		return result, lastErr
	}
	return result, nil
}
