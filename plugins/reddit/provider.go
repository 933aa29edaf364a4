package reddit

import (
	"context"

	"github.com/TheBunnyMan123/bunny-bot/bot"
	logpkg "github.com/TheBunnyMan123/bunny-bot/bot/logger"
	"github.com/TheBunnyMan123/bunny-bot/bot/preview"
)

// Provider previews www.reddit.com post links.
type Provider struct {
	client *Client
	logger bot.Logger
}

var _ preview.Provider = (*Provider)(nil)

// NewProvider creates a Provider over client.
func NewProvider(client *Client, logger bot.Logger) *Provider {
	if logger == nil {
		logger = bot.NopLogger{}
	}
	return &Provider{client: client, logger: logger}
}

func (p *Provider) Kind() preview.Kind { return preview.KindReddit }

// Preview fetches the post, classifies it and builds its document.
func (p *Provider) Preview(ctx context.Context, u preview.ResolvedURL) (*preview.Document, error) {
	post, err := p.client.FetchPost(ctx, u)
	if err != nil {
		return nil, err
	}

	category, rule := classify(post)
	p.logger.Debug("reddit: classified post", logpkg.KeyCategory, category.String(), "rule", rule, "subreddit", post.Subreddit)
	return BuildDocument(u.Raw, post, category), nil
}
