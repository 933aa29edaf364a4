package github

import (
	"context"

	"github.com/TheBunnyMan123/bunny-bot/bot/preview"
)

// Provider previews github.com repository links.
type Provider struct {
	client *Client
}

var _ preview.Provider = (*Provider)(nil)

// NewProvider creates a Provider over client.
func NewProvider(client *Client) *Provider {
	return &Provider{client: client}
}

func (p *Provider) Kind() preview.Kind { return preview.KindGitHub }

// Preview fetches the repository and builds its document.
func (p *Provider) Preview(ctx context.Context, u preview.ResolvedURL) (*preview.Document, error) {
	repo, err := p.client.FetchRepo(ctx, u)
	if err != nil {
		return nil, err
	}
	return BuildDocument(repo), nil
}
