package github

import (
	"fmt"

	"github.com/TheBunnyMan123/bunny-bot/bot/preview"
)

// Color is GitHub's dark brand color.
const Color = 0x24292F

// BuildDocument normalizes a repository into a preview. The single stat field
// lists stars, open issues and forks in that order.
func BuildDocument(repo *Repo) *preview.Document {
	return &preview.Document{
		Provider:    preview.KindGitHub,
		Title:       repo.FullName,
		URL:         repo.HTMLURL,
		Description: repo.Description,
		Color:       Color,
		Author: &preview.Author{
			Name:    repo.Owner.Login,
			IconURL: repo.Owner.AvatarURL,
		},
		Fields: []preview.Field{
			{Value: fmt.Sprintf("⭐ %d • Issues %d • Forks %d", repo.StargazersCount, repo.OpenIssues, repo.Forks)},
		},
	}
}
