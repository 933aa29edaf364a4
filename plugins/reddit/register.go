package reddit

import (
	"fmt"

	"github.com/TheBunnyMan123/bunny-bot/bot"
	"github.com/TheBunnyMan123/bunny-bot/bot/config"
	"github.com/TheBunnyMan123/bunny-bot/bot/preview/plugins"
)

func init() {
	if err := plugins.Register("reddit", buildContribution); err != nil {
		panic(err)
	}
}

func buildContribution(cfg *config.Config, logger bot.Logger) (*plugins.Contribution, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}

	client := New(logger, plugins.HTTPOptions(cfg, "reddit"))
	return &plugins.Contribution{Provider: NewProvider(client, logger)}, nil
}
