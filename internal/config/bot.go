// Package config holds the bot-level configuration that cannot fall
// back to a default, plus optional per-source overrides.
package config

import (
	"fmt"
	"os"

	"newswire/internal/domain/entity"
	pkgconfig "newswire/internal/pkg/config"
)

// BotConfig is the Telegram-facing configuration. Unlike the worker
// config it is fail-closed: the bot cannot run without a token, so a
// missing one is an error rather than a fallback.
type BotConfig struct {
	// Token authenticates against the Bot API. Required.
	Token string

	// Debug enables Bot API request logging and text log output.
	Debug bool

	// FeedURLs maps a source to an RSS feed. When set for a source,
	// listing goes through the feed instead of scraping the site's HTML.
	FeedURLs map[entity.Source]string
}

// LoadBotConfig reads the bot configuration from the environment.
//
// Environment variables:
//   - TELEGRAM_BOT_TOKEN: Bot API token (required)
//   - TELEGRAM_DEBUG: enable debug output (default false)
//   - INFORMBURO_FEED_URL: RSS feed override for informburo (optional)
//   - NUR_FEED_URL: RSS feed override for nur (optional)
func LoadBotConfig() (*BotConfig, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("LoadBotConfig: TELEGRAM_BOT_TOKEN is not set")
	}

	cfg := &BotConfig{
		Token:    token,
		Debug:    pkgconfig.LoadEnvBool("TELEGRAM_DEBUG", false).Value.(bool),
		FeedURLs: map[entity.Source]string{},
	}

	if url := pkgconfig.LoadEnvString("INFORMBURO_FEED_URL", ""); url != "" {
		cfg.FeedURLs[entity.SourceInformburo] = url
	}
	if url := pkgconfig.LoadEnvString("NUR_FEED_URL", ""); url != "" {
		cfg.FeedURLs[entity.SourceNur] = url
	}

	return cfg, nil
}
