package logger

import "github.com/TheBunnyMan123/bunny-bot/bot"

// Attribute keys shared by log lines across packages, so one preview can be
// followed from the chat update down to the provider call.
const (
	KeyComponent = "component"
	KeyPlugin    = "plugin"
	KeyProvider  = "provider"
	KeyHost      = "host"
	KeyURL       = "url"
	KeyCategory  = "category"
	KeyChatID    = "chat_id"
)

// ForComponent scopes l to an application component ("worker", "telegram").
func ForComponent(l bot.Logger, name string) bot.Logger {
	return l.With(KeyComponent, name)
}

// ForPlugin scopes l to a provider plugin while it is being built.
func ForPlugin(l bot.Logger, name string) bot.Logger {
	return l.With(KeyPlugin, name)
}

// ForResolution scopes l to one provider call for host.
func ForResolution(l bot.Logger, provider, host string) bot.Logger {
	return l.With(KeyProvider, provider, KeyHost, host)
}
