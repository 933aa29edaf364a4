package plugins

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/TheBunnyMan123/bunny-bot/bot"
	"github.com/TheBunnyMan123/bunny-bot/bot/config"
	logpkg "github.com/TheBunnyMan123/bunny-bot/bot/logger"
	"github.com/TheBunnyMan123/bunny-bot/bot/preview"
	"github.com/TheBunnyMan123/bunny-bot/bot/preview/transport"
)

// Contribution describes the components a plugin can provide.
type Contribution struct {
	Provider preview.Provider
}

// Factory creates a plugin contribution based on config and logger.
type Factory func(cfg *config.Config, logger bot.Logger) (*Contribution, error)

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// Register registers a plugin factory by name.
func Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("plugin name required")
	}
	if factory == nil {
		return fmt.Errorf("plugin factory required")
	}
	mu.Lock()
	defer mu.Unlock()
	if _, exists := factories[name]; exists {
		return fmt.Errorf("plugin %s already registered", name)
	}
	factories[name] = factory
	return nil
}

// Get returns a registered factory by name.
func Get(name string) (Factory, bool) {
	mu.RLock()
	defer mu.RUnlock()
	factory, ok := factories[name]
	return factory, ok
}

// Names returns all registered plugin names.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	nameList := make([]string, 0, len(factories))
	for name := range factories {
		nameList = append(nameList, name)
	}
	sort.Strings(nameList)
	return nameList
}

// Load builds every registered plugin that cfg leaves enabled and registers
// its provider with r. A plugin that fails to build is logged and skipped.
func Load(cfg *config.Config, logger bot.Logger, r *preview.Resolver) []string {
	if logger == nil {
		logger = bot.NopLogger{}
	}

	var loaded []string
	for _, name := range Names() {
		if !cfg.PluginEnabled(name) {
			logger.Info("plugin disabled by config", logpkg.KeyPlugin, name)
			continue
		}

		factory, _ := Get(name)
		contrib, err := factory(cfg, logpkg.ForPlugin(logger, name))
		if err != nil {
			logger.Error("plugin init failed", logpkg.KeyPlugin, name, "error", err)
			continue
		}
		if contrib == nil || contrib.Provider == nil {
			continue
		}
		// Plugin names double as config section names, so they must name the kind served.
		if kind := contrib.Provider.Kind(); kind.String() != name {
			logger.Error("plugin serves another kind", logpkg.KeyPlugin, name, "kind", kind.String())
			continue
		}
		if err := r.Register(contrib.Provider); err != nil {
			logger.Error("plugin register failed", logpkg.KeyPlugin, name, "error", err)
			continue
		}
		loaded = append(loaded, name)
	}

	for _, name := range cfg.PluginNames() {
		if _, ok := Get(name); !ok {
			logger.Warn("plugin not registered", logpkg.KeyPlugin, name)
		}
	}
	return loaded
}

// HTTPOptions builds transport options for plugin name from root keys,
// letting the plugin section override the user agent.
func HTTPOptions(cfg *config.Config, name string) transport.Options {
	userAgent := strings.TrimSpace(cfg.GetPluginString(name, "user_agent"))
	if userAgent == "" {
		userAgent = cfg.GetString("UserAgent")
	}
	timeout := cfg.GetInt("HTTPTimeoutSec")
	if timeout < 0 {
		timeout = 0
	}
	return transport.Options{
		Name:           name + "-api",
		UserAgent:      userAgent,
		Timeout:        time.Duration(timeout) * time.Second,
		CircuitBreaker: cfg.GetBool("EnableCircuitBreaker"),
	}
}
