package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/ini.v1"
)

// PluginConfig stores plugin-specific configuration as key-value pairs.
type PluginConfig map[string]interface{}

// Config wraps viper and provides typed accessors.
type Config struct {
	v       *viper.Viper
	plugins map[string]PluginConfig
}

// Load reads an INI config file and prepares defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BUNNYBOT")
	v.AutomaticEnv()

	setDefaults(v)

	c := &Config{
		v:       v,
		plugins: make(map[string]PluginConfig),
	}

	if strings.EqualFold(filepath.Ext(path), ".ini") {
		cfg, err := loadINI(v, path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		loadPlugins(cfg, c)
		return c, nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	loadViperPlugins(v, c)
	return c, nil
}

// Defaults returns a config holding only default values. Used by one-shot mode
// when no config file is present.
func Defaults() *Config {
	v := viper.New()
	v.SetEnvPrefix("BUNNYBOT")
	v.AutomaticEnv()
	setDefaults(v)
	return &Config{v: v, plugins: make(map[string]PluginConfig)}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("BotAPI", "https://api.telegram.org")
	v.SetDefault("BotDebug", false)
	v.SetDefault("BotPrefix", "bb!")
	v.SetDefault("LogLevel", "info")
	v.SetDefault("LogFormat", "text")
	v.SetDefault("LogSource", false)
	v.SetDefault("LogDir", "")
	v.SetDefault("UserAgent", "TheBunnyBot (bunny-bot)")
	v.SetDefault("HTTPTimeoutSec", 30)
	v.SetDefault("WorkerPoolSize", 4)
	v.SetDefault("RateLimitPerSecond", 1.0)
	v.SetDefault("RateLimitBurst", 3)
	v.SetDefault("EnableCircuitBreaker", false)
}

// GetString returns a string value.
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt returns an int value.
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 returns a float64 value.
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool returns a bool value.
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetPluginConfig retrieves plugin-specific configuration by plugin name.
// Returns the configuration map and true if found, or nil and false if not found.
func (c *Config) GetPluginConfig(name string) (PluginConfig, bool) {
	cfg, ok := c.plugins[name]
	return cfg, ok
}

// PluginNames returns the configured plugin names.
func (c *Config) PluginNames() []string {
	if len(c.plugins) == 0 {
		return nil
	}
	nameList := make([]string, 0, len(c.plugins))
	for name := range c.plugins {
		nameList = append(nameList, name)
	}
	sort.Strings(nameList)
	return nameList
}

// PluginEnabled reports whether a plugin is enabled. Plugins without an
// explicit "enabled" key are enabled.
func (c *Config) PluginEnabled(name string) bool {
	cfg, ok := c.plugins[name]
	if !ok {
		return true
	}
	if _, has := cfg["enabled"]; !has {
		return true
	}
	return c.GetPluginBool(name, "enabled")
}

// GetPluginString returns a string value from plugin configuration.
// Returns empty string if plugin or key not found.
func (c *Config) GetPluginString(plugin, key string) string {
	cfg, ok := c.plugins[plugin]
	if !ok {
		return ""
	}
	val, ok := cfg[key]
	if !ok {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return fmt.Sprintf("%v", val)
}

// GetPluginBool returns a bool value from plugin configuration.
// Returns false if plugin or key not found, or value cannot be converted to bool.
func (c *Config) GetPluginBool(plugin, key string) bool {
	cfg, ok := c.plugins[plugin]
	if !ok {
		return false
	}
	val, ok := cfg[key]
	if !ok {
		return false
	}
	switch v := val.(type) {
	case bool:
		return v
	case string:
		v = strings.TrimSpace(v)
		return strings.EqualFold(v, "true") || v == "1"
	case int:
		return v != 0
	case int64:
		return v != 0
	default:
		return false
	}
}

func loadINI(v *viper.Viper, path string) (*ini.File, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}

	for _, key := range cfg.Section("").Keys() {
		v.Set(key.Name(), key.Value())
	}

	return cfg, nil
}

func loadPlugins(cfg *ini.File, c *Config) {
	const pluginPrefix = "plugins."

	for _, section := range cfg.Sections() {
		sectionName := section.Name()
		if sectionName == "" || sectionName == ini.DefaultSection {
			continue
		}

		if strings.HasPrefix(sectionName, pluginPrefix) {
			pluginName := strings.TrimPrefix(sectionName, pluginPrefix)
			pluginCfg := make(PluginConfig)

			for _, key := range section.Keys() {
				pluginCfg[key.Name()] = key.Value()
			}

			c.plugins[pluginName] = pluginCfg
		}
	}
}

// loadViperPlugins reads a "plugins" table from yaml/toml/json configs.
func loadViperPlugins(v *viper.Viper, c *Config) {
	for name, raw := range v.GetStringMap("plugins") {
		values, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		pluginCfg := make(PluginConfig, len(values))
		for key, value := range values {
			pluginCfg[key] = value
		}
		c.plugins[name] = pluginCfg
	}
}
