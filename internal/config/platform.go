package config

import (
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// PlatformConfig carries operator-tunable settings that may change while the
// process is running: the reserved subdomain list, the totals verification
// tolerance, and the combo availability equivalence table.
type PlatformConfig struct {
	ReservedSubdomains  []string          `mapstructure:"reservedSubdomains"`
	TotalsToleranceCent int64             `mapstructure:"totalsToleranceCents"`
	ComboEquivalence    map[string]string `mapstructure:"comboEquivalence"`
}

func DefaultPlatformConfig() PlatformConfig {
	return PlatformConfig{
		ReservedSubdomains:  []string{"www", "api", "admin", "app", "dashboard", "cdn", "static"},
		TotalsToleranceCent: 0,
		ComboEquivalence:    map[string]string{},
	}
}

// PlatformHolder exposes the current PlatformConfig; reads are lock-free and
// the value is swapped whole on file change.
type PlatformHolder struct {
	current atomic.Value // holds PlatformConfig
}

func NewPlatformHolder() (*PlatformHolder, error) {
	v := viper.New()

	v.SetConfigName("platform")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/chowstack")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CHOWSTACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	holder := &PlatformHolder{}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		holder.current.Store(DefaultPlatformConfig())
		return holder, nil
	}

	cfg, err := unmarshalPlatform(v)
	if err != nil {
		return nil, err
	}
	holder.current.Store(cfg)

	v.OnConfigChange(func(fsnotify.Event) {
		next, err := unmarshalPlatform(v)
		if err != nil {
			log.Printf("platform config reload failed: %v", err)
			return
		}
		holder.current.Store(next)
	})
	v.WatchConfig()

	return holder, nil
}

// NewPlatformHolderFromConfig builds a holder around a fixed config. Used by
// tests and anywhere a file-backed holder is not wanted.
func NewPlatformHolderFromConfig(cfg PlatformConfig) *PlatformHolder {
	holder := &PlatformHolder{}
	holder.current.Store(normalizePlatform(cfg))
	return holder
}

func (h *PlatformHolder) Current() PlatformConfig {
	if h == nil {
		return DefaultPlatformConfig()
	}
	if cfg, ok := h.current.Load().(PlatformConfig); ok {
		return cfg
	}
	return DefaultPlatformConfig()
}

func (h *PlatformHolder) Store(cfg PlatformConfig) {
	h.current.Store(normalizePlatform(cfg))
}

func unmarshalPlatform(v *viper.Viper) (PlatformConfig, error) {
	cfg := DefaultPlatformConfig()
	if err := v.UnmarshalKey("platform", &cfg); err != nil {
		return PlatformConfig{}, err
	}
	return normalizePlatform(cfg), nil
}

func normalizePlatform(cfg PlatformConfig) PlatformConfig {
	if len(cfg.ReservedSubdomains) == 0 {
		cfg.ReservedSubdomains = DefaultPlatformConfig().ReservedSubdomains
	}
	for i, sub := range cfg.ReservedSubdomains {
		cfg.ReservedSubdomains[i] = strings.ToLower(strings.TrimSpace(sub))
	}
	if cfg.ComboEquivalence == nil {
		cfg.ComboEquivalence = map[string]string{}
	}
	return cfg
}
