package config

import (
	"fmt"

	"github.com/google/shlex"

	"catalyst/internal/domain"
)

// fileConfig mirrors the on-disk layout. command and action accept either
// an argument array or a shell-like string.
type fileConfig struct {
	HistorySize int          `toml:"history_size,omitempty" yaml:"history_size"`
	UI          fileUI       `toml:"ui" yaml:"ui"`
	Sources     []fileSource `toml:"sources" yaml:"sources"`
}

type fileUI struct {
	KeepOpen bool `toml:"keep_open" yaml:"keep_open"`
	MaxWidth int  `toml:"max_width,omitempty" yaml:"max_width"`
}

type fileSource struct {
	Name       string `toml:"name" yaml:"name"`
	Key        string `toml:"key,omitempty" yaml:"key"`
	Command    any    `toml:"command" yaml:"command"`
	Action     any    `toml:"action" yaml:"action"`
	ActionKind string `toml:"action_kind,omitempty" yaml:"action_kind"`
	Unfiltered bool   `toml:"unfiltered,omitempty" yaml:"unfiltered"`
	TimeoutMs  int    `toml:"timeout_ms,omitempty" yaml:"timeout_ms"`
	CacheTTLMs int    `toml:"cache_ttl_ms,omitempty" yaml:"cache_ttl_ms"`
}

func (f fileConfig) resolve() (*Config, error) {
	cfg := &Config{
		HistorySize: f.HistorySize,
		UISettings: UISettings{
			KeepOpen: f.UI.KeepOpen,
			MaxWidth: f.UI.MaxWidth,
		},
	}
	if cfg.HistorySize == 0 {
		cfg.HistorySize = DefaultHistorySize
	}
	if cfg.UISettings.MaxWidth <= 0 {
		cfg.UISettings.MaxWidth = 80
	}

	for i, fs := range f.Sources {
		command, err := toArgv(fs.Command)
		if err != nil {
			return nil, fmt.Errorf("sources[%d] %s: command: %w", i, fs.Name, err)
		}
		action, err := toArgv(fs.Action)
		if err != nil {
			return nil, fmt.Errorf("sources[%d] %s: action: %w", i, fs.Name, err)
		}
		kind, err := domain.ParseActionKind(fs.ActionKind)
		if err != nil {
			return nil, fmt.Errorf("sources[%d] %s: %w", i, fs.Name, err)
		}
		cfg.Sources = append(cfg.Sources, SourceSpec{
			Name:           fs.Name,
			Key:            fs.Key,
			Command:        command,
			ActionTemplate: action,
			ActionKind:     kind,
			Unfiltered:     fs.Unfiltered,
			TimeoutMs:      fs.TimeoutMs,
			CacheTTLMs:     fs.CacheTTLMs,
		})
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// toArgv accepts a decoded array or string and returns an argument vector
func toArgv(v any) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		argv, err := shlex.Split(val)
		if err != nil {
			return nil, fmt.Errorf("cannot split %q: %w", val, err)
		}
		return argv, nil
	case []string:
		return val, nil
	case []any:
		argv := make([]string, 0, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("element %d is %T, want string", i, item)
			}
			argv = append(argv, s)
		}
		return argv, nil
	default:
		return nil, fmt.Errorf("want string or array of strings, got %T", v)
	}
}

func toFile(c *Config) fileConfig {
	f := fileConfig{
		HistorySize: c.HistorySize,
		UI: fileUI{
			KeepOpen: c.UISettings.KeepOpen,
			MaxWidth: c.UISettings.MaxWidth,
		},
	}
	for _, src := range c.Sources {
		f.Sources = append(f.Sources, fileSource{
			Name:       src.Name,
			Key:        src.Key,
			Command:    src.Command,
			Action:     src.ActionTemplate,
			ActionKind: string(src.ActionKind),
			Unfiltered: src.Unfiltered,
			TimeoutMs:  src.TimeoutMs,
			CacheTTLMs: src.CacheTTLMs,
		})
	}
	return f
}
