package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"catalyst/internal/domain"
)

//go:embed default.toml
var defaultConfigData []byte

// DefaultHistorySize is the input history capacity when the config leaves it unset
const DefaultHistorySize = 100

// Config represents the launcher configuration
type Config struct {
	Path        string // file the config was loaded from, empty for defaults
	HistorySize int
	UISettings  UISettings
	Sources     []SourceSpec
}

// UISettings represents UI-related configuration
type UISettings struct {
	KeepOpen bool
	MaxWidth int
}

// SourceSpec describes one configured data source
type SourceSpec struct {
	Name           string
	Key            string
	Command        []string // %query% is substituted in every element
	ActionTemplate []string // %match% is substituted in every element
	ActionKind     domain.ActionKind
	Unfiltered     bool
	TimeoutMs      int
	CacheTTLMs     int
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Init() error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service rooted at the user config directory
func NewConfigService() ConfigService {
	return &configService{filePath: UserConfigPath()}
}

// NewConfigServiceForPath creates a config service for an explicit file
func NewConfigServiceForPath(path string) ConfigService {
	return &configService{filePath: path}
}

// UserConfigPath returns the default config location
func UserConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "catalyst", "config.toml")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the service's file.
// A missing file yields the embedded default configuration.
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		return DefaultConfig()
	}
	return cs.LoadFromPath(cs.filePath)
}

// LoadFromPath loads and validates configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.ConfigError{Path: path, Err: fmt.Errorf("failed to read config file: %w", err)}
	}

	cfg, err := Parse(data, formatFor(path))
	if err != nil {
		return nil, &domain.ConfigError{Path: path, Err: err}
	}
	cfg.Path = path
	return cfg, nil
}

// SaveToPath writes configuration to a specific path, as YAML for .yaml and
// .yml files and TOML otherwise
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := Marshal(config, formatFor(path))
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Format names a config file encoding
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func formatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Parse decodes and validates a configuration document
func Parse(data []byte, format Format) (*Config, error) {
	var raw fileConfig
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	return raw.resolve()
}

// Marshal encodes a configuration in the given format
func Marshal(config *Config, format Format) ([]byte, error) {
	var data []byte
	var err error
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(toFile(config))
	default:
		data, err = toml.Marshal(toFile(config))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// DefaultConfig returns the embedded default configuration
func DefaultConfig() (*Config, error) {
	cfg, err := Parse(defaultConfigData, FormatTOML)
	if err != nil {
		return nil, &domain.ConfigError{Path: "<default>", Err: err}
	}
	return cfg, nil
}

// Init writes the default configuration to the service's file, refusing to
// overwrite. TOML files get the commented default verbatim; YAML files get
// the same sources re-encoded.
func (cs *configService) Init() error {
	path := cs.filePath
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists: %s", path)
	}

	if formatFor(path) == FormatYAML {
		cfg, err := DefaultConfig()
		if err != nil {
			return err
		}
		return cs.SaveToPath(cfg, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, defaultConfigData, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DuplicateKeys lists keys shared by several sources. Routing uses the
// first configured source for such a key.
func (c *Config) DuplicateKeys() []string {
	seen := make(map[string]string)
	var dups []string
	for _, src := range c.Sources {
		if src.Key == "" {
			continue
		}
		if first, ok := seen[src.Key]; ok {
			dups = append(dups, fmt.Sprintf("key %q used by %s and %s", src.Key, first, src.Name))
			continue
		}
		seen[src.Key] = src.Name
	}
	return dups
}

// Validate checks the invariants the engine relies on
func (c *Config) Validate() error {
	var errs []error
	if len(c.Sources) == 0 {
		errs = append(errs, errors.New("no sources configured"))
	}
	if c.HistorySize < 0 {
		errs = append(errs, fmt.Errorf("history_size must not be negative, got %d", c.HistorySize))
	}
	for i, src := range c.Sources {
		if err := src.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("sources[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Validate checks a single source
func (s SourceSpec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("name is required")
	}
	if strings.ContainsFunc(s.Key, isSpace) {
		return fmt.Errorf("%s: key %q must not contain whitespace", s.Name, s.Key)
	}
	if len(s.Command) == 0 || s.Command[0] == "" {
		return fmt.Errorf("%s: command is required", s.Name)
	}
	if len(s.ActionTemplate) == 0 || s.ActionTemplate[0] == "" {
		return fmt.Errorf("%s: action is required", s.Name)
	}
	if _, err := domain.ParseActionKind(string(s.ActionKind)); err != nil {
		return fmt.Errorf("%s: %w", s.Name, err)
	}
	if s.TimeoutMs < 0 {
		return fmt.Errorf("%s: timeout_ms must not be negative", s.Name)
	}
	if s.CacheTTLMs < 0 {
		return fmt.Errorf("%s: cache_ttl_ms must not be negative", s.Name)
	}
	return nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}
