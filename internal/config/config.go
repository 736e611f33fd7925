package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"hyprconf/internal/editor"
	"hyprconf/internal/models"
	"hyprconf/internal/picker"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// AppName names the config directory and the environment prefix
const AppName = "hyprconf"

// Config holds the resolved application configuration
type Config struct {
	Root             string
	Editor           string
	ColorSpec        string
	Theme            picker.Theme
	SegColors        bool
	Category         *models.Category
	StripOrderPrefix bool
	TrimAliasEcho    bool

	// File is the config file that was read, empty when none was
	File string
}

// Settings represents the config file structure
type Settings struct {
	Root             string `yaml:"root,omitempty" mapstructure:"root"`
	Editor           string `yaml:"editor,omitempty" mapstructure:"editor"`
	Color            string `yaml:"color,omitempty" mapstructure:"color"`
	SegColors        bool   `yaml:"seg_colors" mapstructure:"seg_colors"`
	Category         string `yaml:"category,omitempty" mapstructure:"category"`
	StripOrderPrefix bool   `yaml:"strip_order_prefix" mapstructure:"strip_order_prefix"`
	TrimAliasEcho    bool   `yaml:"trim_alias_echo" mapstructure:"trim_alias_echo"`
}

// CLIFlags holds parsed CLI flags. Empty strings mean "not given".
type CLIFlags struct {
	Root        string
	Category    string
	Editor      string
	Color       string
	NoSegColors bool
	ConfigFile  string
}

// Load loads configuration with priority: CLI flags > env vars > config file > default
func Load(flags CLIFlags) (*Config, error) {
	v := viper.New()
	v.SetDefault("root", "")
	v.SetDefault("editor", "")
	v.SetDefault("color", "")
	v.SetDefault("seg_colors", true)
	v.SetDefault("category", "")
	v.SetDefault("strip_order_prefix", false)
	v.SetDefault("trim_alias_echo", false)

	// Environment: HYPRCONF_<KEY>; the editor also honours $EDITOR
	v.SetEnvPrefix(AppName)
	v.AutomaticEnv()
	if err := v.BindEnv("editor", "HYPRCONF_EDITOR", "EDITOR"); err != nil {
		return nil, err
	}

	file, err := readConfigFile(v, flags.ConfigFile)
	if err != nil {
		return nil, err
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := &Config{
		Editor:           editor.Resolve(flags.Editor, s.Editor),
		SegColors:        s.SegColors,
		StripOrderPrefix: s.StripOrderPrefix,
		TrimAliasEcho:    s.TrimAliasEcho,
		File:             file,
	}

	cfg.Root = firstNonEmpty(flags.Root, s.Root)
	if cfg.Root == "" {
		if cfg.Root, err = DefaultRoot(); err != nil {
			return nil, err
		}
	}
	cfg.Root = expandPath(cfg.Root)

	if name := firstNonEmpty(flags.Category, s.Category); name != "" {
		cat, err := models.ParseCategory(name)
		if err != nil {
			return nil, err
		}
		cfg.Category = &cat
	}

	_, noColor := os.LookupEnv("NO_COLOR")
	if flags.NoSegColors || noColor {
		cfg.SegColors = false
	}

	cfg.ColorSpec = firstNonEmpty(flags.Color, s.Color)
	spec := cfg.ColorSpec
	if spec == "" && noColor {
		spec = "none"
	}
	if cfg.Theme, err = picker.ParseTheme(spec); err != nil {
		return nil, err
	}

	return cfg, nil
}

// readConfigFile merges the config file into v and returns its path. An
// explicit path must exist; the default one is optional.
func readConfigFile(v *viper.Viper, explicit string) (string, error) {
	path := expandPath(explicit)
	if path == "" {
		p, err := Path()
		if err != nil {
			return "", nil
		}
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		path = p
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return path, nil
}

// DefaultRoot returns $XDG_CONFIG_HOME/hypr, else ~/.config/hypr
func DefaultRoot() (string, error) {
	base, err := configHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "hypr"), nil
}

// Path returns the path to the configuration file
func Path() (string, error) {
	base, err := configHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName, "config.yaml"), nil
}

func configHome() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return xdg, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve config directory: %w", err)
	}
	return filepath.Join(homeDir, ".config"), nil
}

// DefaultSettings returns the values written by EnsureConfigFile. Root and
// Color stay unset so the XDG root and NO_COLOR keep deciding them.
func DefaultSettings() Settings {
	return Settings{
		Editor:    editor.Fallback,
		SegColors: true,
	}
}

// EnsureConfigFile creates the config file with defaults if it doesn't
// exist. It reports whether a file was written.
func EnsureConfigFile(path string) (bool, error) {
	if path == "" {
		var err error
		if path, err = Path(); err != nil {
			return false, err
		}
	}
	path = expandPath(path)

	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, err
	}

	data, err := yaml.Marshal(DefaultSettings())
	if err != nil {
		return false, err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, err
	}
	return true, nil
}

// Settings converts the resolved config back to its file form
func (c *Config) Settings() Settings {
	s := Settings{
		Root:             c.Root,
		Editor:           c.Editor,
		Color:            firstNonEmpty(c.ColorSpec, c.Theme.Name),
		SegColors:        c.SegColors,
		StripOrderPrefix: c.StripOrderPrefix,
		TrimAliasEcho:    c.TrimAliasEcho,
	}
	if c.Category != nil {
		s.Category = c.Category.String()
	}
	return s
}

// Show writes the resolved config as YAML
func (c *Config) Show(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c.Settings()); err != nil {
		return err
	}
	return enc.Close()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[1:])
	}
	return path
}
