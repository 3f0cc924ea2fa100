// Package config loads litdoc YAML configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-litdoc/internal/fileutil"
	"github.com/alnah/go-litdoc/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppName names the user config directory.
const AppName = "litdoc"

// Field length limits.
const (
	MaxPathLength     = 4096
	MaxNameLength     = 64
	MaxMarkerLength   = 16
	MaxTOCTitleLength = 100
	MaxTOCDepth       = 6
)

// DefaultDebounce is the watch mode delay between the last change and the
// rebuild.
const DefaultDebounce = 300 * time.Millisecond

// Config holds everything a conversion run can be configured with.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Style    StyleConfig    `yaml:"style"`
	Assets   AssetsConfig   `yaml:"assets"`
	Fences   FencesConfig   `yaml:"fences"`
	Code     CodeConfig     `yaml:"code"`
	TOC      TOCConfig      `yaml:"toc"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Watch    WatchConfig    `yaml:"watch"`
}

// InputConfig defines input discovery.
type InputConfig struct {
	DefaultDir string   `yaml:"defaultDir"` // used when no input is given
	Extensions []string `yaml:"extensions"` // scanned in directories, e.g. ".py"
}

// OutputConfig defines where documents are written.
type OutputConfig struct {
	Dir string `yaml:"dir"` // empty = docs/ next to each source
}

// StyleConfig selects the stylesheet.
type StyleConfig struct {
	Name string `yaml:"name"` // style name, CSS file path or "" for none
	CSS  string `yaml:"css"`  // extra CSS file appended after the style
}

// AssetsConfig defines custom asset lookup.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded styles only
}

// FencesConfig overrides the segmenter markers.
type FencesConfig struct {
	Doc    string `yaml:"doc"`
	Escape string `yaml:"escape"`
}

// CodeConfig defines code block rendering.
type CodeConfig struct {
	Highlight   bool   `yaml:"highlight"`
	Collapsible bool   `yaml:"collapsible"`
	Theme       string `yaml:"theme"` // chroma style name
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Title     string `yaml:"title"`
	MaxDepth  int    `yaml:"maxDepth"` // 0 = all levels
	BackLinks bool   `yaml:"backLinks"`
}

// MarkdownConfig defines documentation rendering.
type MarkdownConfig struct {
	AllowHTML bool `yaml:"allowHTML"`
}

// WatchConfig defines watch mode behavior.
type WatchConfig struct {
	Debounce string `yaml:"debounce"` // Go duration, e.g. "500ms"
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() *Config {
	return &Config{
		Input:  InputConfig{Extensions: []string{".py", ".md", ".markdown"}},
		Style:  StyleConfig{Name: "default"},
		Fences: FencesConfig{Doc: `"""`, Escape: `'''`},
		Code:   CodeConfig{Highlight: true, Theme: "github"},
		TOC:    TOCConfig{Title: "Table of Contents"},
		Watch:  WatchConfig{Debounce: DefaultDebounce.String()},
	}
}

// DebounceDuration returns the parsed watch debounce, or DefaultDebounce
// when unset.
func (c *Config) DebounceDuration() (time.Duration, error) {
	if c.Watch.Debounce == "" {
		return DefaultDebounce, nil
	}
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 0, fmt.Errorf("%w: watch.debounce: %v", ErrInvalidValue, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: watch.debounce: must not be negative, got %s", ErrInvalidValue, d)
	}
	return d, nil
}

// Validate checks field lengths and value ranges. LoadConfig calls it; code
// building a Config by hand should too.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"style.name", c.Style.Name, MaxPathLength},
		{"style.css", c.Style.CSS, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"fences.doc", c.Fences.Doc, MaxMarkerLength},
		{"fences.escape", c.Fences.Escape, MaxMarkerLength},
		{"code.theme", c.Code.Theme, MaxNameLength},
		{"toc.title", c.TOC.Title, MaxTOCTitleLength},
	}
	// Validate string field lengths
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	// Validate input extensions
	for i, ext := range c.Input.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 || strings.ContainsAny(ext, `/\`) {
			return fmt.Errorf("%w: input.extensions[%d]: %q must look like \".py\"", ErrInvalidValue, i, ext)
		}
	}

	// Validate fence markers
	if c.Fences.Doc == "" {
		return fmt.Errorf("%w: fences.doc: required", ErrInvalidValue)
	}
	if c.Fences.Escape != "" && (strings.Contains(c.Fences.Doc, c.Fences.Escape) || strings.Contains(c.Fences.Escape, c.Fences.Doc)) {
		return fmt.Errorf("%w: fences.doc and fences.escape must not overlap", ErrInvalidValue)
	}

	// Validate TOC fields
	if c.TOC.MaxDepth < 0 || c.TOC.MaxDepth > MaxTOCDepth {
		return fmt.Errorf("%w: toc.maxDepth: must be between 0 and %d, got %d", ErrInvalidValue, MaxTOCDepth, c.TOC.MaxDepth)
	}

	// Validate watch fields
	if _, err := c.DebounceDuration(); err != nil {
		return err
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name. Names are
// searched as <name>.yaml and <name>.yml in the current directory, then in
// the user config directory. Keys missing from the file keep their
// DefaultConfig values; unknown keys are rejected.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start from defaults so missing keys keep their values
	cfg := DefaultConfig()
	if err := yamlutil.Decode(data, cfg, yamlutil.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal renders the configuration as YAML, as accepted by LoadConfig.
func (c *Config) Marshal() ([]byte, error) {
	return yamlutil.Encode(c)
}

// SearchPaths lists the files LoadConfig tries for a config name.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	// Try user config directory (both extensions)
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppName, name+ext))
		}
	}
	return paths
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\") || strings.HasSuffix(s, ".yaml") || strings.HasSuffix(s, ".yml")
}

// resolveConfigPath returns the first existing file among SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
