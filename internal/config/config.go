// Package config holds the tool settings (directory layout, hosting URL)
// and the client configuration documents that drive page generation.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the tool configuration. Every field has a default that
// matches the historical layout, so running without a pitchgen.yaml works.
type Config struct {
	// ConfigsDir holds per-client configuration files and audio sources,
	// relative to the base directory.
	ConfigsDir string `yaml:"configs_dir"`
	// TemplatePath is the shared HTML template, relative to the base directory.
	TemplatePath string `yaml:"template_path"`
	// OutputDir is the root for generated client pages, relative to the base directory.
	OutputDir string `yaml:"output_dir"`
	// PageFilename is the name of the rendered page inside a client's output directory.
	PageFilename string `yaml:"page_filename"`
	// AudioDirName is the audio subdirectory name used on both source and output side.
	AudioDirName string `yaml:"audio_dir_name"`
	// AudioExtension is the extension counted when reporting copied audio files.
	AudioExtension string `yaml:"audio_extension"`
	// PagesBaseURL is the remote hosting root reported after generation.
	PagesBaseURL string `yaml:"pages_base_url"`
	// PreviewPort is the default port for the preview server.
	PreviewPort int `yaml:"preview_port"`

	// BaseDir is resolved from the CLI, never from the file.
	BaseDir string `yaml:"-"`
}

// Load loads the tool configuration from the specified file. A missing file
// is not an error; defaults apply. Environment variables are expanded in the
// raw document, with .env/.env.local loaded first (process env wins).
func Load(configPath, baseDir string) (*Config, error) {
	// Best effort: absence of a .env file is the normal case. Existing
	// process environment always wins over file values.
	for _, name := range []string{".env", ".env.local"} {
		_ = godotenv.Load(name)
	}

	cfg := &Config{BaseDir: baseDir}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		} else {
			expanded := os.ExpandEnv(string(data))
			if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
				return nil, fmt.Errorf("unmarshal config: %w", err)
			}
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Default returns a configuration with all defaults applied and the given
// base directory.
func Default(baseDir string) *Config {
	cfg := &Config{BaseDir: baseDir}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.BaseDir == "" {
		c.BaseDir = "."
	}
	if c.ConfigsDir == "" {
		c.ConfigsDir = "configs"
	}
	if c.TemplatePath == "" {
		c.TemplatePath = "template/TEMPLATE.html"
	}
	if c.OutputDir == "" {
		c.OutputDir = "clients"
	}
	if c.PageFilename == "" {
		c.PageFilename = "index.html"
	}
	if c.AudioDirName == "" {
		c.AudioDirName = "audio"
	}
	if c.AudioExtension == "" {
		c.AudioExtension = ".mp3"
	}
	if c.PagesBaseURL == "" {
		c.PagesBaseURL = "https://sebmcintosh.github.io/Pitch-Decks"
	}
	if c.PreviewPort == 0 {
		c.PreviewPort = 8080
	}
}
