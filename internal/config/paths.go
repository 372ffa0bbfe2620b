package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// clientConfigExtensions lists recognized client config extensions, in
// lookup order. YAML is a superset of JSON, so all three parse the same way.
var clientConfigExtensions = []string{".yaml", ".yml", ".json"}

// ClientConfigPath returns the path of the client's configuration file and
// whether it exists. When no file exists the path of the preferred
// (first-extension) candidate is returned for error reporting.
func (c *Config) ClientConfigPath(slug string) (string, bool) {
	for _, ext := range clientConfigExtensions {
		path := filepath.Join(c.BaseDir, c.ConfigsDir, slug+ext)
		if st, err := os.Stat(path); err == nil && !st.IsDir() {
			return path, true
		}
	}
	return filepath.Join(c.BaseDir, c.ConfigsDir, slug+clientConfigExtensions[0]), false
}

// TemplateFile returns the resolved template path.
func (c *Config) TemplateFile() string {
	return filepath.Join(c.BaseDir, c.TemplatePath)
}

// ClientOutputDir returns the output directory for one client.
func (c *Config) ClientOutputDir(slug string) string {
	return filepath.Join(c.BaseDir, c.OutputDir, slug)
}

// OutputPagePath returns the rendered page path for one client.
func (c *Config) OutputPagePath(slug string) string {
	return filepath.Join(c.ClientOutputDir(slug), c.PageFilename)
}

// AudioSourceDir returns the client's audio asset source directory.
func (c *Config) AudioSourceDir(slug string) string {
	return filepath.Join(c.BaseDir, c.ConfigsDir, slug, c.AudioDirName)
}

// AudioDestDir returns the audio directory inside the client's output.
func (c *Config) AudioDestDir(slug string) string {
	return filepath.Join(c.ClientOutputDir(slug), c.AudioDirName)
}

// SnippetsDir returns the client's optional markdown snippets directory.
func (c *Config) SnippetsDir(slug string) string {
	return filepath.Join(c.BaseDir, c.ConfigsDir, slug, "snippets")
}

// HistoryDBPath returns the run history database path.
func (c *Config) HistoryDBPath() string {
	return filepath.Join(c.BaseDir, ".pitchgen", "history.db")
}

// PreviewURL returns the local preview URL for a client page.
func (c *Config) PreviewURL(slug string) string {
	return fmt.Sprintf("http://localhost:%d/%s/%s/", c.PreviewPort, c.OutputDir, slug)
}

// PagesURL returns the remote hosting URL for a client page.
func (c *Config) PagesURL(slug string) string {
	return fmt.Sprintf("%s/%s/%s/", strings.TrimRight(c.PagesBaseURL, "/"), c.OutputDir, slug)
}

// ListClients returns the sorted slugs of all clients that have a
// configuration file.
func (c *Config) ListClients() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(c.BaseDir, c.ConfigsDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read configs directory: %w", err)
	}

	seen := make(map[string]struct{})
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := filepath.Ext(name)
		for _, known := range clientConfigExtensions {
			if ext == known {
				seen[strings.TrimSuffix(name, ext)] = struct{}{}
				break
			}
		}
	}

	slugs := make([]string, 0, len(seen))
	for s := range seen {
		slugs = append(slugs, s)
	}
	sort.Strings(slugs)
	return slugs, nil
}
