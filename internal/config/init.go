package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const starterClientConfig = `# Client pitch page configuration.
# Every leaf value is available to the template as a {{dotted.key}} placeholder.
client:
  name: "Example Client"
  industry: "Financial Services"
contact:
  name: "Jane Doe"
  email: "jane.doe@example.com"
brand:
  primary: "#0f6b3f"
  accent: "#ffd700"
pitch:
  headline: "A voice for every customer"
  body: "Replace this with the client-specific pitch copy."
`

// InitClient writes a starter configuration file for a new client. An
// existing file is only overwritten with force.
func (c *Config) InitClient(slug string, force bool) (string, error) {
	path := filepath.Join(c.BaseDir, c.ConfigsDir, slug+".yaml")
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("client configuration already exists: %s (use --force to overwrite)", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", fmt.Errorf("create configs directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(starterClientConfig), 0o644); err != nil {
		return "", fmt.Errorf("write starter configuration: %w", err)
	}
	return path, nil
}
