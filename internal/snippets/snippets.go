// Package snippets renders a client's optional markdown snippet files into
// HTML fragments that the template can reference as {{snippets.<name>}}.
package snippets

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
)

// Load renders every *.md file in dir to HTML and returns a mapping from
// "snippets.<basename>" to the rendered fragment. A missing directory
// yields an empty mapping; clients without snippets are the common case.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snippets directory: %w", err)
	}

	md := goldmark.New()
	result := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		source, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read snippet %s: %w", e.Name(), err)
		}

		var buf bytes.Buffer
		if err := md.Convert(source, &buf); err != nil {
			return nil, fmt.Errorf("render snippet %s: %w", e.Name(), err)
		}
		name := strings.TrimSuffix(e.Name(), ".md")
		result["snippets."+name] = strings.TrimSpace(buf.String())
	}
	return result, nil
}
