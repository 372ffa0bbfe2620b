// Package verify checks a rendered pitch page for problems an operator
// would otherwise only find in the browser: leftover placeholder tokens and
// references to local assets that do not exist on disk.
package verify

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/nineteen58/pitchgen/internal/render"
)

// IssueKind classifies a verification finding.
type IssueKind string

const (
	IssueUnresolvedToken IssueKind = "unresolved-token"
	IssueMissingAsset    IssueKind = "missing-asset"
)

// Issue is one verification finding.
type Issue struct {
	Kind    IssueKind
	Subject string // the token or the referenced path
	Detail  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s (%s)", i.Kind, i.Subject, i.Detail)
}

// linkAttributes maps element names to the attribute that carries a
// resource reference.
var linkAttributes = map[string]string{
	"a":      "href",
	"link":   "href",
	"img":    "src",
	"script": "src",
	"audio":  "src",
	"source": "src",
	"video":  "src",
}

// CheckPage parses the rendered page and returns its issues. Local
// references are resolved relative to the page's directory; external URLs
// and fragments are not checked (no network interaction).
func CheckPage(pagePath string) ([]Issue, error) {
	data, err := os.ReadFile(pagePath)
	if err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}

	var issues []Issue
	for _, token := range render.ScanUnresolved(string(data)) {
		issues = append(issues, Issue{
			Kind:    IssueUnresolvedToken,
			Subject: token,
			Detail:  "placeholder was never substituted",
		})
	}

	doc, err := html.Parse(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	baseDir := filepath.Dir(pagePath)
	seen := make(map[string]struct{})

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if attr, ok := linkAttributes[n.Data]; ok {
				for _, a := range n.Attr {
					if a.Key != attr {
						continue
					}
					if issue, found := checkReference(baseDir, a.Val, seen); found {
						issues = append(issues, issue)
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return issues, nil
}

// checkReference resolves one href/src value and reports it when it points
// at a local file that does not exist. Each missing path is reported once.
func checkReference(baseDir, ref string, seen map[string]struct{}) (Issue, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return Issue{}, false
	}
	if u, err := url.Parse(ref); err != nil || u.Scheme != "" {
		// External (or unparseable) URLs are out of scope.
		return Issue{}, false
	}
	// Site-absolute paths cannot be resolved against the client directory.
	if strings.HasPrefix(ref, "/") {
		return Issue{}, false
	}

	clean := ref
	if idx := strings.IndexAny(clean, "?#"); idx >= 0 {
		clean = clean[:idx]
	}
	if clean == "" {
		return Issue{}, false
	}
	if _, dup := seen[clean]; dup {
		return Issue{}, false
	}
	seen[clean] = struct{}{}

	if _, err := os.Stat(filepath.Join(baseDir, filepath.FromSlash(clean))); err != nil {
		return Issue{
			Kind:    IssueMissingAsset,
			Subject: ref,
			Detail:  "referenced file not found next to the page",
		}, true
	}
	return Issue{}, false
}
