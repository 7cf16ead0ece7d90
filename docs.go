package endpoint

import (
	"html/template"
	"net/http"
)

// DocsOption configures the docs UI.
type DocsOption func(*docsConfig)

type docsConfig struct {
	title  string
	layout string
}

// WithDocsTitle sets the page title for the docs UI.
func WithDocsTitle(title string) DocsOption {
	return func(c *docsConfig) {
		c.title = title
	}
}

// WithDocsLayout selects the Stoplight Elements layout, "sidebar" or
// "stacked".
func WithDocsLayout(layout string) DocsOption {
	return func(c *docsConfig) {
		c.layout = layout
	}
}

var docsTemplate = template.Must(template.New("docs").Parse(docsHTML))

// ServeDocs returns a handler rendering Stoplight Elements for the document
// served at specURL.
func ServeDocs(specURL string, opts ...DocsOption) http.Handler {
	cfg := &docsConfig{
		title:  "API Reference",
		layout: "sidebar",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	data := struct{ Title, SpecURL, Layout string }{cfg.title, specURL, cfg.layout}

	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		//nolint:errcheck,gosec // best-effort template render
		docsTemplate.Execute(w, data)
	})
}

const docsHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/@stoplight/elements/styles.min.css">
  <script src="https://unpkg.com/@stoplight/elements/web-components.min.js"></script>
</head>
<body>
  <elements-api
    apiDescriptionUrl="{{.SpecURL}}"
    router="hash"
    layout="{{.Layout}}"
  />
</body>
</html>`
