package web

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

//go:embed assets
var assetsFS embed.FS

// Assets holds the page resources served at the root route.
type Assets struct {
	IndexHTML []byte
}

type pageData struct {
	CSS string
	JS  string
}

// LoadAssets inlines the stylesheet and script into the index template and
// minifies the result. Runs once at startup.
func LoadAssets() (*Assets, error) {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/javascript", js.Minify)

	cssMin, err := minifyAsset(m, "text/css", "assets/style.css")
	if err != nil {
		return nil, err
	}
	jsMin, err := minifyAsset(m, "text/javascript", "assets/map.js")
	if err != nil {
		return nil, err
	}

	htmlRaw, err := assetsFS.ReadFile("assets/index.html.tpl")
	if err != nil {
		return nil, fmt.Errorf("read index template: %w", err)
	}
	tmpl, err := template.New("index").Parse(string(htmlRaw))
	if err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, pageData{CSS: cssMin, JS: jsMin}); err != nil {
		return nil, fmt.Errorf("render index template: %w", err)
	}

	htmlMin, err := m.String("text/html", buf.String())
	if err != nil {
		return nil, fmt.Errorf("minify index: %w", err)
	}

	return &Assets{IndexHTML: []byte(htmlMin)}, nil
}

func minifyAsset(m *minify.M, mediatype, path string) (string, error) {
	raw, err := assetsFS.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	out, err := m.String(mediatype, string(raw))
	if err != nil {
		return "", fmt.Errorf("minify %s: %w", path, err)
	}
	return out, nil
}
